package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bizplan_forecast/pkg/models"
)

// Sheet names, in workbook order.
const (
	SheetResults      = "Results"
	SheetAmortization = "Amortization"
	SheetLoan         = "Loan"
	SheetSummary      = "Summary"
	SheetCVP          = "CVP"
)

// numFmtAmount is the built-in "#,##0.00" format.
const numFmtAmount = 4

type workbookStyles struct {
	header int
	amount int
	total  int
}

// BuildWorkbook lays the projection out over five sheets.
func BuildWorkbook(plan models.BusinessPlanData, res *models.OperatingResults) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetAmortization, SheetLoan, SheetSummary, SheetCVP} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	steps := []func(*excelize.File, workbookStyles, models.BusinessPlanData, *models.OperatingResults) error{
		writeResultsSheet,
		writeAmortizationSheet,
		writeLoanSheet,
		writeSummarySheet,
		writeCVPSheet,
	}
	for _, step := range steps {
		if err := step(f, styles, plan, res); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook streams the XLSX workbook to w.
func WriteWorkbook(w io.Writer, plan models.BusinessPlanData, res *models.OperatingResults) error {
	f, err := BuildWorkbook(plan, res)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: numFmtAmount}); err != nil {
		return s, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{NumFmt: numFmtAmount, Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	return s, nil
}

// writeRow writes values starting at column A of row.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRange(f *excelize.File, sheet string, fromCol, fromRow, toCol, toRow, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func writeResultsSheet(f *excelize.File, st workbookStyles, _ models.BusinessPlanData, res *models.OperatingResults) error {
	header := []interface{}{"Line"}
	for _, y := range res.Years {
		header = append(header, fmt.Sprintf("Year %d", y.Year))
	}
	if err := writeRow(f, SheetResults, 1, header); err != nil {
		return err
	}
	if err := styleRange(f, SheetResults, 1, 1, len(header), 1, st.header); err != nil {
		return err
	}

	for i, line := range incomeLines {
		row := i + 2
		values := []interface{}{line.Label}
		for _, y := range res.Years {
			values = append(values, RoundAmount(line.Value(y)))
		}
		if err := writeRow(f, SheetResults, row, values); err != nil {
			return err
		}
		style := st.amount
		if line.Total {
			style = st.total
		}
		if len(res.Years) > 0 {
			if err := styleRange(f, SheetResults, 2, row, len(values), row, style); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(SheetResults, "A", "A", 28)
}

func writeAmortizationSheet(f *excelize.File, st workbookStyles, _ models.BusinessPlanData, res *models.OperatingResults) error {
	horizon := len(res.Years)
	header := []interface{}{"Equipment", "Value excl. tax", "Duration"}
	for y := 1; y <= horizon; y++ {
		header = append(header, fmt.Sprintf("Year %d", y))
	}
	if err := writeRow(f, SheetAmortization, 1, header); err != nil {
		return err
	}
	if err := styleRange(f, SheetAmortization, 1, 1, len(header), 1, st.header); err != nil {
		return err
	}

	for i, r := range res.DetailedAmortization {
		values := []interface{}{r.Name, RoundAmount(r.ExclTaxValue), r.Duration}
		for _, v := range r.YearlyValues {
			values = append(values, RoundAmount(v))
		}
		if err := writeRow(f, SheetAmortization, i+2, values); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetAmortization, "A", "A", 28)
}

func writeLoanSheet(f *excelize.File, st workbookStyles, _ models.BusinessPlanData, res *models.OperatingResults) error {
	header := []interface{}{"Year", "Principal", "Interest", "Total", "Remaining balance"}
	if err := writeRow(f, SheetLoan, 1, header); err != nil {
		return err
	}
	if err := styleRange(f, SheetLoan, 1, 1, len(header), 1, st.header); err != nil {
		return err
	}

	for i, r := range res.LoanRepayment {
		values := []interface{}{r.Year, RoundAmount(r.Principal), RoundAmount(r.Interest), RoundAmount(r.Total), RoundAmount(r.RemainingBalance)}
		if err := writeRow(f, SheetLoan, i+2, values); err != nil {
			return err
		}
	}
	if n := len(res.LoanRepayment); n > 0 {
		return styleRange(f, SheetLoan, 2, 2, len(header), n+1, st.amount)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, st workbookStyles, plan models.BusinessPlanData, res *models.OperatingResults) error {
	s := res.Summary
	irr := interface{}(RoundAmount(s.IRR))
	if !s.IRRConverged {
		irr = "inconclusive"
	}
	bep := interface{}("unreachable")
	if s.BreakEvenPoint.Defined() {
		bep = RoundAmount(float64(s.BreakEvenPoint))
	}

	rows := [][]interface{}{
		{"Indicator", "Value"},
		{"Project", plan.ProjectTitle},
		{"Total investment", RoundAmount(s.TotalInvestment)},
		{"Net present value", RoundAmount(s.NPV)},
		{"Internal rate of return (%)", irr},
		{"Payback period", paybackText(s.Payback)},
		{"Cruise year", s.CruiseYear},
		{"Cruise year return (%)", RoundAmount(s.CruiseYearReturn)},
		{"Fixed costs", RoundAmount(s.FixedCosts)},
		{"Variable costs", RoundAmount(s.VariableCosts)},
		{"Contribution margin", RoundAmount(s.ContributionMargin)},
		{"Break-even point", bep},
	}
	for i, r := range rows {
		if err := writeRow(f, SheetSummary, i+1, r); err != nil {
			return err
		}
	}
	if err := styleRange(f, SheetSummary, 1, 1, 2, 1, st.header); err != nil {
		return err
	}
	if err := styleRange(f, SheetSummary, 2, 3, 2, len(rows), st.amount); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 32)
}

func writeCVPSheet(f *excelize.File, st workbookStyles, _ models.BusinessPlanData, res *models.OperatingResults) error {
	header := []interface{}{"Activity (%)", "Revenue", "Fixed costs", "Total costs"}
	if err := writeRow(f, SheetCVP, 1, header); err != nil {
		return err
	}
	if err := styleRange(f, SheetCVP, 1, 1, len(header), 1, st.header); err != nil {
		return err
	}

	for i, p := range res.CVP {
		values := []interface{}{p.Percentage, RoundAmount(p.Revenue), RoundAmount(p.FixedCosts), RoundAmount(p.TotalCosts)}
		if err := writeRow(f, SheetCVP, i+2, values); err != nil {
			return err
		}
	}
	if n := len(res.CVP); n > 0 {
		return styleRange(f, SheetCVP, 2, 2, len(header), n+1, st.amount)
	}
	return nil
}
