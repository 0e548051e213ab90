package export

import (
	"fmt"
	"strings"

	"bizplan_forecast/pkg/models"
)

// RenderMarkdown writes the business plan report: narrative sections,
// summary indicators, the yearly income statement and the loan schedule.
func RenderMarkdown(plan models.BusinessPlanData, res *models.OperatingResults) string {
	var b strings.Builder

	title := plan.ProjectTitle
	if title == "" {
		title = "Business plan"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if plan.Industry != "" || plan.LegalStructure != "" {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Trim(strings.Join([]string{plan.Industry, string(plan.LegalStructure)}, " · "), " ·"))
	}

	n := plan.Narrative
	section(&b, "Executive summary", n.ExecutiveSummary)
	section(&b, "Project description", n.ProjectDescription)
	section(&b, "Market study", n.MarketStudy)
	section(&b, "Marketing strategy", n.MarketingStrategy)

	writeSummary(&b, res.Summary)
	writeIncomeTable(&b, res.Years)
	writeLoanTable(&b, res.LoanRepayment)

	section(&b, "Profitability analysis", n.ProfitabilityAnalysis)
	writeSWOT(&b, n)
	section(&b, "Conclusion", n.Conclusion)

	return b.String()
}

func section(b *strings.Builder, heading, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", heading, text)
}

func writeSummary(b *strings.Builder, s models.Summary) {
	irr := FormatPercent(s.IRR)
	if !s.IRRConverged {
		irr = "inconclusive"
	}
	bep := "unreachable"
	if s.BreakEvenPoint.Defined() {
		bep = FormatAmount(float64(s.BreakEvenPoint))
	}

	b.WriteString("## Key indicators\n\n")
	b.WriteString("| Indicator | Value |\n|---|---:|\n")
	rows := [][2]string{
		{"Total investment", FormatAmount(s.TotalInvestment)},
		{"Net present value", FormatAmount(s.NPV)},
		{"Internal rate of return", irr},
		{"Payback period", paybackText(s.Payback)},
		{fmt.Sprintf("Return in cruise year (year %d)", s.CruiseYear), FormatPercent(s.CruiseYearReturn)},
		{"Fixed costs", FormatAmount(s.FixedCosts)},
		{"Variable costs", FormatAmount(s.VariableCosts)},
		{"Contribution margin", FormatAmount(s.ContributionMargin)},
		{"Break-even point", bep},
	}
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], r[1])
	}
	b.WriteString("\n")
}

func writeIncomeTable(b *strings.Builder, years []models.YearlyResults) {
	if len(years) == 0 {
		return
	}
	b.WriteString("## Projected income statement\n\n| |")
	for _, y := range years {
		fmt.Fprintf(b, " Year %d |", y.Year)
	}
	b.WriteString("\n|---|" + strings.Repeat("---:|", len(years)) + "\n")

	for _, line := range incomeLines {
		label := line.Label
		if line.Total {
			label = "**" + label + "**"
		}
		fmt.Fprintf(b, "| %s |", label)
		for _, y := range years {
			fmt.Fprintf(b, " %s |", FormatAmount(line.Value(y)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeLoanTable(b *strings.Builder, rows []models.LoanRepaymentRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Loan repayment\n\n")
	b.WriteString("| Year | Principal | Interest | Total | Remaining balance |\n|---:|---:|---:|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			r.Year, FormatAmount(r.Principal), FormatAmount(r.Interest), FormatAmount(r.Total), FormatAmount(r.RemainingBalance))
	}
	b.WriteString("\n")
}

func writeSWOT(b *strings.Builder, n models.Narrative) {
	parts := [][2]string{
		{"Strengths", n.Strengths},
		{"Weaknesses", n.Weaknesses},
		{"Opportunities", n.Opportunities},
		{"Threats", n.Threats},
	}
	empty := true
	for _, p := range parts {
		if strings.TrimSpace(p[1]) != "" {
			empty = false
		}
	}
	if empty {
		return
	}

	b.WriteString("## SWOT analysis\n\n")
	for _, p := range parts {
		if text := strings.TrimSpace(p[1]); text != "" {
			fmt.Fprintf(b, "### %s\n\n%s\n\n", p[0], text)
		}
	}
}
