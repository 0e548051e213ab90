package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"bizplan_forecast/pkg/core/export"
	"bizplan_forecast/pkg/core/projection"
	"bizplan_forecast/pkg/logger"
	"bizplan_forecast/pkg/models"
)

func main() {
	demo := flag.Bool("demo", false, "project the bundled demonstration plan")
	planPath := flag.String("plan", "", "plan file (.yaml, .yml or .json)")
	xlsxPath := flag.String("xlsx", "", "write an Excel workbook to this path")
	mdPath := flag.String("md", "", "write a Markdown report to this path")
	htmlPath := flag.String("html", "", "write an HTML report to this path")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logger.New(*level, "console")
	defer log.Sync()

	if *planPath == "" && flag.NArg() > 0 {
		*planPath = flag.Arg(0)
	}

	var plan models.BusinessPlanData
	switch {
	case *demo:
		plan = models.DemoPlan()
	case *planPath != "":
		p, err := models.LoadPlanFile(*planPath)
		if err != nil {
			log.Fatal("cannot load plan", zap.Error(err))
		}
		plan = p
	default:
		fmt.Fprintln(os.Stderr, "usage: projection [-demo | -plan file] [-xlsx out.xlsx] [-md out.md] [-html out.html]")
		os.Exit(2)
	}

	res := projection.Calculate(plan)
	printReport(os.Stdout, plan, res)

	for _, out := range []struct {
		path   string
		format export.Format
	}{
		{*xlsxPath, export.FormatXLSX},
		{*mdPath, export.FormatMarkdown},
		{*htmlPath, export.FormatHTML},
	} {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.format, plan, res); err != nil {
			log.Fatal("export failed", zap.String("format", string(out.format)), zap.Error(err))
		}
		fmt.Printf("Wrote %s\n", out.path)
	}
}

func writeFile(path string, f export.Format, plan models.BusinessPlanData, res *models.OperatingResults) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(file, f, plan, res); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func printReport(w io.Writer, plan models.BusinessPlanData, res *models.OperatingResults) {
	s := res.Summary
	title := plan.ProjectTitle
	if title == "" {
		title = "Business plan"
	}

	fmt.Fprintf(w, "=== %s ===\n\n", title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Total investment\t%s\t\n", export.FormatAmount(s.TotalInvestment))
	fmt.Fprintf(tw, "Net present value\t%s\t\n", export.FormatAmount(s.NPV))
	if s.IRRConverged {
		fmt.Fprintf(tw, "Internal rate of return\t%s\t\n", export.FormatPercent(s.IRR))
	} else {
		fmt.Fprintf(tw, "Internal rate of return\tn/a\t\n")
	}
	fmt.Fprintf(tw, "Cruise-year return (year %d)\t%s\t\n", s.CruiseYear, export.FormatPercent(s.CruiseYearReturn))
	if s.Payback != nil {
		fmt.Fprintf(tw, "Payback\t%dy %dm\t\n", s.Payback.Years, s.Payback.Months)
	} else {
		fmt.Fprintf(tw, "Payback\tnot recovered\t\n")
	}
	fmt.Fprintf(tw, "Break-even turnover\t%s\t\n", export.FormatAmount(float64(s.BreakEvenPoint)))
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tTurnover\tExpenses\tPre-tax\tTaxes\tNet result\tCash flow\t")
	for _, y := range res.Years {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year,
			export.FormatAmount(y.Turnover),
			export.FormatAmount(y.TotalExpenses),
			export.FormatAmount(y.PreTaxIncome),
			export.FormatAmount(y.TotalTaxes),
			export.FormatAmount(y.NetResult),
			export.FormatAmount(y.CashFlow),
		)
	}
	tw.Flush()
}
