package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bizplan_forecast/pkg/core/export"
	"bizplan_forecast/pkg/models"
)

// Section ids
const (
	SectionExecutiveSummary      = "executive_summary"
	SectionProjectDescription    = "project_description"
	SectionMarketStudy           = "market_study"
	SectionMarketingStrategy     = "marketing_strategy"
	SectionProfitabilityAnalysis = "profitability_analysis"
	SectionSWOT                  = "swot"
	SectionConclusion            = "conclusion"
	SectionEditorAdvice          = "editor_advice"
)

// SectionRequest asks for one narrative section.
type SectionRequest struct {
	Section string                   `json:"section"`
	Plan    models.BusinessPlanData  `json:"plan"`
	Results *models.OperatingResults `json:"results,omitempty"`

	// Draft is the user's current text; long drafts are rewritten instead of replaced.
	Draft string `json:"draft,omitempty"`
}

// SectionResult is the generated text. SWOT is set for the swot section.
type SectionResult struct {
	Section  string `json:"section"`
	Provider string `json:"provider"`
	Text     string `json:"text"`
	SWOT     *SWOT  `json:"swot,omitempty"`
}

// Writer turns section requests into prompts and runs them on a Manager.
type Writer struct {
	manager  *Manager
	prompts  *PromptLibrary
	defaults GenerationOptions
	log      *zap.Logger
}

func NewWriter(manager *Manager, prompts *PromptLibrary, defaults GenerationOptions, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{manager: manager, prompts: prompts, defaults: defaults, log: log}
}

// GenerateSection builds the section prompt from the plan (and the computed
// results when the section comments on figures) and generates the text.
func (w *Writer) GenerateSection(ctx context.Context, req SectionRequest) (*SectionResult, error) {
	section, err := w.prompts.Section(req.Section)
	if err != nil {
		return nil, err
	}

	var results *models.OperatingResults
	if section.UsesResults {
		results = req.Results
	}
	prompt, system, err := w.prompts.Build(section, PlanContext(req.Plan, results), req.Draft)
	if err != nil {
		return nil, err
	}

	opts := w.defaults
	opts.SystemInstruction = system

	text, err := w.manager.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}

	out := &SectionResult{Section: req.Section, Provider: w.manager.ActiveID()}
	if section.JSON {
		swot, err := ParseSWOT(text)
		if err != nil {
			w.log.Warn("structured section unparseable", zap.String("section", req.Section), zap.Error(err))
			return nil, fmt.Errorf("section %s: %w", req.Section, err)
		}
		out.SWOT = &swot
		out.Text = swotMarkdown(swot)
	} else {
		out.Text = CleanText(text)
	}

	w.log.Info("section generated",
		zap.String("section", req.Section),
		zap.String("provider", out.Provider),
		zap.Int("chars", len(out.Text)),
	)
	return out, nil
}

// ApplyNarrative stores a generated section in the plan. The swot section
// fills the four SWOT fields.
func ApplyNarrative(plan *models.BusinessPlanData, res *SectionResult) error {
	n := &plan.Narrative
	switch res.Section {
	case SectionExecutiveSummary:
		n.ExecutiveSummary = res.Text
	case SectionProjectDescription:
		n.ProjectDescription = res.Text
	case SectionMarketStudy:
		n.MarketStudy = res.Text
	case SectionMarketingStrategy:
		n.MarketingStrategy = res.Text
	case SectionProfitabilityAnalysis:
		n.ProfitabilityAnalysis = res.Text
	case SectionConclusion:
		n.Conclusion = res.Text
	case SectionEditorAdvice:
		n.EditorAdvice = res.Text
	case SectionSWOT:
		if res.SWOT == nil {
			return fmt.Errorf("swot section without structured result")
		}
		n.Strengths = res.SWOT.Strengths
		n.Weaknesses = res.SWOT.Weaknesses
		n.Opportunities = res.SWOT.Opportunities
		n.Threats = res.SWOT.Threats
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, res.Section)
	}
	return nil
}

// PlanContext summarises the plan for a prompt. Figures are included only
// when results are given.
func PlanContext(plan models.BusinessPlanData, results *models.OperatingResults) string {
	var b strings.Builder
	b.WriteString("BUSINESS PLAN CONTEXT:\n")
	fmt.Fprintf(&b, "Company: %s\n", orUndefined(plan.ProjectTitle))
	fmt.Fprintf(&b, "Industry: %s\n", orUndefined(plan.Industry))
	fmt.Fprintf(&b, "Legal structure: %s\n", orUndefined(string(plan.LegalStructure)))
	if d := strings.TrimSpace(plan.Narrative.ProjectDescription); d != "" {
		fmt.Fprintf(&b, "Project: %s\n", d)
	}

	if len(plan.Products) > 0 {
		names := make([]string, 0, len(plan.Products))
		for _, p := range plan.Products {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "Products: %s\n", strings.Join(names, ", "))
	}

	if results == nil || len(results.Years) == 0 {
		return strings.TrimSpace(b.String())
	}

	s := results.Summary
	first, last := results.Years[0], results.Years[len(results.Years)-1]
	b.WriteString("\nKEY FIGURES:\n")
	fmt.Fprintf(&b, "Total investment: %s\n", export.FormatAmount(s.TotalInvestment))
	fmt.Fprintf(&b, "Turnover year 1: %s, year %d: %s\n", export.FormatAmount(first.Turnover), last.Year, export.FormatAmount(last.Turnover))
	fmt.Fprintf(&b, "Net result year 1: %s, cruise year %d: %s\n", export.FormatAmount(first.NetResult), s.CruiseYear, export.FormatAmount(s.CruiseYearData.NetResult))
	fmt.Fprintf(&b, "Net present value: %s\n", export.FormatAmount(s.NPV))
	if s.IRRConverged {
		fmt.Fprintf(&b, "Internal rate of return: %s\n", export.FormatPercent(s.IRR))
	}
	if s.Payback != nil {
		fmt.Fprintf(&b, "Payback: %d years %d months\n", s.Payback.Years, s.Payback.Months)
	} else {
		b.WriteString("Payback: not recovered within the horizon\n")
	}
	if s.BreakEvenPoint.Defined() {
		fmt.Fprintf(&b, "Break-even turnover (cruise year): %s\n", export.FormatAmount(float64(s.BreakEvenPoint)))
	}
	return strings.TrimSpace(b.String())
}

func orUndefined(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not defined"
	}
	return s
}

func swotMarkdown(s SWOT) string {
	var b strings.Builder
	for _, part := range [][2]string{
		{"Strengths", s.Strengths},
		{"Weaknesses", s.Weaknesses},
		{"Opportunities", s.Opportunities},
		{"Threats", s.Threats},
	} {
		if part[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", part[0], part[1])
	}
	return strings.TrimSpace(b.String())
}
