package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/firefly/retirement-planner/internal/calculation"
	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Report is what every formatter renders. Nil sections are skipped.
type Report struct {
	Title      string                       `json:"title,omitempty"`
	Profile    *domain.FinancialProfile     `json:"profile,omitempty"`
	Plan       *domain.RetirementPlan       `json:"plan,omitempty"`
	Portfolio  *domain.Portfolio            `json:"portfolio,omitempty"`
	Readiness  *Readiness                   `json:"readiness,omitempty"`
	Projection *domain.RetirementProjection `json:"projection,omitempty"`
	Withdrawal *domain.WithdrawalProjection `json:"withdrawal,omitempty"`
	FIRE       *domain.FIREMetrics          `json:"fire,omitempty"`
	MonteCarlo *domain.MonteCarloResults    `json:"monte_carlo,omitempty"`
	Scenarios  []domain.ScenarioResult      `json:"scenarios,omitempty"`
	Comparison *domain.ScenarioComparison   `json:"comparison,omitempty"`
	Sweep      *domain.SensitivitySweep     `json:"sweep,omitempty"`

	Recommendations []string `json:"recommendations,omitempty"`
	Assumptions     []string `json:"assumptions,omitempty"`
}

// Readiness is the headline verdict for a profile and plan.
type Readiness struct {
	Score                  decimal.Decimal `json:"score"`
	RequiredMonthlySavings decimal.Decimal `json:"required_monthly_savings"`
	OnTrack                bool            `json:"on_track"`
}

// NewAnalysisReport lifts a full engine analysis into a report.
func NewAnalysisReport(a *calculation.Analysis, portfolio *domain.Portfolio) *Report {
	r := &Report{
		Title:      "Retirement Analysis",
		Profile:    &a.Profile,
		Plan:       &a.Plan,
		Portfolio:  portfolio,
		Projection: &a.Projection,
		Withdrawal: &a.Withdrawal,
		FIRE:       &a.FIRE,
		MonteCarlo: a.MonteCarlo,
		Scenarios:  a.Scenarios,
		Readiness: &Readiness{
			Score:                  a.ReadinessScore,
			RequiredMonthlySavings: a.RequiredMonthlySavings,
			OnTrack:                a.OnTrack,
		},
		Recommendations: a.Recommendations,
		Assumptions:     a.Assumptions,
	}
	if !a.Comparison.IsEmpty() {
		r.Comparison = &a.Comparison
	}
	return r
}

// GenerateReport writes report to a timestamped file in dir using the named format.
func GenerateReport(report *Report, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", unsupported(format)
	}
	return WriteFormatted(f, report, dir, extensionFor(f.Name()))
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case strings.HasPrefix(name, "console"):
		return "txt"
	default:
		return name
	}
}

// SaveConfiguration writes config as YAML to filename.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
