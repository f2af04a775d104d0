package calculation

import (
	"fmt"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates all retirement calculations. It holds no
// per-call state; every method is a function of its arguments and the
// engine's assumption set, so one engine may be shared between goroutines.
type CalculationEngine struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine with the default assumptions
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Assumptions: domain.DefaultAssumptions(),
		Logger:      NopLogger{},
	}
}

// NewCalculationEngineWithAssumptions creates an engine using a caller-supplied assumption set
func NewCalculationEngineWithAssumptions(a domain.Assumptions) (*CalculationEngine, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	return &CalculationEngine{Assumptions: a, Logger: NopLogger{}}, nil
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Analysis bundles every engine output for one profile and plan
type Analysis struct {
	Profile     domain.FinancialProfile     `json:"profile"`
	Plan        domain.RetirementPlan       `json:"plan"`
	Projection  domain.RetirementProjection `json:"projection"`
	Withdrawal  domain.WithdrawalProjection `json:"withdrawal"`
	FIRE        domain.FIREMetrics          `json:"fire"`
	MonteCarlo  *domain.MonteCarloResults   `json:"monte_carlo,omitempty"`
	Scenarios   []domain.ScenarioResult     `json:"scenarios,omitempty"`
	Comparison  domain.ScenarioComparison   `json:"comparison"`
	Assumptions []string                    `json:"assumptions"`

	ReadinessScore         decimal.Decimal `json:"readiness_score"`
	RequiredMonthlySavings decimal.Decimal `json:"required_monthly_savings"`
	OnTrack                bool            `json:"on_track"`
	Recommendations        []string        `json:"recommendations"`
}

// AnalysisOptions selects the optional parts of RunAnalysis
type AnalysisOptions struct {
	Projection ProjectionOptions
	MonteCarlo *MonteCarloConfig // nil skips the simulation
	Scenarios  []domain.ScenarioSpec
	Standard   bool // run the standard scenario suite as well
}

// RunAnalysis runs the projector, FIRE metrics and, when requested, the
// Monte Carlo simulation and the scenario analyzer.
func (ce *CalculationEngine) RunAnalysis(profile domain.FinancialProfile, plan domain.RetirementPlan, opts AnalysisOptions) (*Analysis, error) {
	accumulation := ce.ProjectToRetirementWithOptions(profile, plan, opts.Projection)
	withdrawal := ce.ProjectWithdrawal(profile, plan, accumulation, opts.Projection)

	a := &Analysis{
		Profile:     profile,
		Plan:        plan,
		Projection:  accumulation,
		Withdrawal:  withdrawal,
		FIRE:        ce.FIREMetrics(profile, plan),
		Assumptions: ce.Assumptions.Summary(),

		ReadinessScore:         plan.ReadinessScore(profile),
		RequiredMonthlySavings: plan.RequiredMonthlySavings(profile),
		OnTrack:                plan.IsOnTrack(profile),
	}

	if opts.MonteCarlo != nil {
		mc, err := ce.RunMonteCarlo(profile, plan, *opts.MonteCarlo)
		if err != nil {
			return nil, fmt.Errorf("monte carlo: %w", err)
		}
		a.MonteCarlo = mc
	}

	analyzer := ce.NewScenarioAnalyzer(profile, plan)
	if opts.Standard {
		results, err := analyzer.RunStandardScenarios()
		if err != nil {
			return nil, fmt.Errorf("standard scenarios: %w", err)
		}
		a.Scenarios = append(a.Scenarios, results...)
	}
	for _, spec := range opts.Scenarios {
		result, err := analyzer.Analyze(spec)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}
		a.Scenarios = append(a.Scenarios, result)
	}
	a.Comparison = CompareScenarios(a.Scenarios)
	a.Recommendations = ce.generateRecommendations(a.ReadinessScore, a.RequiredMonthlySavings, profile, a.MonteCarlo)

	ce.Logger.Infof("analysis for %s: %d projection rows, %d withdrawal rows, %d scenarios",
		profile.Name, len(accumulation.YearlyProjections), len(withdrawal.YearlyProjections), len(a.Scenarios))
	return a, nil
}
