package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyProjection is one row of a projection time series
type YearlyProjection struct {
	Year             int             `json:"year"`
	Age              int             `json:"age"`
	PortfolioValue   decimal.Decimal `json:"portfolio_value"`
	Contribution     decimal.Decimal `json:"contribution"` // negative while withdrawing
	InvestmentReturn decimal.Decimal `json:"investment_return"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetWorth         decimal.Decimal `json:"net_worth"`
}

// RetirementProjection is the accumulation phase from today to the target age
type RetirementProjection struct {
	YearlyProjections       []YearlyProjection `json:"yearly_projections"`
	TotalContributions      decimal.Decimal    `json:"total_contributions"`
	TotalReturns            decimal.Decimal    `json:"total_returns"`
	FinalPortfolioValue     decimal.Decimal    `json:"final_portfolio_value"`
	RequiredPortfolioValue  decimal.Decimal    `json:"required_portfolio_value"`
	RetirementFeasible      bool               `json:"retirement_feasible"`
	YearsOfRetirementFunded int                `json:"years_of_retirement_funded"`
}

// WithdrawalProjection is the drawdown phase that follows retirement
type WithdrawalProjection struct {
	YearlyProjections []YearlyProjection `json:"yearly_projections"`
	RequestedYears    int                `json:"requested_years"`
	StartingPortfolio decimal.Decimal    `json:"starting_portfolio"`
	InitialNeed       decimal.Decimal    `json:"initial_need"` // first-year withdrawal, net of social security
	Depleted          bool               `json:"depleted"`
	DepletionAge      int                `json:"depletion_age,omitempty"`
}

// YearsFunded is the number of withdrawal years the portfolio covered.
func (w WithdrawalProjection) YearsFunded() int {
	if w.Depleted {
		return len(w.YearlyProjections) - 1
	}
	return len(w.YearlyProjections)
}

// MonteCarloResults summarizes a batch of randomized accumulation runs
type MonteCarloResults struct {
	Outcomes               []SimulationOutcome `json:"-"`
	EndingBalances         []decimal.Decimal   `json:"-"` // ascending
	SuccessRate            decimal.Decimal     `json:"success_rate"`
	MedianEndingBalance    decimal.Decimal     `json:"median_ending_balance"`
	PercentileRanges       PercentileRanges    `json:"percentile_ranges"`
	RequiredPortfolioValue decimal.Decimal     `json:"required_portfolio_value"`
	NumSimulations         int                 `json:"num_simulations"`
	Seed                   int64               `json:"seed"`

	// Populated only when trials continue through the withdrawal phase.
	FullHorizon       bool            `json:"full_horizon"`
	SurvivalRate      decimal.Decimal `json:"survival_rate,omitempty"`
	MedianYearsFunded int             `json:"median_years_funded,omitempty"`
}

// SimulationOutcome represents a single Monte Carlo simulation outcome
type SimulationOutcome struct {
	Trial         int             `json:"trial"`
	EndingBalance decimal.Decimal `json:"ending_balance"` // at retirement
	Success       bool            `json:"success"`
	YearsFunded   int             `json:"years_funded,omitempty"`
	Survived      bool            `json:"survived,omitempty"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// FIREMetrics are the financial independence targets derived from annual expenses
type FIREMetrics struct {
	AnnualExpenses    decimal.Decimal `json:"annual_expenses"`
	CurrentAssets     decimal.Decimal `json:"current_assets"`
	FIRENumber        decimal.Decimal `json:"fire_number"`
	LeanFIRENumber    decimal.Decimal `json:"lean_fire_number"`
	FatFIRENumber     decimal.Decimal `json:"fat_fire_number"`
	BaristaFIRENumber decimal.Decimal `json:"barista_fire_number"`
	CoastFIRENumber   decimal.Decimal `json:"coast_fire_number"`
	CurrentProgress   decimal.Decimal `json:"current_progress_percent"`
	YearsToFIRE       decimal.Decimal `json:"years_to_fire"`
}

// ScenarioResult is the outcome of one what-if perturbation
type ScenarioResult struct {
	Name                   string            `json:"scenario_name"`
	ReadinessScore         decimal.Decimal   `json:"readiness_score"`
	RequiredMonthlySavings decimal.Decimal   `json:"required_monthly_savings"`
	ProjectedValue         decimal.Decimal   `json:"projected_value"`
	YearsToFI              int               `json:"years_to_fi"`
	Changes                map[string]string `json:"changes"`
}

// ScenarioComparison ranks a set of scenario results
type ScenarioComparison struct {
	Count                  int             `json:"count"`
	BestScenario           ScenarioResult  `json:"best_scenario"`
	WorstScenario          ScenarioResult  `json:"worst_scenario"`
	LowestSavingsRequired  ScenarioResult  `json:"lowest_savings_required"`
	HighestSavingsRequired ScenarioResult  `json:"highest_savings_required"`
	ScoreRange             decimal.Decimal `json:"score_range"`
}

// IsEmpty reports whether the comparison was built from no results.
func (c ScenarioComparison) IsEmpty() bool {
	return c.Count == 0
}

// SensitivitySweep is a single parameter evaluated at evenly spaced values
type SensitivitySweep struct {
	Parameter  ScenarioKind       `json:"parameter"`
	Values     []decimal.Decimal  `json:"values"`
	Results    []ScenarioResult   `json:"results"`
	Comparison ScenarioComparison `json:"comparison"`
}
