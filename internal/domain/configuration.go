package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioKind names a single-parameter perturbation
type ScenarioKind string

const (
	ScenarioIncomeChange  ScenarioKind = "income_change"  // Value: fractional change, 0.2 for +20%
	ScenarioSavingsRate   ScenarioKind = "savings_rate"   // Value: new savings rate
	ScenarioRetirementAge ScenarioKind = "retirement_age" // Value: new target age
	ScenarioReturnRate    ScenarioKind = "return_rate"    // Value: new expected return
	ScenarioExpenseChange ScenarioKind = "expense_change" // Value: fractional change
	ScenarioDebtPayoff    ScenarioKind = "debt_payoff"    // Debt: name of the debt
	ScenarioMarketCrash   ScenarioKind = "market_crash"   // Value: fractional decline, -0.3 for a 30% crash
)

// Valid reports whether k is a known scenario kind.
func (k ScenarioKind) Valid() bool {
	switch k {
	case ScenarioIncomeChange, ScenarioSavingsRate, ScenarioRetirementAge, ScenarioReturnRate,
		ScenarioExpenseChange, ScenarioDebtPayoff, ScenarioMarketCrash:
		return true
	}
	return false
}

// ScenarioSpec describes one what-if scenario read from input
type ScenarioSpec struct {
	Name  string          `yaml:"name" json:"name"`
	Kind  ScenarioKind    `yaml:"type" json:"type"`
	Value decimal.Decimal `yaml:"value,omitempty" json:"value,omitempty"`
	Debt  string          `yaml:"debt,omitempty" json:"debt,omitempty"`
}

// Configuration is everything needed for one analysis session
type Configuration struct {
	Profile   FinancialProfile `yaml:"profile" json:"profile"`
	Plan      RetirementPlan   `yaml:"plan" json:"plan"`
	Portfolio *Portfolio       `yaml:"portfolio,omitempty" json:"portfolio,omitempty"`
	Scenarios []ScenarioSpec   `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}
