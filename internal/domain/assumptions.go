package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Assumptions contains the shared defaults and limits used across the engine.
// Every field can be overridden from YAML or from a FIREFLY_* environment variable.
type Assumptions struct {
	// Financial defaults
	ReturnRate        decimal.Decimal `yaml:"return_rate" json:"return_rate" env:"RETURN_RATE"`
	InflationRate     decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate" env:"INFLATION_RATE"`
	WithdrawalRate    decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate" env:"WITHDRAWAL_RATE"`
	IncomeGrowthRate  decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate" env:"INCOME_GROWTH_RATE"`
	ExpenseGrowthRate decimal.Decimal `yaml:"expense_growth_rate" json:"expense_growth_rate" env:"EXPENSE_GROWTH_RATE"`

	// Retirement planning defaults
	RetirementAge          int             `yaml:"retirement_age" json:"retirement_age" env:"RETIREMENT_AGE"`
	IncomeReplacementRatio decimal.Decimal `yaml:"income_replacement_ratio" json:"income_replacement_ratio" env:"INCOME_REPLACEMENT_RATIO"`
	SocialSecurityRatio    decimal.Decimal `yaml:"social_security_ratio" json:"social_security_ratio" env:"SOCIAL_SECURITY_RATIO"`
	WithdrawalYears        int             `yaml:"withdrawal_years" json:"withdrawal_years" env:"WITHDRAWAL_YEARS"`

	// Portfolio defaults
	StockAllocation  decimal.Decimal `yaml:"stock_allocation" json:"stock_allocation" env:"STOCK_ALLOCATION"`
	BondAllocation   decimal.Decimal `yaml:"bond_allocation" json:"bond_allocation" env:"BOND_ALLOCATION"`
	StockReturn      decimal.Decimal `yaml:"stock_return" json:"stock_return" env:"STOCK_RETURN"`
	BondReturn       decimal.Decimal `yaml:"bond_return" json:"bond_return" env:"BOND_RETURN"`
	MarketVolatility decimal.Decimal `yaml:"market_volatility" json:"market_volatility" env:"MARKET_VOLATILITY"`

	// FIRE
	FIREWithdrawalRate decimal.Decimal `yaml:"fire_withdrawal_rate" json:"fire_withdrawal_rate" env:"FIRE_WITHDRAWAL_RATE"`
	FIREMultiplier     decimal.Decimal `yaml:"fire_multiplier" json:"fire_multiplier" env:"FIRE_MULTIPLIER"`
	LeanFIRERatio      decimal.Decimal `yaml:"lean_fire_ratio" json:"lean_fire_ratio" env:"LEAN_FIRE_RATIO"`
	FatFIRERatio       decimal.Decimal `yaml:"fat_fire_ratio" json:"fat_fire_ratio" env:"FAT_FIRE_RATIO"`
	BaristaFIRERatio   decimal.Decimal `yaml:"barista_fire_ratio" json:"barista_fire_ratio" env:"BARISTA_FIRE_RATIO"`

	// Monte Carlo
	MonteCarloSimulations      int             `yaml:"monte_carlo_simulations" json:"monte_carlo_simulations" env:"MONTE_CARLO_SIMULATIONS"`
	MonteCarloSuccessThreshold decimal.Decimal `yaml:"monte_carlo_success_threshold" json:"monte_carlo_success_threshold" env:"MONTE_CARLO_SUCCESS_THRESHOLD"`

	// Input validation limits
	MinAge           int             `yaml:"min_age" json:"min_age" env:"MIN_AGE"`
	MaxAge           int             `yaml:"max_age" json:"max_age" env:"MAX_AGE"`
	MinRetirementAge int             `yaml:"min_retirement_age" json:"min_retirement_age" env:"MIN_RETIREMENT_AGE"`
	MaxRetirementAge int             `yaml:"max_retirement_age" json:"max_retirement_age" env:"MAX_RETIREMENT_AGE"`
	MaxIncome        decimal.Decimal `yaml:"max_income" json:"max_income" env:"MAX_INCOME"`
	MaxSavingsRate   decimal.Decimal `yaml:"max_savings_rate" json:"max_savings_rate" env:"MAX_SAVINGS_RATE"`
	MaxExpenseRatio  decimal.Decimal `yaml:"max_expense_ratio" json:"max_expense_ratio" env:"MAX_EXPENSE_RATIO"`
}

// DefaultAssumptions returns the built-in assumption set
func DefaultAssumptions() Assumptions {
	return Assumptions{
		ReturnRate:        decimal.NewFromFloat(0.07),
		InflationRate:     decimal.NewFromFloat(0.025),
		WithdrawalRate:    decimal.NewFromFloat(0.04),
		IncomeGrowthRate:  decimal.NewFromFloat(0.03),
		ExpenseGrowthRate: decimal.NewFromFloat(0.025),

		RetirementAge:          65,
		IncomeReplacementRatio: decimal.NewFromFloat(0.8),
		SocialSecurityRatio:    decimal.NewFromFloat(0.25),
		WithdrawalYears:        30,

		StockAllocation:  decimal.NewFromFloat(0.7),
		BondAllocation:   decimal.NewFromFloat(0.3),
		StockReturn:      decimal.NewFromFloat(0.10),
		BondReturn:       decimal.NewFromFloat(0.04),
		MarketVolatility: decimal.NewFromFloat(0.15),

		FIREWithdrawalRate: decimal.NewFromFloat(0.04),
		FIREMultiplier:     decimal.NewFromInt(25),
		LeanFIRERatio:      decimal.NewFromFloat(0.6),
		FatFIRERatio:       decimal.NewFromFloat(1.5),
		BaristaFIRERatio:   decimal.NewFromFloat(0.7),

		MonteCarloSimulations:      1000,
		MonteCarloSuccessThreshold: decimal.NewFromFloat(0.9),

		MinAge:           18,
		MaxAge:           120,
		MinRetirementAge: 50,
		MaxRetirementAge: 80,
		MaxIncome:        decimal.NewFromInt(10_000_000),
		MaxSavingsRate:   decimal.NewFromFloat(0.8),
		MaxExpenseRatio:  decimal.NewFromFloat(2.0),
	}
}

// Validate checks that the assumption set can drive the engine.
func (a Assumptions) Validate() error {
	if !a.WithdrawalRate.IsPositive() {
		return invalid("withdrawal_rate", "must be positive, got %s", a.WithdrawalRate)
	}
	if !a.FIREWithdrawalRate.IsPositive() {
		return invalid("fire_withdrawal_rate", "must be positive, got %s", a.FIREWithdrawalRate)
	}
	if a.FIREMultiplier.IsNegative() {
		return invalid("fire_multiplier", "cannot be negative, got %s", a.FIREMultiplier)
	}
	if a.MonteCarloSimulations <= 0 {
		return invalid("monte_carlo_simulations", "must be positive, got %d", a.MonteCarloSimulations)
	}
	if a.MarketVolatility.IsNegative() {
		return invalid("market_volatility", "cannot be negative, got %s", a.MarketVolatility)
	}
	if a.WithdrawalYears <= 0 {
		return invalid("withdrawal_years", "must be positive, got %d", a.WithdrawalYears)
	}
	if sum := a.StockAllocation.Add(a.BondAllocation); !sum.Equal(decimal.NewFromInt(1)) {
		return invalid("stock_allocation", "stock and bond allocation must sum to 1, got %s", sum)
	}
	if a.MinAge > a.MaxAge || a.MinRetirementAge > a.MaxRetirementAge {
		return invalid("min_age", "age bounds are inverted")
	}
	return nil
}

// BlendedReturn is the allocation-weighted stock/bond return.
func (a Assumptions) BlendedReturn() decimal.Decimal {
	return a.StockAllocation.Mul(a.StockReturn).Add(a.BondAllocation.Mul(a.BondReturn))
}

// Summary lists the assumptions that drive a projection, for reports
func (a Assumptions) Summary() []string {
	pct := func(v decimal.Decimal) float64 { return v.Mul(hundred).InexactFloat64() }
	return []string{
		fmt.Sprintf("Investment return: %.1f%% annually", pct(a.ReturnRate)),
		fmt.Sprintf("Inflation: %.1f%% annually", pct(a.InflationRate)),
		fmt.Sprintf("Safe withdrawal rate: %.1f%%", pct(a.WithdrawalRate)),
		fmt.Sprintf("Income growth: %.1f%%, expense growth: %.1f%%", pct(a.IncomeGrowthRate), pct(a.ExpenseGrowthRate)),
		fmt.Sprintf("Market volatility (Monte Carlo): %.1f%%", pct(a.MarketVolatility)),
		fmt.Sprintf("Blended %.0f/%.0f stock/bond return: %.1f%%", pct(a.StockAllocation), pct(a.BondAllocation), pct(a.BlendedReturn())),
		fmt.Sprintf("FIRE number: %sx annual expenses", a.FIREMultiplier.String()),
	}
}
