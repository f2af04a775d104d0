package config

import (
	"fmt"
	"os"
	"time"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct {
	assumptions domain.Assumptions
}

// NewInputParser creates a new input parser using the default assumptions
func NewInputParser() *InputParser {
	return &InputParser{assumptions: domain.DefaultAssumptions()}
}

// NewInputParserWithAssumptions creates a parser whose defaults and limits come from a
func NewInputParserWithAssumptions(a domain.Assumptions) *InputParser {
	return &InputParser{assumptions: a}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses a YAML (or JSON) document. Growth and plan rates the
// document leaves out take their values from the parser's assumptions.
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	config := ip.baseConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.fillDefaults(config)

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// baseConfiguration is the document a YAML file is decoded over.
func (ip *InputParser) baseConfiguration() *domain.Configuration {
	a := ip.assumptions
	return &domain.Configuration{
		Profile: domain.FinancialProfile{
			IncomeGrowthRate:  a.IncomeGrowthRate,
			ExpenseGrowthRate: a.ExpenseGrowthRate,
		},
		Plan: domain.RetirementPlan{
			IncomeReplacementRatio: a.IncomeReplacementRatio,
			InflationRate:          a.InflationRate,
			ReturnRate:             a.ReturnRate,
			WithdrawalRate:         a.WithdrawalRate,
		},
	}
}

// fillDefaults reconciles the profile and plan retirement ages and gives
// investments without return figures the market defaults.
func (ip *InputParser) fillDefaults(config *domain.Configuration) {
	profile, plan := &config.Profile, &config.Plan
	switch {
	case plan.TargetRetirementAge == 0 && profile.RetirementAge != 0:
		plan.TargetRetirementAge = profile.RetirementAge
	case plan.TargetRetirementAge == 0:
		plan.TargetRetirementAge = ip.assumptions.RetirementAge
	}
	if profile.RetirementAge == 0 {
		profile.RetirementAge = plan.TargetRetirementAge
	}

	if config.Portfolio != nil {
		for i := range config.Portfolio.Investments {
			inv := &config.Portfolio.Investments[i]
			if inv.ReturnRate.IsZero() {
				inv.ReturnRate = ip.assumptions.ReturnRate
			}
			if inv.Volatility.IsZero() {
				inv.Volatility = ip.assumptions.MarketVolatility
			}
		}
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateProfile(&config.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := ip.validatePlan(&config.Plan, &config.Profile); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}
	if config.Portfolio != nil {
		if err := validatePortfolio(config.Portfolio); err != nil {
			return fmt.Errorf("portfolio validation failed: %w", err)
		}
	}
	for i, scenario := range config.Scenarios {
		if err := validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}
	return nil
}

// validateProfile validates the personal and financial details
func (ip *InputParser) validateProfile(profile *domain.FinancialProfile) error {
	a := ip.assumptions

	if profile.Name == "" {
		return fieldError("name", "name is required")
	}
	if profile.BirthDate.IsZero() {
		return fieldError("birth_date", "birth date is required")
	}
	if profile.BirthDate.After(profile.ValuationDate()) {
		return fieldError("birth_date", "birth date cannot be in the future")
	}

	age := profile.Age()
	if age < a.MinAge || age > a.MaxAge {
		return fieldError("birth_date", "age must be between %d and %d, got %d", a.MinAge, a.MaxAge, age)
	}
	if err := ip.validateRetirementAge("retirement_age", profile.RetirementAge, age); err != nil {
		return err
	}

	if profile.AnnualIncome.GreaterThan(a.MaxIncome) {
		return fieldError("annual_income", "annual income cannot exceed %s", a.MaxIncome)
	}
	if err := validateRate("income_growth_rate", profile.IncomeGrowthRate); err != nil {
		return err
	}
	if err := validateRate("expense_growth_rate", profile.ExpenseGrowthRate); err != nil {
		return err
	}

	if profile.AnnualIncome.IsPositive() {
		if rate := profile.SavingsRate(); rate.GreaterThan(a.MaxSavingsRate) {
			return fieldError("monthly_savings", "savings rate %s exceeds the %s limit",
				rate.StringFixed(2), a.MaxSavingsRate.String())
		}
		if ratio := profile.AnnualExpenses().Div(profile.AnnualIncome); ratio.GreaterThan(a.MaxExpenseRatio) {
			return fieldError("monthly_expenses", "expenses are %s times income, limit is %s",
				ratio.StringFixed(2), a.MaxExpenseRatio.String())
		}
	}

	return profile.Validate()
}

// validatePlan validates the retirement goal against the profile it belongs to
func (ip *InputParser) validatePlan(plan *domain.RetirementPlan, profile *domain.FinancialProfile) error {
	if err := ip.validateRetirementAge("target_retirement_age", plan.TargetRetirementAge, profile.Age()); err != nil {
		return err
	}
	for _, r := range []struct {
		field string
		value decimal.Decimal
	}{
		{"income_replacement_ratio", plan.IncomeReplacementRatio},
		{"inflation_rate", plan.InflationRate},
		{"investment_return_rate", plan.ReturnRate},
		{"withdrawal_rate", plan.WithdrawalRate},
	} {
		if err := validateRate(r.field, r.value); err != nil {
			return err
		}
	}
	return plan.Validate()
}

func (ip *InputParser) validateRetirementAge(field string, retirementAge, currentAge int) error {
	a := ip.assumptions
	if retirementAge < a.MinRetirementAge || retirementAge > a.MaxRetirementAge {
		return fieldError(field, "retirement age must be between %d and %d, got %d",
			a.MinRetirementAge, a.MaxRetirementAge, retirementAge)
	}
	if retirementAge < currentAge {
		return fieldError(field, "retirement age %d is below current age %d", retirementAge, currentAge)
	}
	return nil
}

func validatePortfolio(portfolio *domain.Portfolio) error {
	seen := make(map[string]bool, len(portfolio.Investments))
	for _, inv := range portfolio.Investments {
		if inv.Symbol == "" {
			return fieldError("investments", "investment symbol is required")
		}
		if seen[inv.Symbol] {
			return fieldError("investments", "duplicate investment %q", inv.Symbol)
		}
		seen[inv.Symbol] = true
		if !inv.AssetClass.Valid() {
			return fieldError("asset_class", "unknown asset class %q for %s", inv.AssetClass, inv.Symbol)
		}
		if inv.Shares.IsNegative() || inv.CurrentPrice.IsNegative() {
			return fieldError("investments", "shares and price for %s cannot be negative", inv.Symbol)
		}
		if inv.Volatility.IsNegative() {
			return fieldError("annual_volatility", "volatility for %s cannot be negative", inv.Symbol)
		}
	}
	return nil
}

// validateScenario validates a single scenario
func validateScenario(scenario *domain.ScenarioSpec) error {
	if scenario.Name == "" {
		return fieldError("name", "scenario name is required")
	}
	if !scenario.Kind.Valid() {
		return fieldError("type", "unknown scenario type %q", scenario.Kind)
	}
	if scenario.Kind == domain.ScenarioDebtPayoff && scenario.Debt == "" {
		return fieldError("debt", "debt name is required for debt_payoff")
	}
	if scenario.Kind == domain.ScenarioMarketCrash && scenario.Value.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fieldError("value", "a crash cannot wipe out more than 100%% of assets")
	}
	return nil
}

func validateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fieldError(field, "must be between 0 and 1, got %s", rate)
	}
	return nil
}

func fieldError(field, format string, args ...any) error {
	return &domain.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	a := ip.assumptions
	income := decimal.NewFromInt(75000)
	socialSecurity := income.Mul(a.SocialSecurityRatio)

	return &domain.Configuration{
		Profile: domain.FinancialProfile{
			Name:              "Sample User",
			BirthDate:         time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
			RetirementAge:     a.RetirementAge,
			AnnualIncome:      income,
			IncomeGrowthRate:  a.IncomeGrowthRate,
			MonthlyExpenses:   decimal.NewFromInt(4500),
			ExpenseGrowthRate: a.ExpenseGrowthRate,
			CurrentSavings:    decimal.NewFromInt(25000),
			MonthlySavings:    decimal.NewFromInt(1200),
			InvestmentAccounts: map[string]decimal.Decimal{
				"401k": decimal.NewFromInt(45000),
				"IRA":  decimal.NewFromInt(15000),
			},
			RetirementAccounts: map[string]decimal.Decimal{
				"Roth IRA": decimal.NewFromInt(20000),
			},
			Debts: map[string]decimal.Decimal{
				"Mortgage": decimal.NewFromInt(180000),
				"Car Loan": decimal.NewFromInt(12000),
			},
		},
		Plan: domain.RetirementPlan{
			TargetRetirementAge:     a.RetirementAge,
			TargetAnnualIncome:      income.Mul(a.IncomeReplacementRatio),
			IncomeReplacementRatio:  a.IncomeReplacementRatio,
			InflationRate:           a.InflationRate,
			ReturnRate:              a.ReturnRate,
			WithdrawalRate:          a.WithdrawalRate,
			EstimatedSocialSecurity: &socialSecurity,
		},
		Portfolio: &domain.Portfolio{
			Name: "Brokerage",
			Investments: []domain.Investment{
				{Symbol: "VTI", Name: "Total Stock Market", AssetClass: domain.AssetClassStocks,
					Shares: decimal.NewFromInt(150), CurrentPrice: decimal.NewFromInt(200),
					ReturnRate: a.StockReturn, Volatility: decimal.NewFromFloat(0.18)},
				{Symbol: "BND", Name: "Total Bond Market", AssetClass: domain.AssetClassBonds,
					Shares: decimal.NewFromInt(200), CurrentPrice: decimal.NewFromInt(75),
					ReturnRate: a.BondReturn, Volatility: decimal.NewFromFloat(0.05)},
			},
		},
		Scenarios: []domain.ScenarioSpec{
			{Name: "Pay Off Car Loan", Kind: domain.ScenarioDebtPayoff, Debt: "Car Loan"},
			{Name: "Retire at 60", Kind: domain.ScenarioRetirementAge, Value: decimal.NewFromInt(60)},
			{Name: "Cut Expenses 10%", Kind: domain.ScenarioExpenseChange, Value: decimal.NewFromFloat(-0.10)},
		},
	}
}
