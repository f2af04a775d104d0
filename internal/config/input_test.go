package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testConfig = `profile:
  name: "Test User"
  birth_date: 1980-03-01
  as_of: 2025-01-01
  annual_income: 90000
  monthly_expenses: 5000
  current_savings: 40000
  monthly_savings: 1500
  investment_accounts:
    401k: 60000
  debts:
    Car Loan: 8000
plan:
  target_retirement_age: 62
  target_annual_income: 70000
scenarios:
  - name: "Pay off car"
    type: debt_payoff
    debt: "Car Loan"
  - name: "Crash"
    type: market_crash
    value: -0.3
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTempFile(t, "config.yaml", testConfig))
	require.NoError(t, err)

	p := config.Profile
	assert.Equal(t, "Test User", p.Name)
	assert.Equal(t, 44, p.Age())
	assert.True(t, p.AnnualIncome.Equal(decimal.NewFromInt(90000)))
	assert.True(t, p.InvestmentAccounts["401k"].Equal(decimal.NewFromInt(60000)))
	assert.True(t, p.TotalDebts().Equal(decimal.NewFromInt(8000)))

	// Omitted values come from the assumptions.
	assert.True(t, p.IncomeGrowthRate.Equal(decimal.NewFromFloat(0.03)))
	assert.True(t, p.ExpenseGrowthRate.Equal(decimal.NewFromFloat(0.025)))
	assert.True(t, config.Plan.ReturnRate.Equal(decimal.NewFromFloat(0.07)))
	assert.True(t, config.Plan.WithdrawalRate.Equal(decimal.NewFromFloat(0.04)))
	assert.Nil(t, config.Plan.EstimatedSocialSecurity)
	assert.Equal(t, 62, p.RetirementAge, "profile retirement age follows the plan")

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, domain.ScenarioDebtPayoff, config.Scenarios[0].Kind)
	assert.True(t, config.Scenarios[1].Value.Equal(decimal.NewFromFloat(-0.3)))
}

func TestLoadFromBytes_ExplicitValuesWin(t *testing.T) {
	doc := strings.Replace(testConfig, "  target_annual_income: 70000\n", "  target_annual_income: 70000\n  investment_return_rate: 0.05\n  estimated_social_security: 20000\n", 1)

	config, err := NewInputParser().LoadFromBytes([]byte(doc))
	require.NoError(t, err)
	assert.True(t, config.Plan.ReturnRate.Equal(decimal.NewFromFloat(0.05)))
	require.NotNil(t, config.Plan.EstimatedSocialSecurity)
	assert.True(t, config.Plan.EstimatedSocialSecurity.Equal(decimal.NewFromInt(20000)))
}

func TestLoadFromBytes_RetirementAgeFallback(t *testing.T) {
	doc := strings.Replace(testConfig, "  target_retirement_age: 62\n", "", 1)
	config, err := NewInputParser().LoadFromBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 65, config.Plan.TargetRetirementAge)
	assert.Equal(t, 65, config.Profile.RetirementAge)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	bad := "profile:\n\tname: \"Tabbed\"\n\tannual_income: \"not-a-number\"\n"

	config, err := NewInputParser().LoadFromFile(writeTempFile(t, "bad.yaml", bad))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	doc := strings.Replace(testConfig, "monthly_expenses: 5000", "monthly_expenses: -5", 1)
	config, err := NewInputParser().LoadFromBytes([]byte(doc))
	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func validConfiguration() *domain.Configuration {
	ss := decimal.NewFromInt(15000)
	return &domain.Configuration{
		Profile: domain.FinancialProfile{
			Name:              "Valid",
			BirthDate:         time.Date(1980, 3, 1, 0, 0, 0, 0, time.UTC),
			AsOf:              time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			RetirementAge:     62,
			AnnualIncome:      decimal.NewFromInt(90000),
			IncomeGrowthRate:  decimal.NewFromFloat(0.03),
			MonthlyExpenses:   decimal.NewFromInt(5000),
			ExpenseGrowthRate: decimal.NewFromFloat(0.025),
			CurrentSavings:    decimal.NewFromInt(40000),
			MonthlySavings:    decimal.NewFromInt(1500),
			Debts:             map[string]decimal.Decimal{"Car Loan": decimal.NewFromInt(8000)},
		},
		Plan: domain.RetirementPlan{
			TargetRetirementAge:     62,
			TargetAnnualIncome:      decimal.NewFromInt(70000),
			IncomeReplacementRatio:  decimal.NewFromFloat(0.8),
			InflationRate:           decimal.NewFromFloat(0.025),
			ReturnRate:              decimal.NewFromFloat(0.07),
			WithdrawalRate:          decimal.NewFromFloat(0.04),
			EstimatedSocialSecurity: &ss,
		},
		Portfolio: &domain.Portfolio{
			Name: "Brokerage",
			Investments: []domain.Investment{
				{Symbol: "VTI", AssetClass: domain.AssetClassStocks, Shares: decimal.NewFromInt(10), CurrentPrice: decimal.NewFromInt(200)},
			},
		},
		Scenarios: []domain.ScenarioSpec{
			{Name: "Pay off car", Kind: domain.ScenarioDebtPayoff, Debt: "Car Loan"},
		},
	}
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(validConfiguration()))
}

func TestValidateConfiguration_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Configuration)
		field  string
	}{
		{"missing name", func(c *domain.Configuration) { c.Profile.Name = "" }, "name"},
		{"missing birth date", func(c *domain.Configuration) { c.Profile.BirthDate = time.Time{} }, "birth_date"},
		{"birth date in future", func(c *domain.Configuration) { c.Profile.BirthDate = c.Profile.AsOf.AddDate(1, 0, 0) }, "birth_date"},
		{"too young", func(c *domain.Configuration) { c.Profile.BirthDate = c.Profile.AsOf.AddDate(-10, 0, 0) }, "birth_date"},
		{"too old", func(c *domain.Configuration) { c.Profile.BirthDate = c.Profile.AsOf.AddDate(-130, 0, 0) }, "birth_date"},
		{"retirement age below range", func(c *domain.Configuration) { c.Profile.RetirementAge = 45 }, "retirement_age"},
		{"retirement age above range", func(c *domain.Configuration) { c.Plan.TargetRetirementAge = 85 }, "target_retirement_age"},
		{"retirement age before current age", func(c *domain.Configuration) {
			c.Profile.BirthDate = c.Profile.AsOf.AddDate(-70, 0, 0)
			c.Profile.RetirementAge = 75
			c.Plan.TargetRetirementAge = 65
		}, "target_retirement_age"},
		{"income over cap", func(c *domain.Configuration) { c.Profile.AnnualIncome = decimal.NewFromInt(20_000_000) }, "annual_income"},
		{"savings rate over cap", func(c *domain.Configuration) { c.Profile.MonthlySavings = decimal.NewFromInt(7000) }, "monthly_savings"},
		{"expense ratio over cap", func(c *domain.Configuration) { c.Profile.MonthlyExpenses = decimal.NewFromInt(16000) }, "monthly_expenses"},
		{"negative growth", func(c *domain.Configuration) { c.Profile.IncomeGrowthRate = decimal.NewFromFloat(-0.01) }, "income_growth_rate"},
		{"negative savings", func(c *domain.Configuration) { c.Profile.CurrentSavings = decimal.NewFromInt(-1) }, "current_savings"},
		{"inflation over one", func(c *domain.Configuration) { c.Plan.InflationRate = decimal.NewFromFloat(1.5) }, "inflation_rate"},
		{"zero withdrawal rate", func(c *domain.Configuration) { c.Plan.WithdrawalRate = decimal.Zero }, "withdrawal_rate"},
		{"unknown asset class", func(c *domain.Configuration) { c.Portfolio.Investments[0].AssetClass = "tulips" }, "asset_class"},
		{"duplicate investment", func(c *domain.Configuration) {
			c.Portfolio.Investments = append(c.Portfolio.Investments, c.Portfolio.Investments[0])
		}, "investments"},
		{"unnamed scenario", func(c *domain.Configuration) { c.Scenarios[0].Name = "" }, "name"},
		{"unknown scenario type", func(c *domain.Configuration) { c.Scenarios[0].Kind = "lottery" }, "type"},
		{"debt payoff without debt", func(c *domain.Configuration) { c.Scenarios[0].Debt = "" }, "debt"},
		{"total crash", func(c *domain.Configuration) {
			c.Scenarios[0] = domain.ScenarioSpec{Name: "Wipeout", Kind: domain.ScenarioMarketCrash, Value: decimal.NewFromInt(-1)}
		}, "value"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfiguration()
			tt.mutate(config)

			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateConfiguration_CustomLimits(t *testing.T) {
	a := domain.DefaultAssumptions()
	a.MinRetirementAge = 40
	parser := NewInputParserWithAssumptions(a)

	config := validConfiguration()
	config.Profile.RetirementAge = 45
	config.Plan.TargetRetirementAge = 45
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	assert.Equal(t, "Sample User", config.Profile.Name)
	assert.True(t, config.Profile.TotalAssets().Equal(decimal.NewFromInt(105000)))
	assert.True(t, config.Profile.TotalDebts().Equal(decimal.NewFromInt(192000)))
	assert.True(t, config.Plan.TargetAnnualIncome.Equal(decimal.NewFromInt(60000)))
	require.NotNil(t, config.Plan.EstimatedSocialSecurity)
	assert.True(t, config.Plan.EstimatedSocialSecurity.Equal(decimal.NewFromInt(18750)))
	assert.True(t, config.Portfolio.TotalValue().Equal(decimal.NewFromInt(45000)))
	assert.Len(t, config.Scenarios, 3)
}

func TestCreateExampleConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	loaded, err := parser.LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, example.Profile.Name, loaded.Profile.Name)
	assert.True(t, loaded.Profile.BirthDate.Equal(example.Profile.BirthDate))
	assert.True(t, loaded.Profile.MonthlySavings.Equal(example.Profile.MonthlySavings))
	assert.True(t, loaded.Profile.Debts["Car Loan"].Equal(decimal.NewFromInt(12000)))
	assert.True(t, loaded.Plan.EstimatedSocialSecurity.Equal(*example.Plan.EstimatedSocialSecurity))
	assert.Len(t, loaded.Portfolio.Investments, 2)
	require.Len(t, loaded.Scenarios, len(example.Scenarios))
	for i, want := range example.Scenarios {
		got := loaded.Scenarios[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Debt, got.Debt)
		assert.True(t, want.Value.Equal(got.Value), "scenario %d value %s", i, got.Value)
	}
}
