package calculation

import (
	"testing"
	"time"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// birthForAge returns a birth date that makes someone exactly age on asOf.
func birthForAge(age int) time.Time {
	return asOf.AddDate(-age, 0, 0)
}

func sampleProfile(t *testing.T) domain.FinancialProfile {
	t.Helper()
	p, err := domain.NewFinancialProfile(domain.FinancialProfile{
		Name:               "Sample User",
		BirthDate:          time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		AsOf:               asOf,
		RetirementAge:      65,
		AnnualIncome:       d("75000"),
		IncomeGrowthRate:   d("0.03"),
		MonthlyExpenses:    d("4500"),
		ExpenseGrowthRate:  d("0.025"),
		CurrentSavings:     d("25000"),
		MonthlySavings:     d("1200"),
		InvestmentAccounts: map[string]decimal.Decimal{"401k": d("45000"), "IRA": d("15000")},
		RetirementAccounts: map[string]decimal.Decimal{"Roth IRA": d("20000")},
		Debts:              map[string]decimal.Decimal{"Mortgage": d("180000"), "Car Loan": d("12000")},
	})
	require.NoError(t, err)
	return p
}

func samplePlan(t *testing.T) domain.RetirementPlan {
	t.Helper()
	ss := d("18750")
	p, err := domain.NewRetirementPlan(domain.RetirementPlan{
		TargetRetirementAge:     65,
		TargetAnnualIncome:      d("60000"),
		IncomeReplacementRatio:  d("0.8"),
		InflationRate:           d("0.025"),
		ReturnRate:              d("0.07"),
		WithdrawalRate:          d("0.04"),
		EstimatedSocialSecurity: &ss,
	})
	require.NoError(t, err)
	return p
}

// smallProfile is 63 with round numbers so projections can be checked by hand.
func smallProfile(t *testing.T) domain.FinancialProfile {
	t.Helper()
	p, err := domain.NewFinancialProfile(domain.FinancialProfile{
		Name:              "Hand Check",
		BirthDate:         birthForAge(63),
		AsOf:              asOf,
		RetirementAge:     65,
		AnnualIncome:      d("50000"),
		IncomeGrowthRate:  d("0.10"),
		MonthlyExpenses:   d("1000"),
		ExpenseGrowthRate: d("0.05"),
		CurrentSavings:    d("1000"),
		MonthlySavings:    d("100"),
		Debts:             map[string]decimal.Decimal{"Loan": d("500")},
	})
	require.NoError(t, err)
	return p
}

func smallPlan(t *testing.T) domain.RetirementPlan {
	t.Helper()
	ss := d("10000")
	p, err := domain.NewRetirementPlan(domain.RetirementPlan{
		TargetRetirementAge:     65,
		TargetAnnualIncome:      d("20000"),
		InflationRate:           decimal.Zero,
		ReturnRate:              d("0.10"),
		WithdrawalRate:          d("0.04"),
		EstimatedSocialSecurity: &ss,
	})
	require.NoError(t, err)
	return p
}
