package calculation

import (
	"bytes"
	"testing"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectToRetirement_HandComputedRows(t *testing.T) {
	engine := NewCalculationEngine()
	proj := engine.ProjectToRetirement(smallProfile(t), smallPlan(t))

	require.Len(t, proj.YearlyProjections, 3)

	expected := []struct {
		year, age                                 int
		portfolio, contribution, ret, expenses, nw string
	}{
		{2025, 63, "2300", "1200", "100", "12000", "1800"},
		{2026, 64, "3730", "1320", "230", "12600", "3230"},
		{2027, 65, "5423", "1452", "373", "13230", "4923"},
	}
	for i, want := range expected {
		row := proj.YearlyProjections[i]
		assert.Equal(t, want.year, row.Year, "row %d year", i)
		assert.Equal(t, want.age, row.Age, "row %d age", i)
		assert.True(t, row.PortfolioValue.Equal(d(want.portfolio)), "row %d portfolio %s", i, row.PortfolioValue)
		assert.True(t, row.Contribution.Equal(d(want.contribution)), "row %d contribution %s", i, row.Contribution)
		assert.True(t, row.InvestmentReturn.Equal(d(want.ret)), "row %d return %s", i, row.InvestmentReturn)
		assert.True(t, row.Expenses.Equal(d(want.expenses)), "row %d expenses %s", i, row.Expenses)
		assert.True(t, row.NetWorth.Equal(d(want.nw)), "row %d net worth %s", i, row.NetWorth)
	}

	assert.True(t, proj.TotalContributions.Equal(d("3972")), "contributions %s", proj.TotalContributions)
	assert.True(t, proj.TotalReturns.Equal(d("703")), "returns %s", proj.TotalReturns)
	assert.True(t, proj.FinalPortfolioValue.Equal(d("5423")))
	assert.True(t, proj.RequiredPortfolioValue.Equal(d("250000")))
	assert.False(t, proj.RetirementFeasible)
	// 5423 / (13230 - 10000)
	assert.Equal(t, 1, proj.YearsOfRetirementFunded)
}

func TestProjectToRetirement_SampleProfile(t *testing.T) {
	engine := NewCalculationEngine()
	profile := sampleProfile(t)
	proj := engine.ProjectToRetirement(profile, samplePlan(t))

	rows := proj.YearlyProjections
	require.Len(t, rows, 65-39+1)
	assert.Equal(t, 2025, rows[0].Year)
	assert.Equal(t, 39, rows[0].Age)
	assert.Equal(t, 65, rows[len(rows)-1].Age)
	for i := 1; i < len(rows); i++ {
		assert.Equal(t, rows[i-1].Year+1, rows[i].Year)
		assert.True(t, rows[i].PortfolioValue.GreaterThan(rows[i-1].PortfolioValue))
		assert.True(t, rows[i].NetWorth.Equal(rows[i].PortfolioValue.Sub(profile.TotalDebts())))
	}
	assert.True(t, proj.RetirementFeasible)
	assert.True(t, proj.FinalPortfolioValue.Equal(rows[len(rows)-1].PortfolioValue))
}

func TestProjectToRetirement_AlreadyRetiredEmitsOneRow(t *testing.T) {
	engine := NewCalculationEngine()
	profile := sampleProfile(t)

	for _, target := range []int{39, 30} {
		plan, err := samplePlan(t).WithTargetRetirementAge(target)
		require.NoError(t, err)

		proj := engine.ProjectToRetirement(profile, plan)
		require.Len(t, proj.YearlyProjections, 1, "target %d", target)
		row := proj.YearlyProjections[0]
		assert.Equal(t, 39, row.Age)
		assert.True(t, row.Contribution.Equal(profile.AnnualSavings()))
	}
}

func TestProjectToRetirement_StartYearOption(t *testing.T) {
	engine := NewCalculationEngine()
	proj := engine.ProjectToRetirementWithOptions(smallProfile(t), smallPlan(t), ProjectionOptions{StartYear: 2024})
	assert.Equal(t, 2024, proj.YearlyProjections[0].Year)
	assert.Equal(t, 2026, proj.YearlyProjections[2].Year)
}

func TestProjectToRetirement_NoSocialSecurityFundedYears(t *testing.T) {
	engine := NewCalculationEngine()
	plan := smallPlan(t)
	plan.EstimatedSocialSecurity = nil

	proj := engine.ProjectToRetirement(smallProfile(t), plan)
	// 5423 / 13230 truncates to zero.
	assert.Equal(t, 0, proj.YearsOfRetirementFunded)

	covered := smallPlan(t)
	ss := d("50000")
	covered.EstimatedSocialSecurity = &ss
	var logs bytes.Buffer
	engine.SetLogger(NewStdLogger(&logs, false))
	assert.Equal(t, 0, engine.ProjectToRetirement(smallProfile(t), covered).YearsOfRetirementFunded)
	assert.Contains(t, logs.String(), "[WARN] social security covers expenses for Hand Check")
}

func TestProjectWithdrawal_DepletesEarly(t *testing.T) {
	engine := NewCalculationEngine()
	plan := smallPlan(t)
	plan.ReturnRate = decimal.Zero
	plan.EstimatedSocialSecurity = nil

	w := engine.ProjectWithdrawal(smallProfile(t), plan, domain.RetirementProjection{FinalPortfolioValue: d("30000")}, ProjectionOptions{})

	require.Len(t, w.YearlyProjections, 3)
	assert.Less(t, len(w.YearlyProjections), w.RequestedYears)
	assert.Equal(t, 30, w.RequestedYears)
	assert.True(t, w.Depleted)
	assert.Equal(t, 67, w.DepletionAge)
	assert.Equal(t, 2, w.YearsFunded())

	want := []string{"18000", "6000", "0"}
	for i, row := range w.YearlyProjections {
		assert.Equal(t, 65+i, row.Age)
		assert.Equal(t, 2027+i, row.Year)
		assert.True(t, row.PortfolioValue.Equal(d(want[i])), "row %d portfolio %s", i, row.PortfolioValue)
		assert.True(t, row.NetWorth.Equal(row.PortfolioValue))
		assert.True(t, row.Contribution.Equal(d("-12000")))
		assert.True(t, row.Expenses.Equal(d("12000")))
	}
}

func TestProjectWithdrawal_InflatesNeedAndOffset(t *testing.T) {
	engine := NewCalculationEngine()
	plan := smallPlan(t)
	plan.InflationRate = d("0.10")
	plan.ReturnRate = decimal.Zero

	w := engine.ProjectWithdrawal(smallProfile(t), plan, domain.RetirementProjection{FinalPortfolioValue: d("1000000")}, ProjectionOptions{WithdrawalYears: 5})

	// (12000 - 10000) * 1.1^2 before the first withdrawal.
	assert.InDelta(t, 2420, w.InitialNeed.InexactFloat64(), 1e-6)
	require.Len(t, w.YearlyProjections, 5)
	assert.False(t, w.Depleted)
	assert.Equal(t, 5, w.YearsFunded())

	first := w.YearlyProjections[0]
	assert.InDelta(t, 1000000-2420, first.PortfolioValue.InexactFloat64(), 1e-6)
	// The reported need is already inflated for the following year.
	assert.InDelta(t, -2662, first.Contribution.InexactFloat64(), 1e-6)
	assert.InDelta(t, 2662+10000, first.Expenses.InexactFloat64(), 1e-6)
}

func TestProjectWithdrawal_FromAccumulation(t *testing.T) {
	engine := NewCalculationEngine()
	profile := sampleProfile(t)
	plan := samplePlan(t)

	acc := engine.ProjectToRetirement(profile, plan)
	w := engine.ProjectWithdrawal(profile, plan, acc, ProjectionOptions{})

	assert.True(t, w.StartingPortfolio.Equal(acc.FinalPortfolioValue))
	assert.NotEmpty(t, w.YearlyProjections)
	assert.LessOrEqual(t, len(w.YearlyProjections), 30)
	for _, row := range w.YearlyProjections {
		assert.False(t, row.PortfolioValue.IsNegative())
	}
}
