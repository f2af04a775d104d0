package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(t *testing.T) RetirementPlan {
	t.Helper()
	ss := d("18750")
	p, err := NewRetirementPlan(RetirementPlan{
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

func TestNewRetirementPlan_Validation(t *testing.T) {
	base := samplePlan(t)

	zero := base
	zero.WithdrawalRate = decimal.Zero
	_, err := NewRetirementPlan(zero)
	assert.ErrorIs(t, err, ErrValidation)

	negSS := base
	v := d("-1")
	negSS.EstimatedSocialSecurity = &v
	_, err = NewRetirementPlan(negSS)
	assert.ErrorIs(t, err, ErrValidation)

	noAge := base
	noAge.TargetRetirementAge = 0
	_, err = NewRetirementPlan(noAge)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRetirementPlan_RequiredPortfolioValue(t *testing.T) {
	profile := sampleProfile(t)
	plan := samplePlan(t)

	assert.True(t, plan.RequiredPortfolioValue(profile).Equal(d("1031250")))

	// Replacement ratio fallback without social security.
	plan.TargetAnnualIncome = decimal.Zero
	plan.EstimatedSocialSecurity = nil
	assert.True(t, plan.TargetIncome(profile).Equal(d("60000")))
	assert.True(t, plan.RequiredPortfolioValue(profile).Equal(d("1500000")))
}

func TestRetirementPlan_RequiredPortfolioIsMonotonic(t *testing.T) {
	profile := sampleProfile(t)
	plan := samplePlan(t)
	base := plan.RequiredPortfolioValue(profile)

	higherTarget := plan
	higherTarget.TargetAnnualIncome = d("70000")
	assert.True(t, higherTarget.RequiredPortfolioValue(profile).GreaterThan(base))

	lowerRate := plan
	lowerRate.WithdrawalRate = d("0.035")
	assert.True(t, lowerRate.RequiredPortfolioValue(profile).GreaterThan(base))

	lessSS := plan
	ss := d("10000")
	lessSS.EstimatedSocialSecurity = &ss
	assert.True(t, lessSS.RequiredPortfolioValue(profile).GreaterThan(base))

	noSS := plan
	noSS.EstimatedSocialSecurity = nil
	assert.True(t, noSS.RequiredPortfolioValue(profile).GreaterThan(lessSS.RequiredPortfolioValue(profile)))
}

func TestRetirementPlan_RequiredMonthlySavings(t *testing.T) {
	profile := sampleProfile(t)
	plan := samplePlan(t)
	plan.TargetAnnualIncome = d("150000")

	years := 26
	futureAssets := 105000 * math.Pow(1.07, float64(years))
	gap := (150000-18750)/0.04 - futureAssets
	r := 0.07 / 12
	want := gap / ((math.Pow(1+r, float64(years*12)) - 1) / r)

	got := plan.RequiredMonthlySavings(profile)
	assert.InDelta(t, want, got.InexactFloat64(), 0.01)
	assert.False(t, plan.IsOnTrack(profile))

	// The sample profile already outgrows the default target.
	assert.True(t, samplePlan(t).RequiredMonthlySavings(profile).IsZero())
	assert.True(t, samplePlan(t).IsOnTrack(profile))
}

func TestRetirementPlan_RequiredMonthlySavingsZeroReturn(t *testing.T) {
	profile := sampleProfile(t)
	plan := samplePlan(t)
	plan.ReturnRate = decimal.Zero

	gap := d("1031250").Sub(d("105000"))
	want := gap.Div(decimal.NewFromInt(26 * 12))
	assert.True(t, plan.RequiredMonthlySavings(profile).Equal(want))
}

func TestRetirementPlan_ReadinessScoreIsClamped(t *testing.T) {
	profile := sampleProfile(t)

	tests := []struct {
		name   string
		mutate func(*RetirementPlan)
	}{
		{"default", func(*RetirementPlan) {}},
		{"huge target", func(p *RetirementPlan) { p.TargetAnnualIncome = d("5000000") }},
		{"already retired", func(p *RetirementPlan) { p.TargetRetirementAge = 30 }},
		{"retiring today", func(p *RetirementPlan) { p.TargetRetirementAge = 39 }},
		{"social security covers everything", func(p *RetirementPlan) {
			ss := d("100000")
			p.EstimatedSocialSecurity = &ss
		}},
		{"zero return", func(p *RetirementPlan) { p.ReturnRate = decimal.Zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := samplePlan(t)
			tt.mutate(&plan)
			score := plan.ReadinessScore(profile)
			assert.True(t, score.GreaterThanOrEqual(decimal.Zero), "score %s", score)
			assert.True(t, score.LessThanOrEqual(d("100")), "score %s", score)
		})
	}
}

func TestRetirementPlan_ReadinessAlreadyRetiredUsesCurrentAssets(t *testing.T) {
	profile := sampleProfile(t)
	plan := samplePlan(t)
	plan.TargetRetirementAge = 30

	want := d("105000").Div(d("1031250")).Mul(d("100"))
	assert.True(t, plan.ReadinessScore(profile).Equal(want))
	assert.True(t, plan.RequiredMonthlySavings(profile).IsZero())
}

func TestRetirementPlan_Builders(t *testing.T) {
	plan := samplePlan(t)

	earlier, err := plan.WithTargetRetirementAge(60)
	require.NoError(t, err)
	assert.Equal(t, 60, earlier.TargetRetirementAge)
	assert.Equal(t, 65, plan.TargetRetirementAge)

	conservative, err := plan.WithReturnRate(d("0.05"))
	require.NoError(t, err)
	assert.True(t, conservative.ReturnRate.Equal(d("0.05")))
	assert.True(t, plan.ReturnRate.Equal(d("0.07")))

	_, err = plan.WithTargetRetirementAge(0)
	assert.ErrorIs(t, err, ErrValidation)
}
