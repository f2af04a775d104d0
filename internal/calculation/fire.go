package calculation

import (
	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FIREMetrics derives the financial independence targets from the profile's
// annual expenses and measures progress toward the standard target.
func (ce *CalculationEngine) FIREMetrics(profile domain.FinancialProfile, plan domain.RetirementPlan) domain.FIREMetrics {
	a := ce.Assumptions
	expenses := profile.AnnualExpenses()
	assets := profile.TotalAssets()
	rate := plan.ReturnRate.InexactFloat64()

	fire := expenses.Mul(a.FIREMultiplier)
	m := domain.FIREMetrics{
		AnnualExpenses:    expenses,
		CurrentAssets:     assets,
		FIRENumber:        fire,
		LeanFIRENumber:    expenses.Mul(a.LeanFIRERatio).Mul(a.FIREMultiplier),
		FatFIRENumber:     expenses.Mul(a.FatFIRERatio).Mul(a.FIREMultiplier),
		BaristaFIRENumber: expenses.Mul(a.BaristaFIRERatio).Mul(a.FIREMultiplier),
	}

	// Coast: the sum that compounds untouched to the FIRE number by retirement.
	years := plan.YearsToRetirement(profile)
	if years < 0 {
		years = 0
	}
	m.CoastFIRENumber = fire.Div(decimal.NewFromFloat(finmath.GrowthFactor(rate, years)))

	if fire.IsPositive() {
		m.CurrentProgress = assets.Div(fire).Mul(hundred)
	}

	shortfall := fire.Sub(assets)
	months := finmath.PeriodsToTarget(shortfall.InexactFloat64(), profile.MonthlySavings.InexactFloat64(), rate/12)
	m.YearsToFIRE = decimal.NewFromFloat(months / 12)
	return m
}
