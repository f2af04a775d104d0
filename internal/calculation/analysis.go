package calculation

import (
	"fmt"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareScenarios picks the best and worst results by readiness score and
// by required monthly savings. Ties keep the earliest result. An empty input
// yields an empty comparison.
func CompareScenarios(results []domain.ScenarioResult) domain.ScenarioComparison {
	if len(results) == 0 {
		return domain.ScenarioComparison{}
	}

	c := domain.ScenarioComparison{
		Count:                  len(results),
		BestScenario:           results[0],
		WorstScenario:          results[0],
		LowestSavingsRequired:  results[0],
		HighestSavingsRequired: results[0],
	}
	for _, r := range results[1:] {
		if r.ReadinessScore.GreaterThan(c.BestScenario.ReadinessScore) {
			c.BestScenario = r
		}
		if r.ReadinessScore.LessThan(c.WorstScenario.ReadinessScore) {
			c.WorstScenario = r
		}
		if r.RequiredMonthlySavings.LessThan(c.LowestSavingsRequired.RequiredMonthlySavings) {
			c.LowestSavingsRequired = r
		}
		if r.RequiredMonthlySavings.GreaterThan(c.HighestSavingsRequired.RequiredMonthlySavings) {
			c.HighestSavingsRequired = r
		}
	}
	c.ScoreRange = c.BestScenario.ReadinessScore.Sub(c.WorstScenario.ReadinessScore)
	return c
}

// generateRecommendations turns readiness and simulation figures into advice lines
func (ce *CalculationEngine) generateRecommendations(readiness, requiredMonthly decimal.Decimal, profile domain.FinancialProfile, mc *domain.MonteCarloResults) []string {
	var recs []string
	switch {
	case readiness.GreaterThanOrEqual(decimal.NewFromInt(90)):
		recs = append(recs, "Excellent! You're well on track for retirement.")
	case readiness.GreaterThanOrEqual(decimal.NewFromInt(70)):
		recs = append(recs, "Good progress! Minor adjustments may help optimize your plan.")
	case readiness.GreaterThanOrEqual(decimal.NewFromInt(50)):
		recs = append(recs, "On track but room for improvement. Consider increasing savings.")
	default:
		recs = append(recs, "Significant changes needed to meet retirement goals.")
	}

	if gap := requiredMonthly.Sub(profile.MonthlySavings); gap.IsPositive() {
		recs = append(recs, fmt.Sprintf("Increase monthly savings by %s to close the gap.", gap.StringFixed(2)))
	}
	if mc != nil && !ce.MeetsSuccessThreshold(mc) {
		recs = append(recs, fmt.Sprintf("Monte Carlo success rate %s%% is below the %s%% target.",
			mc.SuccessRate.Mul(hundred).StringFixed(1), ce.Assumptions.MonteCarloSuccessThreshold.Mul(hundred).StringFixed(0)))
	}
	if profile.TotalDebts().GreaterThan(profile.TotalAssets()) {
		recs = append(recs, "Debts exceed assets. Consider a debt payoff scenario.")
	}
	return recs
}
