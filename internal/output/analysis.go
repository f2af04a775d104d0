package output

import (
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName         string
	ReadinessScore       decimal.Decimal
	ReadinessChange      decimal.Decimal
	MonthlySavingsChange decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest readiness score, breaking
// ties on the lower required monthly savings, and measures it against the
// report's baseline readiness when there is one.
func AnalyzeScenarios(report *Report) Recommendation {
	if len(report.Scenarios) == 0 {
		return Recommendation{}
	}
	best := report.Scenarios[0]
	for _, sc := range report.Scenarios[1:] {
		switch {
		case sc.ReadinessScore.GreaterThan(best.ReadinessScore):
			best = sc
		case sc.ReadinessScore.Equal(best.ReadinessScore) &&
			sc.RequiredMonthlySavings.LessThan(best.RequiredMonthlySavings):
			best = sc
		}
	}

	rec := Recommendation{ScenarioName: best.Name, ReadinessScore: best.ReadinessScore}
	if report.Readiness != nil {
		rec.ReadinessChange = best.ReadinessScore.Sub(report.Readiness.Score)
		rec.MonthlySavingsChange = best.RequiredMonthlySavings.Sub(report.Readiness.RequiredMonthlySavings)
	}
	return rec
}
