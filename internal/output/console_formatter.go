package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/firefly/retirement-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FIREFLY RETIREMENT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.Profile != nil {
		fmt.Fprintf(&buf, "%s, age %d, net worth %s\n", report.Profile.Name, report.Profile.Age(), FormatCurrency(report.Profile.NetWorth()))
	}
	if r := report.Readiness; r != nil {
		fmt.Fprintf(&buf, "Readiness=%s OnTrack=%t RequiredMonthly=%s\n",
			FormatPercentage(r.Score), r.OnTrack, FormatCurrency(r.RequiredMonthlySavings))
	}
	if p := report.Projection; p != nil {
		fmt.Fprintf(&buf, "AtRetirement=%s Required=%s Feasible=%t\n",
			FormatCurrency(p.FinalPortfolioValue), FormatCurrency(p.RequiredPortfolioValue), p.RetirementFeasible)
	}
	if f := report.FIRE; f != nil {
		fmt.Fprintf(&buf, "FIRE=%s Progress=%s YearsToFIRE=%s\n",
			FormatCurrency(f.FIRENumber), FormatPercentage(f.CurrentProgress), f.YearsToFIRE.StringFixed(1))
	}
	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintf(&buf, "MonteCarlo Success=%s P10=%s P50=%s P90=%s\n",
			FormatRate(mc.SuccessRate), FormatCurrency(mc.PercentileRanges.P10),
			FormatCurrency(mc.PercentileRanges.P50), FormatCurrency(mc.PercentileRanges.P90))
	}

	if len(report.Scenarios) > 0 {
		fmt.Fprintln(&buf)
		scenarios := append([]domain.ScenarioResult(nil), report.Scenarios...)
		sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
		for _, sc := range scenarios {
			fmt.Fprintf(&buf, "%s: Readiness=%s Monthly=%s Projected=%s YearsToFI=%d\n",
				sc.Name,
				FormatPercentage(sc.ReadinessScore),
				FormatCurrency(sc.RequiredMonthlySavings),
				FormatCurrency(sc.ProjectedValue),
				sc.YearsToFI,
			)
		}
		rec := AnalyzeScenarios(report)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ readiness %s)\n", rec.ScenarioName, FormatPercentage(rec.ReadinessChange))
	}
	return buf.Bytes(), nil
}
