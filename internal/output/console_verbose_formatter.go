package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	rule := strings.Repeat("=", 81)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "FIREFLY RETIREMENT PROJECTION REPORT")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Profile != nil {
		writeProfile(&buf, report.Profile, report.Plan)
	}
	if report.Portfolio != nil {
		writePortfolio(&buf, report.Portfolio)
	}
	if r := report.Readiness; r != nil {
		fmt.Fprintln(&buf, "RETIREMENT READINESS")
		fmt.Fprintln(&buf, "====================")
		fmt.Fprintf(&buf, "  Readiness Score:          %s\n", FormatPercentage(r.Score))
		fmt.Fprintf(&buf, "  Required Monthly Savings: %s\n", FormatCurrency(r.RequiredMonthlySavings))
		fmt.Fprintf(&buf, "  On Track:                 %t\n", r.OnTrack)
		fmt.Fprintln(&buf)
	}
	if p := report.Projection; p != nil {
		fmt.Fprintln(&buf, "ACCUMULATION PHASE")
		fmt.Fprintln(&buf, "==================")
		writeYearTable(&buf, p.YearlyProjections)
		fmt.Fprintf(&buf, "  Final Portfolio:          %s\n", FormatCurrency(p.FinalPortfolioValue))
		fmt.Fprintf(&buf, "  Required Portfolio:       %s\n", FormatCurrency(p.RequiredPortfolioValue))
		fmt.Fprintf(&buf, "  Total Contributions:      %s\n", FormatCurrency(p.TotalContributions))
		fmt.Fprintf(&buf, "  Total Returns:            %s\n", FormatCurrency(p.TotalReturns))
		fmt.Fprintf(&buf, "  Retirement Feasible:      %t\n", p.RetirementFeasible)
		fmt.Fprintf(&buf, "  Years Funded:             %d\n", p.YearsOfRetirementFunded)
		fmt.Fprintln(&buf)
	}
	if w := report.Withdrawal; w != nil {
		fmt.Fprintln(&buf, "WITHDRAWAL PHASE")
		fmt.Fprintln(&buf, "================")
		writeYearTable(&buf, w.YearlyProjections)
		fmt.Fprintf(&buf, "  Initial Annual Need:      %s\n", FormatCurrency(w.InitialNeed))
		if w.Depleted {
			fmt.Fprintf(&buf, "  Portfolio depleted at age %d after %d of %d years\n", w.DepletionAge, w.YearsFunded(), w.RequestedYears)
		} else {
			fmt.Fprintf(&buf, "  Portfolio lasts the full %d years\n", w.RequestedYears)
		}
		fmt.Fprintln(&buf)
	}
	if f := report.FIRE; f != nil {
		writeFIRE(&buf, f)
	}
	if mc := report.MonteCarlo; mc != nil {
		writeMonteCarlo(&buf, mc)
	}
	if len(report.Scenarios) > 0 {
		writeScenarioComparison(&buf, report)
	}
	if s := report.Sweep; s != nil {
		fmt.Fprintf(&buf, "SENSITIVITY: %s\n", strings.ToUpper(string(s.Parameter)))
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		fmt.Fprintf(&buf, "%-12s %12s %16s %16s\n", "VALUE", "READINESS", "MONTHLY NEEDED", "PROJECTED")
		for i, r := range s.Results {
			fmt.Fprintf(&buf, "%-12s %12s %16s %16s\n", s.Values[i].String(), FormatPercentage(r.ReadinessScore),
				FormatCurrency(r.RequiredMonthlySavings), FormatCurrency(r.ProjectedValue))
		}
		fmt.Fprintf(&buf, "Readiness range: %s\n\n", FormatPercentage(s.Comparison.ScoreRange))
	}

	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" || len(report.Recommendations) > 0 {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		if rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
			fmt.Fprintf(&buf, "Readiness Change: %s\n", signed(rec.ReadinessChange, FormatPercentage))
			fmt.Fprintf(&buf, "Monthly Savings Change: %s\n", signed(rec.MonthlySavingsChange, FormatCurrency))
		}
		for _, r := range report.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", r)
		}
	}

	return buf.Bytes(), nil
}

func writeProfile(buf *bytes.Buffer, p *domain.FinancialProfile, plan *domain.RetirementPlan) {
	fmt.Fprintln(buf, "FINANCIAL PROFILE")
	fmt.Fprintln(buf, "=================")
	fmt.Fprintf(buf, "  Name:                     %s\n", p.Name)
	fmt.Fprintf(buf, "  Age:                      %d\n", p.Age())
	if plan != nil {
		fmt.Fprintf(buf, "  Target Retirement:        age %d (%s)\n", plan.TargetRetirementAge,
			dateutil.DateForAge(p.BirthDate, plan.TargetRetirementAge).Format("Jan 2006"))
	}
	fmt.Fprintf(buf, "  Annual Income:            %s\n", FormatCurrency(p.AnnualIncome))
	fmt.Fprintf(buf, "  Annual Expenses:          %s\n", FormatCurrency(p.AnnualExpenses()))
	fmt.Fprintf(buf, "  Savings Rate:             %s\n", FormatRate(p.SavingsRate()))
	fmt.Fprintf(buf, "  Total Assets:             %s\n", FormatCurrency(p.TotalAssets()))
	fmt.Fprintf(buf, "  Total Debts:              %s\n", FormatCurrency(p.TotalDebts()))
	fmt.Fprintf(buf, "  Net Worth:                %s\n", FormatCurrency(p.NetWorth()))
	fmt.Fprintln(buf)
}

func writePortfolio(buf *bytes.Buffer, p *domain.Portfolio) {
	fmt.Fprintf(buf, "PORTFOLIO: %s\n", p.Name)
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	allocation := p.AssetAllocation()
	classes := make([]string, 0, len(allocation))
	for class := range allocation {
		classes = append(classes, string(class))
	}
	sort.Strings(classes)
	for _, class := range classes {
		fmt.Fprintf(buf, "  %-24s %s\n", class, FormatRate(allocation[domain.AssetClass(class)]))
	}
	fmt.Fprintf(buf, "  %-24s %s\n", "Total value", FormatCurrency(p.TotalValue()))
	fmt.Fprintf(buf, "  %-24s %s\n", "Expected return", FormatRate(p.WeightedReturnRate()))
	fmt.Fprintf(buf, "  %-24s %s\n", "Volatility", FormatRate(p.WeightedVolatility()))
	fmt.Fprintln(buf)
}

func writeYearTable(buf *bytes.Buffer, rows []domain.YearlyProjection) {
	fmt.Fprintf(buf, "%-6s %4s %16s %14s %14s %14s %16s\n", "YEAR", "AGE", "PORTFOLIO", "CONTRIBUTION", "RETURN", "EXPENSES", "NET WORTH")
	fmt.Fprintln(buf, strings.Repeat("-", 90))
	for _, r := range rows {
		fmt.Fprintf(buf, "%-6d %4d %16s %14s %14s %14s %16s\n", r.Year, r.Age,
			FormatCurrency(r.PortfolioValue), FormatCurrency(r.Contribution), FormatCurrency(r.InvestmentReturn),
			FormatCurrency(r.Expenses), FormatCurrency(r.NetWorth))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 90))
}

func writeFIRE(buf *bytes.Buffer, f *domain.FIREMetrics) {
	fmt.Fprintln(buf, "FINANCIAL INDEPENDENCE")
	fmt.Fprintln(buf, "======================")
	fmt.Fprintf(buf, "  FIRE Number:              %s\n", FormatCurrency(f.FIRENumber))
	fmt.Fprintf(buf, "  Lean FIRE:                %s\n", FormatCurrency(f.LeanFIRENumber))
	fmt.Fprintf(buf, "  Fat FIRE:                 %s\n", FormatCurrency(f.FatFIRENumber))
	fmt.Fprintf(buf, "  Barista FIRE:             %s\n", FormatCurrency(f.BaristaFIRENumber))
	fmt.Fprintf(buf, "  Coast FIRE:               %s\n", FormatCurrency(f.CoastFIRENumber))
	fmt.Fprintf(buf, "  Progress:                 %s\n", FormatPercentage(f.CurrentProgress))
	fmt.Fprintf(buf, "  Years to FIRE:            %s\n", f.YearsToFIRE.StringFixed(1))
	fmt.Fprintln(buf)
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResults) {
	fmt.Fprintln(buf, "MONTE CARLO SIMULATION")
	fmt.Fprintln(buf, "======================")
	fmt.Fprintf(buf, "  Simulations:              %d (seed %d)\n", mc.NumSimulations, mc.Seed)
	fmt.Fprintf(buf, "  Success Rate:             %s\n", FormatRate(mc.SuccessRate))
	fmt.Fprintf(buf, "  Target Portfolio:         %s\n", FormatCurrency(mc.RequiredPortfolioValue))
	pr := mc.PercentileRanges
	for _, p := range []struct {
		label string
		value decimal.Decimal
	}{{"10th", pr.P10}, {"25th", pr.P25}, {"50th", pr.P50}, {"75th", pr.P75}, {"90th", pr.P90}} {
		fmt.Fprintf(buf, "  %-4s Percentile:          %s\n", p.label, FormatCurrency(p.value))
	}
	if mc.FullHorizon {
		fmt.Fprintf(buf, "  Survival Rate:            %s\n", FormatRate(mc.SurvivalRate))
		fmt.Fprintf(buf, "  Median Years Funded:      %d\n", mc.MedianYearsFunded)
	}
	fmt.Fprintln(buf)
}

// writeScenarioComparison lines each scenario up against the baseline readiness.
func writeScenarioComparison(buf *bytes.Buffer, report *Report) {
	fmt.Fprintln(buf, strings.Repeat("=", 81))
	fmt.Fprintln(buf, "SCENARIO ANALYSIS")
	fmt.Fprintln(buf, strings.Repeat("=", 81))
	for i, sc := range report.Scenarios {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)
		fmt.Fprintf(buf, "\n%s\n", title)
		fmt.Fprintln(buf, strings.Repeat("-", len(title)))
		if len(sc.Changes) > 0 {
			fmt.Fprintf(buf, "Changes: %s\n", formatChanges(sc.Changes))
		}
		if r := report.Readiness; r != nil {
			fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", "METRIC", "BASELINE", "SCENARIO", "DIFFERENCE")
			pctLine(buf, "Readiness Score", r.Score, sc.ReadinessScore)
			cmpLine(buf, "Required Monthly Savings", r.RequiredMonthlySavings, sc.RequiredMonthlySavings)
			if report.Projection != nil {
				fmt.Fprintf(buf, "%-35s %15s %15s\n", "Projected Value", "", FormatCurrency(sc.ProjectedValue))
			}
		} else {
			fmt.Fprintf(buf, "  Readiness:    %s\n", FormatPercentage(sc.ReadinessScore))
			fmt.Fprintf(buf, "  Monthly:      %s\n", FormatCurrency(sc.RequiredMonthlySavings))
			fmt.Fprintf(buf, "  Projected:    %s\n", FormatCurrency(sc.ProjectedValue))
		}
		fmt.Fprintf(buf, "  Years to FI:  %d\n", sc.YearsToFI)
	}
	fmt.Fprintln(buf)
	if c := report.Comparison; c != nil && !c.IsEmpty() {
		fmt.Fprintf(buf, "Highest readiness: %s (%s)\n", c.BestScenario.Name, FormatPercentage(c.BestScenario.ReadinessScore))
		fmt.Fprintf(buf, "Lowest readiness:  %s (%s)\n", c.WorstScenario.Name, FormatPercentage(c.WorstScenario.ReadinessScore))
		fmt.Fprintf(buf, "Least saving:      %s (%s/month)\n", c.LowestSavingsRequired.Name, FormatCurrency(c.LowestSavingsRequired.RequiredMonthlySavings))
		fmt.Fprintf(buf, "Readiness range:   %s\n\n", FormatPercentage(c.ScoreRange))
	}
}

func cmpLine(buf *bytes.Buffer, label string, baseline, scenario decimal.Decimal) {
	diff := scenario.Sub(baseline)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(baseline), FormatCurrency(scenario), FormatCurrency(diff))
}

func pctLine(buf *bytes.Buffer, label string, baseline, scenario decimal.Decimal) {
	diff := scenario.Sub(baseline)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatPercentage(baseline), FormatPercentage(scenario), FormatPercentage(diff))
}

func signed(v decimal.Decimal, format func(decimal.Decimal) string) string {
	if v.IsPositive() {
		return "+" + format(v)
	}
	return format(v)
}
