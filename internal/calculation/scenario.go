package calculation

import (
	"fmt"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// Adjustment is one change applied to a copy of the baseline profile or plan
type Adjustment struct {
	Parameter string
	Value     string
	apply     func(domain.FinancialProfile, domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error)
}

// IncomeChange scales annual income by (1 + pct).
func IncomeChange(pct decimal.Decimal) Adjustment {
	return Adjustment{
		Parameter: "income_change_percent",
		Value:     pct.String(),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := p.WithAnnualIncome(p.AnnualIncome.Mul(one.Add(pct)))
			return modified, plan, err
		},
	}
}

// SavingsRate sets monthly savings to rate times annual income.
func SavingsRate(rate decimal.Decimal) Adjustment {
	return Adjustment{
		Parameter: "new_savings_rate",
		Value:     rate.String(),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := p.WithMonthlySavings(p.AnnualIncome.Mul(rate).Div(decimal.NewFromInt(12)))
			return modified, plan, err
		},
	}
}

// RetirementAge moves the plan's target retirement age.
func RetirementAge(age int) Adjustment {
	return Adjustment{
		Parameter: "new_retirement_age",
		Value:     fmt.Sprint(age),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := plan.WithTargetRetirementAge(age)
			return p, modified, err
		},
	}
}

// ReturnRate replaces the plan's expected investment return.
func ReturnRate(rate decimal.Decimal) Adjustment {
	return Adjustment{
		Parameter: "new_return_rate",
		Value:     rate.String(),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := plan.WithReturnRate(rate)
			return p, modified, err
		},
	}
}

// ExpenseChange scales monthly expenses by (1 + pct).
func ExpenseChange(pct decimal.Decimal) Adjustment {
	return Adjustment{
		Parameter: "expense_change_percent",
		Value:     pct.String(),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := p.WithMonthlyExpenses(p.MonthlyExpenses.Mul(one.Add(pct)))
			return modified, plan, err
		},
	}
}

// DebtPayoff removes the named debt. Applying it to a profile without that
// debt fails with domain.ErrNotFound.
func DebtPayoff(name string) Adjustment {
	return Adjustment{
		Parameter: "debt_paid_off",
		Value:     name,
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := p.WithoutDebt(name)
			return modified, plan, err
		},
	}
}

// MarketCrash scales savings and every account balance by (1 + pct); debts are untouched.
func MarketCrash(pct decimal.Decimal) Adjustment {
	return Adjustment{
		Parameter: "crash_percent",
		Value:     pct.String(),
		apply: func(p domain.FinancialProfile, plan domain.RetirementPlan) (domain.FinancialProfile, domain.RetirementPlan, error) {
			modified, err := p.WithAssetShock(pct)
			return modified, plan, err
		},
	}
}

// ScenarioAnalyzer evaluates what-if perturbations of one baseline profile
// and plan. The baseline is never modified.
type ScenarioAnalyzer struct {
	engine  *CalculationEngine
	profile domain.FinancialProfile
	plan    domain.RetirementPlan
}

// NewScenarioAnalyzer creates an analyzer over a baseline profile and plan
func (ce *CalculationEngine) NewScenarioAnalyzer(profile domain.FinancialProfile, plan domain.RetirementPlan) *ScenarioAnalyzer {
	return &ScenarioAnalyzer{engine: ce, profile: profile.Clone(), plan: plan}
}

func (s *ScenarioAnalyzer) AnalyzeIncomeChange(pct decimal.Decimal) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Income Change", IncomeChange(pct))
}

func (s *ScenarioAnalyzer) AnalyzeSavingsRateChange(rate decimal.Decimal) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Savings Rate Change", SavingsRate(rate))
}

func (s *ScenarioAnalyzer) AnalyzeRetirementAgeChange(age int) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Retirement Age Change", RetirementAge(age))
}

func (s *ScenarioAnalyzer) AnalyzeReturnRateChange(rate decimal.Decimal) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Return Rate Change", ReturnRate(rate))
}

func (s *ScenarioAnalyzer) AnalyzeExpenseChange(pct decimal.Decimal) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Expense Change", ExpenseChange(pct))
}

func (s *ScenarioAnalyzer) AnalyzeDebtPayoff(name string) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Debt Payoff", DebtPayoff(name))
}

func (s *ScenarioAnalyzer) AnalyzeMarketCrash(pct decimal.Decimal) (domain.ScenarioResult, error) {
	return s.AnalyzeCombined("Market Crash", MarketCrash(pct))
}

// AnalyzeCombined applies adjustments in order to a single copy of the
// baseline and evaluates the result. Every change is recorded.
func (s *ScenarioAnalyzer) AnalyzeCombined(name string, adjustments ...Adjustment) (domain.ScenarioResult, error) {
	profile, plan := s.profile, s.plan
	changes := make(map[string]string, len(adjustments))
	for _, adj := range adjustments {
		var err error
		profile, plan, err = adj.apply(profile, plan)
		if err != nil {
			return domain.ScenarioResult{}, fmt.Errorf("%s: %w", adj.Parameter, err)
		}
		changes[adj.Parameter] = adj.Value
	}
	return s.evaluate(name, profile, plan, changes), nil
}

// Analyze runs the scenario described by spec. A non-empty spec name
// replaces the default label.
func (s *ScenarioAnalyzer) Analyze(spec domain.ScenarioSpec) (domain.ScenarioResult, error) {
	var (
		result domain.ScenarioResult
		err    error
	)
	switch spec.Kind {
	case domain.ScenarioIncomeChange:
		result, err = s.AnalyzeIncomeChange(spec.Value)
	case domain.ScenarioSavingsRate:
		result, err = s.AnalyzeSavingsRateChange(spec.Value)
	case domain.ScenarioRetirementAge:
		result, err = s.AnalyzeRetirementAgeChange(int(spec.Value.IntPart()))
	case domain.ScenarioReturnRate:
		result, err = s.AnalyzeReturnRateChange(spec.Value)
	case domain.ScenarioExpenseChange:
		result, err = s.AnalyzeExpenseChange(spec.Value)
	case domain.ScenarioDebtPayoff:
		result, err = s.AnalyzeDebtPayoff(spec.Debt)
	case domain.ScenarioMarketCrash:
		result, err = s.AnalyzeMarketCrash(spec.Value)
	default:
		return domain.ScenarioResult{}, fmt.Errorf("unknown scenario type %q", spec.Kind)
	}
	if err != nil {
		return domain.ScenarioResult{}, err
	}
	if spec.Name != "" {
		result.Name = spec.Name
	}
	return result, nil
}

// StandardScenarios is the default what-if suite for a profile.
func StandardScenarios(profile domain.FinancialProfile, plan domain.RetirementPlan) []domain.ScenarioSpec {
	retireAge := profile.RetirementAge
	if retireAge == 0 {
		retireAge = plan.TargetRetirementAge
	}
	return []domain.ScenarioSpec{
		{Name: "20% Income Increase", Kind: domain.ScenarioIncomeChange, Value: decimal.NewFromFloat(0.20)},
		{Name: "10% Income Decrease", Kind: domain.ScenarioIncomeChange, Value: decimal.NewFromFloat(-0.10)},
		{Name: "Increase Savings Rate to 20%", Kind: domain.ScenarioSavingsRate, Value: decimal.NewFromFloat(0.20)},
		{Name: "Retire 5 Years Earlier", Kind: domain.ScenarioRetirementAge, Value: decimal.NewFromInt(int64(retireAge - 5))},
		{Name: "Conservative 5% Returns", Kind: domain.ScenarioReturnRate, Value: decimal.NewFromFloat(0.05)},
		{Name: "Aggressive 9% Returns", Kind: domain.ScenarioReturnRate, Value: decimal.NewFromFloat(0.09)},
		{Name: "30% Market Crash", Kind: domain.ScenarioMarketCrash, Value: decimal.NewFromFloat(-0.30)},
	}
}

// RunStandardScenarios evaluates StandardScenarios in order.
func (s *ScenarioAnalyzer) RunStandardScenarios() ([]domain.ScenarioResult, error) {
	specs := StandardScenarios(s.profile, s.plan)
	results := make([]domain.ScenarioResult, 0, len(specs))
	for _, spec := range specs {
		r, err := s.Analyze(spec)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Sweep evaluates one scenario parameter at steps evenly spaced values from
// lo to hi inclusive. Retirement ages are truncated to whole years.
func (s *ScenarioAnalyzer) Sweep(param domain.ScenarioKind, lo, hi decimal.Decimal, steps int) (*domain.SensitivitySweep, error) {
	if !param.Valid() || param == domain.ScenarioDebtPayoff {
		return nil, fmt.Errorf("%w: %q cannot be swept", finmath.ErrInvalidArgument, param)
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step (%d)", finmath.ErrInvalidArgument, steps)
	}
	if lo.GreaterThan(hi) {
		return nil, fmt.Errorf("%w: sweep minimum %s exceeds maximum %s", finmath.ErrInvalidArgument, lo, hi)
	}

	sweep := &domain.SensitivitySweep{Parameter: param}
	for i := 0; i < steps; i++ {
		value := lo
		if steps > 1 {
			value = lo.Add(hi.Sub(lo).Mul(decimal.NewFromInt(int64(i))).Div(decimal.NewFromInt(int64(steps - 1))))
		}
		if param == domain.ScenarioRetirementAge {
			value = value.Truncate(0)
		}
		result, err := s.Analyze(domain.ScenarioSpec{
			Name:  fmt.Sprintf("%s = %s", param, value),
			Kind:  param,
			Value: value,
		})
		if err != nil {
			return nil, err
		}
		sweep.Values = append(sweep.Values, value)
		sweep.Results = append(sweep.Results, result)
	}
	sweep.Comparison = CompareScenarios(sweep.Results)
	return sweep, nil
}

func (s *ScenarioAnalyzer) evaluate(name string, profile domain.FinancialProfile, plan domain.RetirementPlan, changes map[string]string) domain.ScenarioResult {
	result := domain.ScenarioResult{
		Name:                   name,
		ReadinessScore:         plan.ReadinessScore(profile),
		RequiredMonthlySavings: plan.RequiredMonthlySavings(profile),
		ProjectedValue:         projectedValue(profile, plan),
		YearsToFI:              s.yearsToFI(profile, plan),
		Changes:                changes,
	}
	s.engine.Logger.Debugf("scenario %q: readiness %s, required monthly %s",
		name, result.ReadinessScore.StringFixed(1), result.RequiredMonthlySavings.StringFixed(2))
	return result
}

// projectedValue is today's assets compounded annually plus the monthly
// savings annuity compounded monthly, both to the target retirement age.
func projectedValue(profile domain.FinancialProfile, plan domain.RetirementPlan) decimal.Decimal {
	years := plan.YearsToRetirement(profile)
	if years <= 0 {
		return profile.TotalAssets()
	}
	rate := plan.ReturnRate.InexactFloat64()
	assets := profile.TotalAssets().Mul(decimal.NewFromFloat(finmath.GrowthFactor(rate, years)))
	savings := profile.MonthlySavings.Mul(decimal.NewFromFloat(finmath.FutureValueAnnuity(1, rate/12, years*12)))
	return assets.Add(savings)
}

// yearsToFI targets annual expenses at the FIRE withdrawal rate and counts
// the whole years of monthly saving needed to get there.
func (s *ScenarioAnalyzer) yearsToFI(profile domain.FinancialProfile, plan domain.RetirementPlan) int {
	target := profile.AnnualExpenses().Div(s.engine.Assumptions.FIREWithdrawalRate)
	shortfall := target.Sub(profile.TotalAssets())
	months := finmath.PeriodsToTarget(shortfall.InexactFloat64(), profile.MonthlySavings.InexactFloat64(), plan.ReturnRate.InexactFloat64()/12)
	return int(months / 12)
}
