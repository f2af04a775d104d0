package calculation

import (
	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// statePlaces bounds the scale of running balances. Exact decimal products
// otherwise grow a few digits every simulated year.
const statePlaces = 10

var one = decimal.NewFromInt(1)

// ProjectionOptions controls row labelling and the withdrawal horizon
type ProjectionOptions struct {
	StartYear       int // calendar year of the first row; 0 uses the profile's valuation year
	WithdrawalYears int // 0 uses the engine's assumption
}

func (ce *CalculationEngine) startYear(profile domain.FinancialProfile, opts ProjectionOptions) int {
	if opts.StartYear != 0 {
		return opts.StartYear
	}
	return profile.ValuationDate().Year()
}

func (ce *CalculationEngine) withdrawalYears(years int) int {
	if years > 0 {
		return years
	}
	return ce.Assumptions.WithdrawalYears
}

// accumulateYear applies one year of growth plus a year-end contribution.
func accumulateYear(portfolio, contribution, rate decimal.Decimal) (next, ret decimal.Decimal) {
	ret = portfolio.Mul(rate).Round(statePlaces)
	next = portfolio.Add(contribution).Add(ret)
	return next, ret
}

// withdrawYear applies one year of growth, then takes the year's need out.
func withdrawYear(portfolio, need, rate decimal.Decimal) (next, ret decimal.Decimal) {
	ret = portfolio.Mul(rate).Round(statePlaces)
	next = portfolio.Add(ret).Sub(need)
	return next, ret
}

// initialWithdrawalNeed is the first retirement year's withdrawal: today's
// annual expenses inflated to the retirement year, less social security
// inflated the same way.
func initialWithdrawalNeed(profile domain.FinancialProfile, plan domain.RetirementPlan) decimal.Decimal {
	factor := decimal.NewFromFloat(finmath.GrowthFactor(plan.InflationRate.InexactFloat64(), plan.YearsToRetirement(profile)))
	need := profile.AnnualExpenses().Mul(factor)
	if plan.EstimatedSocialSecurity != nil {
		need = need.Sub(plan.EstimatedSocialSecurity.Mul(factor))
	}
	return need.Round(statePlaces)
}

// ProjectToRetirement walks year by year from the current age to the target
// retirement age, inclusive. A profile already at or past the target still
// gets a single row.
func (ce *CalculationEngine) ProjectToRetirement(profile domain.FinancialProfile, plan domain.RetirementPlan) domain.RetirementProjection {
	return ce.ProjectToRetirementWithOptions(profile, plan, ProjectionOptions{})
}

// ProjectToRetirementWithOptions is ProjectToRetirement with explicit options.
func (ce *CalculationEngine) ProjectToRetirementWithOptions(profile domain.FinancialProfile, plan domain.RetirementPlan, opts ProjectionOptions) domain.RetirementProjection {
	age := profile.Age()
	startYear := ce.startYear(profile, opts)
	years := plan.TargetRetirementAge - age
	if years < 0 {
		ce.Logger.Warnf("%s is %d, past the target retirement age %d", profile.Name, age, plan.TargetRetirementAge)
		years = 0
	}

	portfolio := profile.TotalAssets()
	contribution := profile.AnnualSavings()
	expenses := profile.AnnualExpenses()
	debts := profile.TotalDebts()
	incomeGrowth := one.Add(profile.IncomeGrowthRate)
	expenseGrowth := one.Add(profile.ExpenseGrowthRate)

	rows := make([]domain.YearlyProjection, 0, years+1)
	totalContributions, totalReturns := decimal.Zero, decimal.Zero

	for offset := 0; offset <= years; offset++ {
		var ret decimal.Decimal
		portfolio, ret = accumulateYear(portfolio, contribution, plan.ReturnRate)

		// The first year keeps today's contribution and expense levels.
		if offset > 0 {
			contribution = contribution.Mul(incomeGrowth).Round(statePlaces)
			expenses = expenses.Mul(expenseGrowth).Round(statePlaces)
		}
		totalContributions = totalContributions.Add(contribution)
		totalReturns = totalReturns.Add(ret)

		rows = append(rows, domain.YearlyProjection{
			Year:             startYear + offset,
			Age:              age + offset,
			PortfolioValue:   portfolio,
			Contribution:     contribution,
			InvestmentReturn: ret,
			Expenses:         expenses,
			NetWorth:         portfolio.Sub(debts),
		})
	}

	required := plan.RequiredPortfolioValue(profile)
	result := domain.RetirementProjection{
		YearlyProjections:      rows,
		TotalContributions:     totalContributions,
		TotalReturns:           totalReturns,
		FinalPortfolioValue:    portfolio,
		RequiredPortfolioValue: required,
		RetirementFeasible:     portfolio.GreaterThanOrEqual(required),
	}

	// Funded years use uninflated expenses net of social security.
	net := expenses.Sub(plan.SocialSecurityOffset())
	switch {
	case !net.IsPositive():
		ce.Logger.Warnf("social security covers expenses for %s; funded years left at 0", profile.Name)
	case portfolio.IsPositive():
		result.YearsOfRetirementFunded = int(portfolio.Div(net).IntPart())
	}

	ce.Logger.Debugf("accumulation for %s: %d rows, final %s, required %s",
		profile.Name, len(rows), portfolio.StringFixed(2), required.StringFixed(2))
	return result
}

// ProjectWithdrawal runs the drawdown phase starting from the accumulation
// result. Each year adds the investment return, removes the withdrawal need
// and then inflates the need. The sequence stops early, with the final row
// floored at zero, the first year the portfolio is exhausted.
func (ce *CalculationEngine) ProjectWithdrawal(profile domain.FinancialProfile, plan domain.RetirementPlan, accumulation domain.RetirementProjection, opts ProjectionOptions) domain.WithdrawalProjection {
	horizon := ce.withdrawalYears(opts.WithdrawalYears)
	retirementYear := ce.startYear(profile, opts) + plan.YearsToRetirement(profile)
	inflation := one.Add(plan.InflationRate)
	ss := plan.SocialSecurityOffset()

	need := initialWithdrawalNeed(profile, plan)
	portfolio := accumulation.FinalPortfolioValue
	result := domain.WithdrawalProjection{
		YearlyProjections: make([]domain.YearlyProjection, 0, horizon),
		RequestedYears:    horizon,
		StartingPortfolio: portfolio,
		InitialNeed:       need,
	}

	for i := 0; i < horizon; i++ {
		age := plan.TargetRetirementAge + i
		var ret decimal.Decimal
		portfolio, ret = withdrawYear(portfolio, need, plan.ReturnRate)
		need = need.Mul(inflation).Round(statePlaces)

		reported := decimal.Max(portfolio, decimal.Zero)
		result.YearlyProjections = append(result.YearlyProjections, domain.YearlyProjection{
			Year:             retirementYear + i,
			Age:              age,
			PortfolioValue:   reported,
			Contribution:     need.Neg(),
			InvestmentReturn: ret,
			Expenses:         need.Add(ss),
			NetWorth:         reported,
		})

		if !portfolio.IsPositive() {
			result.Depleted = true
			result.DepletionAge = age
			ce.Logger.Debugf("portfolio for %s depleted at age %d", profile.Name, age)
			break
		}
	}
	return result
}
