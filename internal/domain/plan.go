package domain

import (
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RetirementPlan holds the retirement goal and the assumptions used to reach it
type RetirementPlan struct {
	TargetRetirementAge    int             `yaml:"target_retirement_age" json:"target_retirement_age"`
	TargetAnnualIncome     decimal.Decimal `yaml:"target_annual_income" json:"target_annual_income"` // zero falls back to the replacement ratio
	IncomeReplacementRatio decimal.Decimal `yaml:"income_replacement_ratio" json:"income_replacement_ratio"`

	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ReturnRate     decimal.Decimal `yaml:"investment_return_rate" json:"investment_return_rate"`
	WithdrawalRate decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`

	EstimatedSocialSecurity *decimal.Decimal `yaml:"estimated_social_security,omitempty" json:"estimated_social_security,omitempty"`
}

// NewRetirementPlan validates p and returns it.
func NewRetirementPlan(p RetirementPlan) (RetirementPlan, error) {
	if err := p.Validate(); err != nil {
		return RetirementPlan{}, err
	}
	if p.EstimatedSocialSecurity != nil {
		ss := *p.EstimatedSocialSecurity
		p.EstimatedSocialSecurity = &ss
	}
	return p, nil
}

// Validate checks the construction invariants of the plan.
func (p RetirementPlan) Validate() error {
	if p.TargetRetirementAge <= 0 {
		return invalid("target_retirement_age", "target retirement age must be positive")
	}
	if !p.WithdrawalRate.IsPositive() {
		return invalid("withdrawal_rate", "withdrawal rate must be positive")
	}
	if p.TargetAnnualIncome.IsNegative() {
		return invalid("target_annual_income", "target annual income cannot be negative")
	}
	if p.IncomeReplacementRatio.IsNegative() {
		return invalid("income_replacement_ratio", "income replacement ratio cannot be negative")
	}
	if p.EstimatedSocialSecurity != nil && p.EstimatedSocialSecurity.IsNegative() {
		return invalid("estimated_social_security", "estimated social security cannot be negative")
	}
	return nil
}

// SocialSecurityOffset is the estimated annual social security income, 0 when unset.
func (p RetirementPlan) SocialSecurityOffset() decimal.Decimal {
	if p.EstimatedSocialSecurity == nil {
		return decimal.Zero
	}
	return *p.EstimatedSocialSecurity
}

// TargetIncome is the absolute target when set, otherwise the replacement
// ratio applied to the profile's current income.
func (p RetirementPlan) TargetIncome(profile FinancialProfile) decimal.Decimal {
	if p.TargetAnnualIncome.IsPositive() {
		return p.TargetAnnualIncome
	}
	return profile.AnnualIncome.Mul(p.IncomeReplacementRatio)
}

// RequiredPortfolioValue is the portfolio that funds the target income, net of
// social security, at the plan's withdrawal rate.
func (p RetirementPlan) RequiredPortfolioValue(profile FinancialProfile) decimal.Decimal {
	net := p.TargetIncome(profile).Sub(p.SocialSecurityOffset())
	return net.Div(p.WithdrawalRate)
}

// YearsToRetirement is the signed distance between the profile's age and the
// target age. It is negative for someone already past the target.
func (p RetirementPlan) YearsToRetirement(profile FinancialProfile) int {
	return p.TargetRetirementAge - profile.Age()
}

// ProjectedPortfolioValue grows today's assets at the annual return rate and
// adds the monthly savings stream compounded monthly until the target age.
// Already-retired profiles project their current assets.
func (p RetirementPlan) ProjectedPortfolioValue(profile FinancialProfile) decimal.Decimal {
	assets := profile.TotalAssets()
	years := p.YearsToRetirement(profile)
	if years <= 0 {
		return assets
	}
	rate := p.ReturnRate.InexactFloat64()
	futureAssets := assets.Mul(decimal.NewFromFloat(finmath.GrowthFactor(rate, years)))

	monthlyRate := rate / 12
	months := years * 12
	var futureSavings decimal.Decimal
	if monthlyRate > 0 && profile.MonthlySavings.IsPositive() {
		factor := finmath.FutureValueAnnuity(1, monthlyRate, months)
		futureSavings = profile.MonthlySavings.Mul(decimal.NewFromFloat(factor))
	} else {
		futureSavings = profile.MonthlySavings.Mul(decimal.NewFromInt(int64(months)))
	}
	return futureAssets.Add(futureSavings)
}

// RequiredMonthlySavings solves the future value of an annuity for the
// monthly payment that closes the gap between the required portfolio and
// today's assets grown to retirement. Zero when there is no gap or no time left.
func (p RetirementPlan) RequiredMonthlySavings(profile FinancialProfile) decimal.Decimal {
	years := p.YearsToRetirement(profile)
	if years <= 0 {
		return decimal.Zero
	}
	rate := p.ReturnRate.InexactFloat64()
	futureAssets := profile.TotalAssets().Mul(decimal.NewFromFloat(finmath.GrowthFactor(rate, years)))
	gap := p.RequiredPortfolioValue(profile).Sub(futureAssets)
	if !gap.IsPositive() {
		return decimal.Zero
	}

	monthlyRate := rate / 12
	months := years * 12
	if monthlyRate == 0 {
		return gap.Div(decimal.NewFromInt(int64(months)))
	}
	return gap.Div(decimal.NewFromFloat(finmath.FutureValueAnnuity(1, monthlyRate, months)))
}

// ReadinessScore is projected assets at retirement as a percentage of the
// required portfolio, clamped to [0, 100].
func (p RetirementPlan) ReadinessScore(profile FinancialProfile) decimal.Decimal {
	required := p.RequiredPortfolioValue(profile)
	if !required.IsPositive() {
		return hundred
	}
	score := p.ProjectedPortfolioValue(profile).Div(required).Mul(hundred)
	if score.GreaterThan(hundred) {
		return hundred
	}
	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}

// IsOnTrack reports whether the current monthly savings meet the required amount.
func (p RetirementPlan) IsOnTrack(profile FinancialProfile) bool {
	return profile.MonthlySavings.GreaterThanOrEqual(p.RequiredMonthlySavings(profile))
}

// WithTargetRetirementAge returns a copy retiring at a different age.
func (p RetirementPlan) WithTargetRetirementAge(age int) (RetirementPlan, error) {
	c := p
	c.TargetRetirementAge = age
	return NewRetirementPlan(c)
}

// WithReturnRate returns a copy with a different expected return.
func (p RetirementPlan) WithReturnRate(rate decimal.Decimal) (RetirementPlan, error) {
	c := p
	c.ReturnRate = rate
	return NewRetirementPlan(c)
}
