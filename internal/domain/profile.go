package domain

import (
	"fmt"
	"time"

	"github.com/firefly/retirement-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// FinancialProfile is a snapshot of one person's finances. Treat it as
// immutable: the With* builders return modified copies and never touch the
// receiver, so a single base profile can feed any number of scenarios.
type FinancialProfile struct {
	Name          string    `yaml:"name" json:"name"`
	BirthDate     time.Time `yaml:"birth_date" json:"birth_date"`
	AsOf          time.Time `yaml:"as_of,omitempty" json:"as_of,omitempty"` // snapshot date; zero means today
	RetirementAge int       `yaml:"retirement_age" json:"retirement_age"`

	AnnualIncome      decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	IncomeGrowthRate  decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	MonthlyExpenses   decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	ExpenseGrowthRate decimal.Decimal `yaml:"expense_growth_rate" json:"expense_growth_rate"`

	CurrentSavings decimal.Decimal `yaml:"current_savings" json:"current_savings"`
	MonthlySavings decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`

	InvestmentAccounts map[string]decimal.Decimal `yaml:"investment_accounts,omitempty" json:"investment_accounts,omitempty"`
	RetirementAccounts map[string]decimal.Decimal `yaml:"retirement_accounts,omitempty" json:"retirement_accounts,omitempty"`
	Debts              map[string]decimal.Decimal `yaml:"debts,omitempty" json:"debts,omitempty"`
}

// NewFinancialProfile validates p and returns an independent copy of it.
func NewFinancialProfile(p FinancialProfile) (FinancialProfile, error) {
	if err := p.Validate(); err != nil {
		return FinancialProfile{}, err
	}
	return p.Clone(), nil
}

// Validate checks the construction invariants of the profile.
func (p FinancialProfile) Validate() error {
	if p.AnnualIncome.IsNegative() {
		return invalid("annual_income", "annual income cannot be negative")
	}
	if p.MonthlyExpenses.IsNegative() {
		return invalid("monthly_expenses", "monthly expenses cannot be negative")
	}
	if p.CurrentSavings.IsNegative() {
		return invalid("current_savings", "current savings cannot be negative")
	}
	if p.MonthlySavings.IsNegative() {
		return invalid("monthly_savings", "monthly savings cannot be negative")
	}
	for _, group := range []struct {
		field    string
		balances map[string]decimal.Decimal
	}{
		{"investment_accounts", p.InvestmentAccounts},
		{"retirement_accounts", p.RetirementAccounts},
		{"debts", p.Debts},
	} {
		for name, balance := range group.balances {
			if balance.IsNegative() {
				return invalid(group.field, "balance for %q cannot be negative", name)
			}
		}
	}
	return nil
}

// Clone returns a deep copy; the account maps are not shared.
func (p FinancialProfile) Clone() FinancialProfile {
	c := p
	c.InvestmentAccounts = cloneBalances(p.InvestmentAccounts)
	c.RetirementAccounts = cloneBalances(p.RetirementAccounts)
	c.Debts = cloneBalances(p.Debts)
	return c
}

// ValuationDate is the date all age-dependent figures are computed against.
func (p FinancialProfile) ValuationDate() time.Time {
	return dateutil.OrToday(p.AsOf)
}

// AgeAt calculates the age at a given date
func (p FinancialProfile) AgeAt(at time.Time) int {
	return dateutil.Age(p.BirthDate, at)
}

// Age is the age on the valuation date.
func (p FinancialProfile) Age() int {
	return p.AgeAt(p.ValuationDate())
}

// YearsToRetirement is the non-negative distance to the profile's own retirement age.
func (p FinancialProfile) YearsToRetirement() int {
	years := p.RetirementAge - p.Age()
	if years < 0 {
		return 0
	}
	return years
}

// TotalInvestments sums the investment account balances.
func (p FinancialProfile) TotalInvestments() decimal.Decimal {
	return sumBalances(p.InvestmentAccounts)
}

// TotalRetirementAccounts sums the retirement account balances.
func (p FinancialProfile) TotalRetirementAccounts() decimal.Decimal {
	return sumBalances(p.RetirementAccounts)
}

// TotalAssets is cash savings plus every investment and retirement account.
func (p FinancialProfile) TotalAssets() decimal.Decimal {
	return p.CurrentSavings.Add(p.TotalInvestments()).Add(p.TotalRetirementAccounts())
}

// TotalDebts sums the outstanding debt balances.
func (p FinancialProfile) TotalDebts() decimal.Decimal {
	return sumBalances(p.Debts)
}

// NetWorth is total assets minus total debts.
func (p FinancialProfile) NetWorth() decimal.Decimal {
	return p.TotalAssets().Sub(p.TotalDebts())
}

// AnnualExpenses converts monthly expenses to a yearly figure.
func (p FinancialProfile) AnnualExpenses() decimal.Decimal {
	return p.MonthlyExpenses.Mul(twelve)
}

// AnnualSavings converts the monthly contribution to a yearly figure.
func (p FinancialProfile) AnnualSavings() decimal.Decimal {
	return p.MonthlySavings.Mul(twelve)
}

// SavingsRate is annual savings as a fraction of income, 0 without income.
func (p FinancialProfile) SavingsRate() decimal.Decimal {
	if p.AnnualIncome.IsZero() {
		return decimal.Zero
	}
	return p.AnnualSavings().Div(p.AnnualIncome)
}

// WithAnnualIncome returns a copy with a different income.
func (p FinancialProfile) WithAnnualIncome(income decimal.Decimal) (FinancialProfile, error) {
	c := p.Clone()
	c.AnnualIncome = income
	return NewFinancialProfile(c)
}

// WithMonthlySavings returns a copy with a different monthly contribution.
func (p FinancialProfile) WithMonthlySavings(savings decimal.Decimal) (FinancialProfile, error) {
	c := p.Clone()
	c.MonthlySavings = savings
	return NewFinancialProfile(c)
}

// WithMonthlyExpenses returns a copy with different monthly expenses.
func (p FinancialProfile) WithMonthlyExpenses(expenses decimal.Decimal) (FinancialProfile, error) {
	c := p.Clone()
	c.MonthlyExpenses = expenses
	return NewFinancialProfile(c)
}

// WithoutDebt returns a copy with the named debt removed.
func (p FinancialProfile) WithoutDebt(name string) (FinancialProfile, error) {
	if _, ok := p.Debts[name]; !ok {
		return FinancialProfile{}, fmt.Errorf("debt %q: %w", name, ErrNotFound)
	}
	c := p.Clone()
	delete(c.Debts, name)
	return NewFinancialProfile(c)
}

// WithAssetShock scales current savings and every investment and retirement
// account by (1 + change). Debts are left as they are.
func (p FinancialProfile) WithAssetShock(change decimal.Decimal) (FinancialProfile, error) {
	factor := decimal.NewFromInt(1).Add(change)
	c := p.Clone()
	c.CurrentSavings = p.CurrentSavings.Mul(factor)
	c.InvestmentAccounts = scaleBalances(p.InvestmentAccounts, factor)
	c.RetirementAccounts = scaleBalances(p.RetirementAccounts, factor)
	return NewFinancialProfile(c)
}

func cloneBalances(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func scaleBalances(m map[string]decimal.Decimal, factor decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v.Mul(factor)
	}
	return out
}

func sumBalances(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
