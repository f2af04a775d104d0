package domain

import (
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// AssetClass categorizes an investment holding
type AssetClass string

const (
	AssetClassStocks         AssetClass = "stocks"
	AssetClassBonds          AssetClass = "bonds"
	AssetClassRealEstate     AssetClass = "real_estate"
	AssetClassCommodities    AssetClass = "commodities"
	AssetClassCash           AssetClass = "cash"
	AssetClassCryptocurrency AssetClass = "cryptocurrency"
	AssetClassOther          AssetClass = "other"
)

// Valid reports whether c is one of the known asset classes.
func (c AssetClass) Valid() bool {
	switch c {
	case AssetClassStocks, AssetClassBonds, AssetClassRealEstate, AssetClassCommodities,
		AssetClassCash, AssetClassCryptocurrency, AssetClassOther:
		return true
	}
	return false
}

// Investment is a single holding in a portfolio
type Investment struct {
	Symbol       string          `yaml:"symbol" json:"symbol"`
	Name         string          `yaml:"name" json:"name"`
	AssetClass   AssetClass      `yaml:"asset_class" json:"asset_class"`
	Shares       decimal.Decimal `yaml:"shares" json:"shares"`
	CurrentPrice decimal.Decimal `yaml:"current_price" json:"current_price"`
	ReturnRate   decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"`
	Volatility   decimal.Decimal `yaml:"annual_volatility" json:"annual_volatility"`
}

// CurrentValue is shares times price.
func (i Investment) CurrentValue() decimal.Decimal {
	return i.Shares.Mul(i.CurrentPrice)
}

// ProjectValue compounds the current value at the holding's expected return.
func (i Investment) ProjectValue(years int) decimal.Decimal {
	return i.CurrentValue().Mul(decimal.NewFromFloat(finmath.GrowthFactor(i.ReturnRate.InexactFloat64(), years)))
}

// Portfolio is a named set of holdings. Like the other value objects it is
// changed only through copy-returning methods.
type Portfolio struct {
	Name        string       `yaml:"name" json:"name"`
	Investments []Investment `yaml:"investments" json:"investments"`
}

// TotalValue sums the current value of every holding.
func (p Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range p.Investments {
		total = total.Add(inv.CurrentValue())
	}
	return total
}

// AssetAllocation returns the fraction of total value held in each asset
// class. Empty when the portfolio has no value.
func (p Portfolio) AssetAllocation() map[AssetClass]decimal.Decimal {
	total := p.TotalValue()
	allocation := make(map[AssetClass]decimal.Decimal)
	if total.IsZero() {
		return allocation
	}
	for _, inv := range p.Investments {
		allocation[inv.AssetClass] = allocation[inv.AssetClass].Add(inv.CurrentValue())
	}
	for class, value := range allocation {
		allocation[class] = value.Div(total)
	}
	return allocation
}

// WeightedReturnRate is the value-weighted expected return, 0 for an empty portfolio.
func (p Portfolio) WeightedReturnRate() decimal.Decimal {
	return p.weighted(func(i Investment) decimal.Decimal { return i.ReturnRate })
}

// WeightedVolatility is the value-weighted volatility. Correlation between
// holdings is ignored, so this is an upper bound.
func (p Portfolio) WeightedVolatility() decimal.Decimal {
	return p.weighted(func(i Investment) decimal.Decimal { return i.Volatility })
}

func (p Portfolio) weighted(field func(Investment) decimal.Decimal) decimal.Decimal {
	total := p.TotalValue()
	if total.IsZero() {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, inv := range p.Investments {
		sum = sum.Add(inv.CurrentValue().Mul(field(inv)))
	}
	return sum.Div(total)
}

// ProjectValue compounds the total value at the weighted return.
func (p Portfolio) ProjectValue(years int) decimal.Decimal {
	rate := p.WeightedReturnRate().InexactFloat64()
	return p.TotalValue().Mul(decimal.NewFromFloat(finmath.GrowthFactor(rate, years)))
}

// WithInvestment returns a copy with inv appended.
func (p Portfolio) WithInvestment(inv Investment) Portfolio {
	c := Portfolio{Name: p.Name, Investments: make([]Investment, 0, len(p.Investments)+1)}
	c.Investments = append(c.Investments, p.Investments...)
	c.Investments = append(c.Investments, inv)
	return c
}

// WithoutInvestment returns a copy without the first holding matching symbol
// and whether one was found.
func (p Portfolio) WithoutInvestment(symbol string) (Portfolio, bool) {
	for i, inv := range p.Investments {
		if inv.Symbol != symbol {
			continue
		}
		c := Portfolio{Name: p.Name, Investments: make([]Investment, 0, len(p.Investments)-1)}
		c.Investments = append(c.Investments, p.Investments[:i]...)
		c.Investments = append(c.Investments, p.Investments[i+1:]...)
		return c, true
	}
	return p, false
}
