package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAssumptions_Valid(t *testing.T) {
	a := DefaultAssumptions()
	require.NoError(t, a.Validate())
	assert.True(t, a.BlendedReturn().Equal(decimal.RequireFromString("0.082")), "blended %s", a.BlendedReturn())
	assert.Len(t, a.Summary(), 7)
	assert.Equal(t, "Blended 70/30 stock/bond return: 8.2%", a.Summary()[5])
	assert.Equal(t, "Investment return: 7.0% annually", a.Summary()[0])
}

func TestAssumptions_ValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Assumptions)
	}{
		{"zero withdrawal", "withdrawal_rate", func(a *Assumptions) { a.WithdrawalRate = decimal.Zero }},
		{"zero fire withdrawal", "fire_withdrawal_rate", func(a *Assumptions) { a.FIREWithdrawalRate = decimal.Zero }},
		{"negative multiplier", "fire_multiplier", func(a *Assumptions) { a.FIREMultiplier = decimal.NewFromInt(-1) }},
		{"no simulations", "monte_carlo_simulations", func(a *Assumptions) { a.MonteCarloSimulations = 0 }},
		{"negative volatility", "market_volatility", func(a *Assumptions) { a.MarketVolatility = decimal.NewFromFloat(-0.1) }},
		{"no horizon", "withdrawal_years", func(a *Assumptions) { a.WithdrawalYears = 0 }},
		{"allocation", "stock_allocation", func(a *Assumptions) { a.BondAllocation = decimal.NewFromFloat(0.4) }},
		{"inverted ages", "min_age", func(a *Assumptions) { a.MinRetirementAge = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAssumptions()
			tt.edit(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
