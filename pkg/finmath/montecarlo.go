package finmath

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// SimulationSummary is the distribution of final values from MonteCarloProjection.
type SimulationSummary struct {
	Values       []float64 // ascending
	Median       float64
	Percentile10 float64
	Percentile90 float64
}

// PercentileIndex returns the index of the pct-th percentile in a sorted
// slice of length n: floor(n*pct/100), clamped to the last element.
func PercentileIndex(n, pct int) int {
	if n <= 0 {
		return 0
	}
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// MonteCarloProjection compounds initial for years with a normally distributed
// annual return (mean, volatility) and a fixed year-end contribution, repeated
// simulations times. The random source is injected so callers control
// reproducibility; a nil rng draws a time-seeded source.
func MonteCarloProjection(initial, meanReturn, volatility float64, years int, contribution float64, simulations int, rng *rand.Rand) (SimulationSummary, error) {
	if simulations <= 0 {
		return SimulationSummary{}, fmt.Errorf("%w: simulations must be positive (%d)", ErrInvalidArgument, simulations)
	}
	if years < 0 {
		return SimulationSummary{}, fmt.Errorf("%w: years cannot be negative (%d)", ErrInvalidArgument, years)
	}
	if initial < 0 {
		return SimulationSummary{}, fmt.Errorf("%w: initial value cannot be negative (%g)", ErrInvalidArgument, initial)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	values := make([]float64, simulations)
	for i := range values {
		value := initial
		for y := 0; y < years; y++ {
			rate := meanReturn + volatility*rng.NormFloat64()
			value += contribution + value*rate
		}
		values[i] = value
	}
	sort.Float64s(values)

	return SimulationSummary{
		Values:       values,
		Median:       values[PercentileIndex(simulations, 50)],
		Percentile10: values[PercentileIndex(simulations, 10)],
		Percentile90: values[PercentileIndex(simulations, 90)],
	}, nil
}
