package calculation

import "time"

// seedFunc supplies the Monte Carlo seed when a config leaves it at zero.
var seedFunc = freshSeed

func freshSeed() int64 { return time.Now().UnixNano() }

// SetSeedFunc replaces the seed source; nil restores the clock-based default.
func SetSeedFunc(f func() int64) {
	if f == nil {
		f = freshSeed
	}
	seedFunc = f
}

// trialSeed spreads trial indexes across the seed space with the 64-bit
// golden-ratio increment, so trial i reproduces regardless of scheduling.
func trialSeed(base int64, i int) int64 {
	return int64(uint64(base) + uint64(i+1)*0x9E3779B97F4A7C15)
}
