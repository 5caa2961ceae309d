// Package benchmarks provides timing estimates for install progress.
package benchmarks

import (
	"time"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// DefaultTimings are median per-item durations observed against Genesys
// Cloud orgs (milliseconds). Trunks and data actions dominate a run.
var DefaultTimings = map[config.Category]int{
	config.CategoryRole:        900,
	config.CategoryGroup:       700,
	config.CategoryOAuthClient: 1200,
	config.CategoryAppInstance: 1500,
	config.CategoryDataTable:   1100,
	config.CategoryTrunk:       4000,
	config.CategoryDataAction:  2500,
}

// fallback is used for categories without a benchmark.
const fallback = time.Second

// ItemDuration returns the expected time to create one item of category c.
func ItemDuration(c config.Category) time.Duration {
	ms, ok := DefaultTimings[c]
	if !ok {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// Expected returns the expected duration for the given item counts.
func Expected(counts map[config.Category]int) time.Duration {
	var total time.Duration
	for c, n := range counts {
		if n > 0 {
			total += time.Duration(n) * ItemDuration(c)
		}
	}
	return total
}

// EstimateRemaining returns the expected time for the pending items,
// stretched by scale.
func EstimateRemaining(pending map[config.Category]int, scale float64) time.Duration {
	if scale <= 0 {
		scale = 1.0
	}
	return time.Duration(float64(Expected(pending)) * scale)
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: done items expected 10s, observed 15s => scale=1.5.
func PerformanceScale(done map[config.Category]int, elapsed time.Duration) float64 {
	expected := Expected(done)
	if expected == 0 || elapsed <= 0 {
		return 1.0
	}

	scale := float64(elapsed) / float64(expected)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}
