package benchmarks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

func TestItemDuration(t *testing.T) {
	assert.Equal(t, 4*time.Second, ItemDuration(config.CategoryTrunk))
	assert.Equal(t, time.Second, ItemDuration(config.Category("unknown")))
}

func TestExpected(t *testing.T) {
	got := Expected(map[config.Category]int{
		config.CategoryRole:  2,
		config.CategoryGroup: 1,
		config.CategoryTrunk: 0,
	})
	assert.Equal(t, 2500*time.Millisecond, got)
	assert.Zero(t, Expected(nil))
}

func TestEstimateRemaining(t *testing.T) {
	pending := map[config.Category]int{config.CategoryDataAction: 2}

	assert.Equal(t, 5*time.Second, EstimateRemaining(pending, 1.0))
	assert.Equal(t, 10*time.Second, EstimateRemaining(pending, 2.0))
	assert.Equal(t, 5*time.Second, EstimateRemaining(pending, 0), "zero scale falls back to 1")
}

func TestPerformanceScale(t *testing.T) {
	done := map[config.Category]int{config.CategoryTrunk: 1}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{name: "on time", elapsed: 4 * time.Second, want: 1.0},
		{name: "slow", elapsed: 6 * time.Second, want: 1.5},
		{name: "clamped high", elapsed: time.Minute, want: 3.0},
		{name: "clamped low", elapsed: time.Second, want: 0.6},
		{name: "nothing elapsed", elapsed: 0, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PerformanceScale(done, tt.elapsed), 0.001)
		})
	}

	assert.InDelta(t, 1.0, PerformanceScale(nil, time.Second), 0)
}
