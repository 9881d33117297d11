package stats_test

import (
	"testing"

	"github.com/dxforce-site/abTestHeroBanner/internal/stats"
)

func TestWilsonInterval_50PercentRate(t *testing.T) {
	lower, upper := stats.WilsonInterval(50, 100, 0.95)

	if lower < 0.38 || lower > 0.42 {
		t.Errorf("lower bound %f not in expected range [0.38, 0.42]", lower)
	}
	if upper < 0.58 || upper > 0.62 {
		t.Errorf("upper bound %f not in expected range [0.58, 0.62]", upper)
	}
}

func TestWilsonInterval_LowRate(t *testing.T) {
	lower, upper := stats.WilsonInterval(5, 100, 0.95)

	if lower < 0.01 || lower > 0.03 {
		t.Errorf("lower bound %f not in expected range [0.01, 0.03]", lower)
	}
	if upper < 0.09 || upper > 0.13 {
		t.Errorf("upper bound %f not in expected range [0.09, 0.13]", upper)
	}
}

func TestWilsonInterval_ZeroTrials(t *testing.T) {
	lower, upper := stats.WilsonInterval(0, 0, 0.95)

	if lower != 0 || upper != 0 {
		t.Errorf("expected (0, 0) for zero trials, got (%f, %f)", lower, upper)
	}
}

func TestWilsonInterval_ZeroSuccesses(t *testing.T) {
	lower, upper := stats.WilsonInterval(0, 100, 0.95)

	if lower != 0 {
		t.Errorf("expected lower bound 0, got %f", lower)
	}
	if upper < 0.01 || upper > 0.05 {
		t.Errorf("upper bound %f not in expected range [0.01, 0.05]", upper)
	}
}

func TestWilsonInterval_AllSuccesses(t *testing.T) {
	lower, upper := stats.WilsonInterval(100, 100, 0.95)

	if lower < 0.95 || lower > 0.99 {
		t.Errorf("lower bound %f not in expected range [0.95, 0.99]", lower)
	}
	if upper < 0.99 || upper > 1.0 {
		t.Errorf("upper bound %f not in expected range [0.99, 1.0]", upper)
	}
}

func TestWilsonInterval_SmallSampleIsWider(t *testing.T) {
	smallLower, smallUpper := stats.WilsonInterval(5, 10, 0.95)
	largeLower, largeUpper := stats.WilsonInterval(500, 1000, 0.95)

	if (smallUpper - smallLower) <= (largeUpper - largeLower) {
		t.Errorf("small sample interval [%f, %f] should be wider than large sample [%f, %f]",
			smallLower, smallUpper, largeLower, largeUpper)
	}
}

func TestZScore_CommonLevels(t *testing.T) {
	tests := []struct {
		confidence float64
		want       float64
	}{
		{0.99, 2.576},
		{0.95, 1.96},
		{0.90, 1.645},
	}

	for _, tt := range tests {
		if got := stats.ZScore(tt.confidence); got != tt.want {
			t.Errorf("ZScore(%f) = %f, want %f", tt.confidence, got, tt.want)
		}
	}
}

func TestZScore_ApproximatedLevel(t *testing.T) {
	// 50% confidence corresponds to z ~ 0.6745.
	got := stats.ZScore(0.50)
	if got < 0.66 || got > 0.69 {
		t.Errorf("ZScore(0.50) = %f, want ~0.6745", got)
	}
}
