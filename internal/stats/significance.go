package stats

import (
	"math"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

// VariantResult holds one variant's performance with its 95% confidence
// interval on the click-through rate.
type VariantResult struct {
	Variant abtest.Variant
	Views   int
	Clicks  int
	Rate    float64
	CILower float64
	CIUpper float64
}

// Result is the statistical readout of one test.
type Result struct {
	A               VariantResult
	B               VariantResult
	Leader          abtest.Variant
	ConfidenceLevel float64 // confidence that the leader beats the other variant
	Confident       bool    // at least 95%
}

// SignificanceTest performs a two-proportion z-test and returns the
// confidence (0-1) that the first variant's rate beats the second's.
func SignificanceTest(aClicks, aViews, bClicks, bViews int) float64 {
	// Both sides need data before the comparison means anything.
	if aViews == 0 || bViews == 0 {
		return 0.5
	}

	pA := float64(aClicks) / float64(aViews)
	pB := float64(bClicks) / float64(bViews)

	// Pooled proportion under the null hypothesis pA = pB.
	pooledP := float64(aClicks+bClicks) / float64(aViews+bViews)

	se := math.Sqrt(pooledP * (1 - pooledP) * (1/float64(aViews) + 1/float64(bViews)))
	if se == 0 {
		switch {
		case pA > pB:
			return 1.0
		case pA < pB:
			return 0.0
		default:
			return 0.5
		}
	}

	z := (pA - pB) / se
	return normalCDF(z)
}

// normalCDF approximates the standard normal cumulative distribution
// function (Abramowitz and Stegun 7.1.26).
func normalCDF(x float64) float64 {
	a1 := 0.254829592
	a2 := -0.284496736
	a3 := 1.421413741
	a4 := -1.453152027
	a5 := 1.061405429
	p := 0.3275911

	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x) / math.Sqrt(2)

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}

// Analyze computes rates, Wilson intervals, and the leader's significance
// from a test's A/B counts.
func Analyze(variantStats []store.VariantStats) *Result {
	var a, b store.VariantStats
	for _, vs := range variantStats {
		switch vs.Variant {
		case abtest.VariantA:
			a = vs
		case abtest.VariantB:
			b = vs
		}
	}

	ra := variantResult(abtest.VariantA, a)
	rb := variantResult(abtest.VariantB, b)

	leader := abtest.VariantA
	confidence := SignificanceTest(a.Clicks, a.Views, b.Clicks, b.Views)
	if rb.Rate > ra.Rate {
		leader = abtest.VariantB
		confidence = SignificanceTest(b.Clicks, b.Views, a.Clicks, a.Views)
	}

	return &Result{
		A:               ra,
		B:               rb,
		Leader:          leader,
		ConfidenceLevel: confidence,
		Confident:       confidence >= 0.95,
	}
}

func variantResult(v abtest.Variant, vs store.VariantStats) VariantResult {
	rate := 0.0
	if vs.Views > 0 {
		rate = float64(vs.Clicks) / float64(vs.Views)
	}
	lower, upper := WilsonInterval(vs.Clicks, vs.Views, 0.95)

	return VariantResult{
		Variant: v,
		Views:   vs.Views,
		Clicks:  vs.Clicks,
		Rate:    rate,
		CILower: lower,
		CIUpper: upper,
	}
}
