package stats

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampleTruncatedNormal draws n samples from a normal distribution truncated
// to [lo, hi], so that synthetic request times stay non-negative.
func sampleTruncatedNormal(n int, lo, hi, mean, stddev float64, seed uint64) []float64 {
	// Use an inverse transform method to sample from the distribution.
	// Reference: https://www.r-bloggers.com/2020/08/generating-data-from-a-truncated-distribution/
	norm := distuv.Normal{
		Mu:    mean,
		Sigma: stddev,
		Src:   rand.NewSource(seed),
	}
	u := distuv.Uniform{
		Min: norm.CDF(lo),
		Max: norm.CDF(hi),
		Src: rand.NewSource(seed),
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = norm.Quantile(u.Rand())
	}
	return samples
}
