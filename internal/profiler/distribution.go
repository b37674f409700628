package profiler

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalityResult carries the Jarque-Bera statistic and its chi-squared
// p-value. Normal is true when the test fails to reject at 0.05.
type NormalityResult struct {
	Statistic JSONFloat `json:"statistic"`
	PValue    JSONFloat `json:"p_value"`
	Normal    bool      `json:"normal"`
}

// minNormalitySample is the smallest sample the moment-based test is
// worth running on.
const minNormalitySample = 8

const normalityAlpha = 0.05

// skewness returns the population skewness, NaN when undefined.
func skewness(values []float64, mean, std float64) float64 {
	if len(values) < 2 || std == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		d := (v - mean) / std
		sum += d * d * d
	}
	return sum / float64(len(values))
}

// excessKurtosis returns the population kurtosis minus 3, NaN when
// undefined.
func excessKurtosis(values []float64, mean, std float64) float64 {
	if len(values) < 2 || std == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		d := (v - mean) / std
		sum += d * d * d * d
	}
	return sum/float64(len(values)) - 3
}

// normalityCheck runs the Jarque-Bera test from precomputed sample
// moments. It returns nil when the sample is too small or the moments
// are undefined.
func normalityCheck(skew, kurt float64, n int) *NormalityResult {
	if n < minNormalitySample || math.IsNaN(skew) || math.IsNaN(kurt) {
		return nil
	}
	jb := float64(n) / 6.0 * (skew*skew + kurt*kurt/4.0)
	p := 1 - distuv.ChiSquared{K: 2}.CDF(jb)
	return &NormalityResult{
		Statistic: JSONFloat(jb),
		PValue:    JSONFloat(p),
		Normal:    p > normalityAlpha,
	}
}
