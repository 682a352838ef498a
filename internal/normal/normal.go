// Package normal provides the standard normal distribution primitives used by
// the option pricers.
package normal

import "math"

const sqrt2Pi = 2.5066282746310002

// PDF returns the standard normal density exp(-x²/2)/sqrt(2π).
// PDF(±Inf) is 0 and PDF(NaN) is NaN.
func PDF(x float64) float64 {
	if math.IsInf(x, 0) {
		return 0
	}
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// CDF returns the cumulative standard normal probability Φ(x) via math.Erf.
//
// CDF(+Inf) is 1, CDF(-Inf) is 0 and CDF(NaN) is NaN.
func CDF(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return 1
	case math.IsInf(x, -1):
		return 0
	}
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
