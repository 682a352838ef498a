package fxvanilla

import (
	"context"
	"fmt"
	"time"

	"github.com/jwaldner/fxvanilla/internal/logger"
)

// StrikeSlice is a price-vs-strike cut of the call and put surfaces at a
// fixed spot, expiry, rates and volatility.
type StrikeSlice struct {
	Strikes []float64 `json:"strikes"`
	Call    []float64 `json:"call"`
	Put     []float64 `json:"put"`

	ExecutionMode     ExecutionMode `json:"execution_mode"`
	CalculationTimeMs float64       `json:"calculation_time_ms"`
}

// StrikeGrid returns points strikes evenly spaced over [lower*spot, upper*spot].
func StrikeGrid(spot, lower, upper float64, points int) ([]float64, error) {
	if points < 2 {
		return nil, invalid("points", points, "must be at least 2")
	}
	if !(lower > 0) || !(upper > lower) {
		return nil, invalid("bounds", fmt.Sprintf("[%g, %g]", lower, upper), "must satisfy 0 < lower < upper")
	}

	lo, hi := lower*spot, upper*spot
	step := (hi - lo) / float64(points-1)

	grid := make([]float64, points)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[points-1] = hi
	return grid, nil
}

// StrikeSlice prices calls and puts across the strike grid around base.Spot.
// base.Strike and base.OptionType are ignored.
func (e *Engine) StrikeSlice(ctx context.Context, base PricingRequest, lower, upper float64, points int) (*StrikeSlice, error) {
	base.Strike = base.Spot
	base.OptionType = Call
	if err := base.Validate(); err != nil {
		return nil, err
	}

	strikes, err := StrikeGrid(base.Spot, lower, upper, points)
	if err != nil {
		return nil, err
	}

	// calls occupy [0, points), puts [points, 2*points)
	reqs := make([]PricingRequest, 0, 2*points)
	for _, opt := range []OptionType{Call, Put} {
		for _, k := range strikes {
			req := base
			req.Strike = k
			req.OptionType = opt
			reqs = append(reqs, req)
		}
	}

	start := time.Now()
	results, mode, err := e.priceBatch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	elapsedMs := time.Since(start).Seconds() * 1000

	slice := &StrikeSlice{
		Strikes:           strikes,
		Call:              make([]float64, points),
		Put:               make([]float64, points),
		ExecutionMode:     mode,
		CalculationTimeMs: elapsedMs,
	}
	for _, r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("strike %g: %w", reqs[r.Index].Strike, r.Err)
		}
		if r.Index < points {
			slice.Call[r.Index] = r.Result.Price
		} else {
			slice.Put[r.Index-points] = r.Result.Price
		}
	}

	logger.Debug.Printf("SLICE spot=%g T=%g vol=%g: %d strikes in %.3fms | Mode: %s",
		base.Spot, base.TimeToExpiry, base.Volatility, points, elapsedMs, mode)

	return slice, nil
}
