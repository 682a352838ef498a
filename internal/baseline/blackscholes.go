// Package baseline is a generic Black-Scholes evaluator with a continuous
// dividend yield. It is the reference the FX pricer is checked against: with
// the foreign rate as the yield the two models coincide.
package baseline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Positions in the vector returned by EuropeanBS.
const (
	Price = iota
	Delta
	Gamma
	Theta
	Vega
	Rho
)

// Vector is the ordered tuple (price, delta, gamma, theta, vega, rho).
type Vector [6]float64

// EuropeanBS evaluates a European option under Black-Scholes.
//
// payoff is +1 for a call and -1 for a put. r is the discount rate and q the
// continuous yield on the underlying. Theta is the change in value per year of
// calendar time elapsed; vega is per unit of volatility.
func EuropeanBS(payoff int, spot, strike, timeToExp, r, q, vol float64) (Vector, error) {
	if payoff != 1 && payoff != -1 {
		return Vector{}, fmt.Errorf("payoff must be +1 or -1, got %d", payoff)
	}
	if spot <= 0 || strike <= 0 {
		return Vector{}, fmt.Errorf("spot and strike must be positive, got %g and %g", spot, strike)
	}
	if timeToExp <= 0 || vol <= 0 {
		return Vector{}, fmt.Errorf("time to expiry and volatility must be positive, got %g and %g", timeToExp, vol)
	}

	n := distuv.UnitNormal
	w := float64(payoff)

	sqrtT := math.Sqrt(timeToExp)
	sigT := vol * sqrtT
	d1 := (math.Log(spot/strike) + (r-q+0.5*vol*vol)*timeToExp) / sigT
	d2 := d1 - sigT

	discount := math.Exp(-r * timeToExp)
	yieldDisc := math.Exp(-q * timeToExp)
	fwdSpot := spot * yieldDisc
	pvStrike := strike * discount

	nd1 := n.CDF(w * d1)
	nd2 := n.CDF(w * d2)
	pdf := n.Prob(d1)

	var out Vector
	out[Price] = w * (fwdSpot*nd1 - pvStrike*nd2)
	out[Delta] = w * yieldDisc * nd1
	out[Gamma] = yieldDisc * pdf / (spot * sigT)
	out[Theta] = -fwdSpot*pdf*vol/(2*sqrtT) - w*r*pvStrike*nd2 + w*q*fwdSpot*nd1
	out[Vega] = fwdSpot * pdf * sqrtT
	out[Rho] = w * strike * timeToExp * discount * nd2

	return out, nil
}
