package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	fxvanilla "github.com/jwaldner/fxvanilla/fxvanilla_lib"
	"github.com/jwaldner/fxvanilla/internal/baseline"
	"github.com/jwaldner/fxvanilla/internal/logger"
)

const tolerance = 1e-9

func within(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(tolerance*math.Abs(b), tolerance)
}

// Cross-checks the Garman-Kohlhagen pricer against the generic Black-Scholes
// evaluator and the parity identities over a grid of market states.
func main() {
	logger.InitWithWriter("warn", os.Stderr)

	fmt.Println("FX Vanilla Verification")
	fmt.Println("=======================")

	spots := []float64{0.65, 0.92, 1.25, 110.5}
	moneyness := []float64{0.5, 0.9, 1.0, 1.1, 2.0}
	expiries := []float64{0.01, 0.25, 1.5, 5}
	rates := [][2]float64{{0.03, 0.01}, {0.025, 0.012}, {-0.005, 0.045}, {0.0, 0.0}}
	vols := []float64{0.02, 0.18, 0.6}

	checked, failures := 0, 0
	fail := func(format string, args ...interface{}) {
		failures++
		logger.Warn.Printf(format, args...)
		fmt.Printf("  FAIL "+format+"\n", args...)
	}

	fmt.Println("Test 1: Baseline equivalence and parity")
	fmt.Println("---------------------------------------")
	for _, s := range spots {
		for _, m := range moneyness {
			for _, tte := range expiries {
				for _, r := range rates {
					for _, vol := range vols {
						k := s * m
						call, errC := fxvanilla.FXVanillaPrice(s, k, tte, r[0], r[1], vol, "call")
						put, errP := fxvanilla.FXVanillaPrice(s, k, tte, r[0], r[1], vol, "put")
						if errC != nil || errP != nil {
							fail("S=%g K=%g T=%g: pricing error %v %v", s, k, tte, errC, errP)
							continue
						}
						checked++

						for _, leg := range []struct {
							payoff int
							res    fxvanilla.PricingResult
						}{{1, call}, {-1, put}} {
							base, err := baseline.EuropeanBS(leg.payoff, s, k, tte, r[0], r[1], vol)
							if err != nil {
								fail("baseline error: %v", err)
								continue
							}
							if !within(leg.res.Price, base[baseline.Price]) || !within(leg.res.Delta, base[baseline.Delta]) ||
								!within(leg.res.Gamma, base[baseline.Gamma]) || !within(leg.res.Vega, base[baseline.Vega]) {
								fail("payoff %+d S=%g K=%g T=%g rd=%g rf=%g vol=%g: %+v vs baseline %v",
									leg.payoff, s, k, tte, r[0], r[1], vol, leg.res, base)
							}
						}

						dfF := math.Exp(-r[1] * tte)
						dfD := math.Exp(-r[0] * tte)
						if !within(call.Price-put.Price, dfF*s-dfD*k) {
							fail("price parity S=%g K=%g T=%g", s, k, tte)
						}
						if !within(call.Delta-put.Delta, dfF) {
							fail("delta parity S=%g K=%g T=%g", s, k, tte)
						}
						if call.Gamma != put.Gamma || call.Vega != put.Vega {
							fail("gamma/vega mismatch S=%g K=%g T=%g", s, k, tte)
						}
					}
				}
			}
		}
	}
	fmt.Printf("  %d market states checked\n\n", checked)

	fmt.Println("Test 2: Boundary limits")
	fmt.Println("-----------------------")
	for _, c := range []struct {
		name         string
		tte, vol     float64
		spot, strike float64
	}{
		{"expiry ITM call", 0, 0.2, 1.3, 1.0},
		{"expiry ATM", 0, 0.2, 1.0, 1.0},
		{"zero vol ITM", 1, 0, 1.3, 1.0},
		{"zero vol OTM", 1, 0, 0.7, 1.0},
	} {
		res, err := fxvanilla.FXVanillaPrice(c.spot, c.strike, c.tte, 0.03, 0.01, c.vol, "call")
		if err != nil {
			fail("%s: %v", c.name, err)
			continue
		}
		fmt.Printf("  %-16s price=%.6f delta=%.6f gamma=%.6f vega=%.6f\n", c.name, res.Price, res.Delta, res.Gamma, res.Vega)
		if res.Gamma != 0 || res.Vega != 0 {
			fail("%s: gamma/vega not zero", c.name)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 40))
	if failures > 0 {
		fmt.Printf("%d checks FAILED\n", failures)
		os.Exit(1)
	}
	fmt.Println("All checks passed")
}
