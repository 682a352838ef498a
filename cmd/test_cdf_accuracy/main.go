package main

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jwaldner/fxvanilla/internal/normal"
)

// Measures the erf-based normal kernel against gonum over [-40, 40] and
// reports the worst absolute error and the worst symmetry defect.
func main() {
	fmt.Println("Normal CDF Accuracy")
	fmt.Println("===================")

	const (
		lo, hi = -40.0, 40.0
		step   = 0.001
		limit  = 1e-14
	)

	var maxErr, maxErrAt, maxSym, maxSymAt float64
	n := 0
	for x := lo; x <= hi; x += step {
		n++
		got := normal.CDF(x)
		if e := math.Abs(got - distuv.UnitNormal.CDF(x)); e > maxErr {
			maxErr, maxErrAt = e, x
		}
		if s := math.Abs(got + normal.CDF(-x) - 1); s > maxSym {
			maxSym, maxSymAt = s, x
		}
	}

	fmt.Printf("   Points evaluated: %d\n", n)
	fmt.Printf("   Max |CDF - gonum|: %.3e at x=%.3f\n", maxErr, maxErrAt)
	fmt.Printf("   Max |CDF(x)+CDF(-x)-1|: %.3e at x=%.3f\n", maxSym, maxSymAt)

	fmt.Println()
	for _, x := range []float64{math.Inf(-1), -38, -8.5, 0, 8.5, 38, math.Inf(1)} {
		fmt.Printf("   CDF(%6g) = %.17g   PDF = %.6e\n", x, normal.CDF(x), normal.PDF(x))
	}

	if maxErr > limit || maxSym > limit {
		fmt.Printf("\nAccuracy outside %.0e\n", limit)
		os.Exit(1)
	}
	fmt.Println("\nKernel within tolerance")
}
