package normal

import (
	"math"
	"testing"
)

func TestCDFSymmetry(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.5, 1, 1.96, 2.5, 3, 4, 5, 6, 7, 8, 10, 37} {
		sum := CDF(x) + CDF(-x)
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("CDF(%v)+CDF(%v) = %.17g, want 1", x, -x, sum)
		}
	}
}

func TestCDFKnownValues(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0.5},
		{1, 0.8413447460685429},
		{-1, 0.15865525393145707},
		{1.959963984540054, 0.975},
		{-3, 0.0013498980316301035},
	}

	for _, tt := range tests {
		got := CDF(tt.x)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CDF(%v) = %.17g, want %.17g", tt.x, got, tt.want)
		}
	}
}

func TestCDFMonotonic(t *testing.T) {
	prev := CDF(-12)
	for x := -12.0; x <= 12.0; x += 0.01 {
		cur := CDF(x)
		if cur < prev {
			t.Fatalf("CDF decreased at x=%v: %.17g < %.17g", x, cur, prev)
		}
		if cur < 0 || cur > 1 {
			t.Fatalf("CDF(%v) = %v outside [0,1]", x, cur)
		}
		prev = cur
	}
}

func TestCDFNonFinite(t *testing.T) {
	if got := CDF(math.Inf(1)); got != 1 {
		t.Errorf("CDF(+Inf) = %v, want 1", got)
	}
	if got := CDF(math.Inf(-1)); got != 0 {
		t.Errorf("CDF(-Inf) = %v, want 0", got)
	}
	if got := CDF(math.NaN()); !math.IsNaN(got) {
		t.Errorf("CDF(NaN) = %v, want NaN", got)
	}
}

func TestPDF(t *testing.T) {
	if got, want := PDF(0), 1/math.Sqrt(2*math.Pi); math.Abs(got-want) > 1e-15 {
		t.Errorf("PDF(0) = %.17g, want %.17g", got, want)
	}
	for _, x := range []float64{0.3, 1, 2.2, 8} {
		if PDF(x) != PDF(-x) {
			t.Errorf("PDF not symmetric at %v", x)
		}
		if PDF(x) < 0 {
			t.Errorf("PDF(%v) negative", x)
		}
	}
	if got := PDF(math.Inf(-1)); got != 0 {
		t.Errorf("PDF(-Inf) = %v, want 0", got)
	}
}
