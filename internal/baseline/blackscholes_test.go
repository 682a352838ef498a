package baseline

import (
	"math"
	"testing"
)

func TestEuropeanBSTextbookValues(t *testing.T) {
	// Hull: S=42, K=40, r=10%, σ=20%, T=0.5, no yield.
	call, err := EuropeanBS(1, 42, 40, 0.5, 0.10, 0, 0.20)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	put, err := EuropeanBS(-1, 42, 40, 0.5, 0.10, 0, 0.20)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	if math.Abs(call[Price]-4.759422392871532) > 1e-9 {
		t.Errorf("call price = %.12f, want 4.759422", call[Price])
	}
	if math.Abs(put[Price]-0.8085993729000922) > 1e-9 {
		t.Errorf("put price = %.12f, want 0.808599", put[Price])
	}
}

func TestEuropeanBSGreeksAgainstFiniteDifferences(t *testing.T) {
	const (
		spot   = 1.25
		strike = 1.20
		tte    = 0.75
		r      = 0.03
		q      = 0.01
		vol    = 0.20
	)

	for _, payoff := range []int{1, -1} {
		v, err := EuropeanBS(payoff, spot, strike, tte, r, q, vol)
		if err != nil {
			t.Fatal(err)
		}

		price := func(s, k, tt, rr, sig float64) float64 {
			out, err := EuropeanBS(payoff, s, k, tt, rr, q, sig)
			if err != nil {
				t.Fatal(err)
			}
			return out[Price]
		}

		h := 1e-5
		checks := []struct {
			name string
			got  float64
			fd   float64
		}{
			{"delta", v[Delta], (price(spot+h, strike, tte, r, vol) - price(spot-h, strike, tte, r, vol)) / (2 * h)},
			{"gamma", v[Gamma], (price(spot+h, strike, tte, r, vol) - 2*v[Price] + price(spot-h, strike, tte, r, vol)) / (h * h)},
			{"vega", v[Vega], (price(spot, strike, tte, r, vol+h) - price(spot, strike, tte, r, vol-h)) / (2 * h)},
			{"rho", v[Rho], (price(spot, strike, tte, r+h, vol) - price(spot, strike, tte, r-h, vol)) / (2 * h)},
			{"theta", v[Theta], -(price(spot, strike, tte+h, r, vol) - price(spot, strike, tte-h, r, vol)) / (2 * h)},
		}
		for _, c := range checks {
			if math.Abs(c.got-c.fd) > 1e-4 {
				t.Errorf("payoff %+d %s = %.10f, finite difference %.10f", payoff, c.name, c.got, c.fd)
			}
		}
	}
}

func TestEuropeanBSRejectsDegenerateInputs(t *testing.T) {
	tests := []struct {
		name                      string
		payoff                    int
		spot, strike, tte, r, q, v float64
	}{
		{"bad payoff", 0, 1, 1, 1, 0, 0, 0.1},
		{"zero spot", 1, 0, 1, 1, 0, 0, 0.1},
		{"zero time", 1, 1, 1, 0, 0, 0, 0.1},
		{"zero vol", -1, 1, 1, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EuropeanBS(tt.payoff, tt.spot, tt.strike, tt.tte, tt.r, tt.q, tt.v); err == nil {
				t.Error("expected error")
			}
		})
	}
}
