// Package fxvanilla prices European FX vanilla options with the
// Garman-Kohlhagen model and returns the spot Greeks alongside the price.
//
// Rates are continuously compounded, the spot is quoted as domestic currency
// per unit of foreign currency, and vega is per unit of volatility (not per
// volatility point).
package fxvanilla

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwaldner/fxvanilla/internal/normal"
)

// minVolSqrtT is the smallest normal float64. Below it σ√T is treated as zero.
const minVolSqrtT = 0x1p-1022

// OptionType selects the payoff of a vanilla option.
type OptionType byte

const (
	Call OptionType = 'C'
	Put  OptionType = 'P'
)

// ParseOptionType maps "call" or "put" (any case) to an OptionType.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, invalid("option_type", s, "must be either call or put")
}

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("OptionType(%d)", byte(t))
}

// MarshalText encodes the type as "call" or "put".
func (t OptionType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, invalid("option_type", t.String(), "must be either call or put")
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts "call" or "put" in any case.
func (t *OptionType) UnmarshalText(text []byte) error {
	parsed, err := ParseOptionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t OptionType) valid() bool {
	return t == Call || t == Put
}

// sign is the payoff direction: +1 for calls, -1 for puts.
func (t OptionType) sign() float64 {
	if t == Put {
		return -1
	}
	return 1
}

// PricingRequest holds the market and contract inputs of one valuation.
type PricingRequest struct {
	Spot         float64    `json:"spot"`
	Strike       float64    `json:"strike"`
	TimeToExpiry float64    `json:"time_to_expiry"`
	DomesticRate float64    `json:"domestic_rate"`
	ForeignRate  float64    `json:"foreign_rate"`
	Volatility   float64    `json:"volatility"`
	OptionType   OptionType `json:"option_type"`
}

// PricingResult is the present value (domestic currency per unit of foreign
// notional) and its sensitivities.
type PricingResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
}

func (r PricingResult) finite() bool {
	for _, v := range [...]float64{r.Price, r.Delta, r.Gamma, r.Vega} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate reports the first field that violates its domain.
func (req PricingRequest) Validate() error {
	fields := [...]struct {
		name  string
		value float64
	}{
		{"spot", req.Spot},
		{"strike", req.Strike},
		{"time_to_expiry", req.TimeToExpiry},
		{"domestic_rate", req.DomesticRate},
		{"foreign_rate", req.ForeignRate},
		{"volatility", req.Volatility},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, f.value, "must be finite")
		}
	}

	switch {
	case req.Spot <= 0:
		return invalid("spot", req.Spot, "must be positive")
	case req.Strike <= 0:
		return invalid("strike", req.Strike, "must be positive")
	case req.TimeToExpiry < 0:
		return invalid("time_to_expiry", req.TimeToExpiry, "must be non-negative")
	case req.Volatility < 0:
		return invalid("volatility", req.Volatility, "must be non-negative")
	case !req.OptionType.valid():
		return invalid("option_type", req.OptionType.String(), "must be either call or put")
	}
	return nil
}

// Price values a European FX vanilla option.
//
// Expiry (zero time) and zero volatility, or a σ√T too small to represent,
// are resolved to their closed-form limits before d1/d2 are formed. Gamma and vega are 0 at those limits,
// including the at-the-money point where they are formally unbounded.
func Price(req PricingRequest) (PricingResult, error) {
	if err := req.Validate(); err != nil {
		return PricingResult{}, err
	}

	w := req.OptionType.sign()

	var res PricingResult
	switch {
	case req.TimeToExpiry == 0:
		res = atExpiry(req, w)
	case req.Volatility*math.Sqrt(req.TimeToExpiry) < minVolSqrtT:
		res = deterministic(req, w)
	default:
		res = garmanKohlhagen(req, w)
	}

	if !res.finite() {
		return PricingResult{}, fmt.Errorf("%w: non-finite result for %s spot=%g strike=%g T=%g rd=%g rf=%g vol=%g",
			ErrNumericSingularity, req.OptionType, req.Spot, req.Strike, req.TimeToExpiry,
			req.DomesticRate, req.ForeignRate, req.Volatility)
	}
	return res, nil
}

// FXVanillaPrice is the string-typed entry point used by dashboards and
// scripts: optionType is "call" or "put", case-insensitive.
func FXVanillaPrice(spot, strike, timeToExpiry, domesticRate, foreignRate, volatility float64, optionType string) (PricingResult, error) {
	t, err := ParseOptionType(optionType)
	if err != nil {
		return PricingResult{}, err
	}
	return Price(PricingRequest{
		Spot:         spot,
		Strike:       strike,
		TimeToExpiry: timeToExpiry,
		DomesticRate: domesticRate,
		ForeignRate:  foreignRate,
		Volatility:   volatility,
		OptionType:   t,
	})
}

func garmanKohlhagen(req PricingRequest, w float64) PricingResult {
	sqrtT := math.Sqrt(req.TimeToExpiry)
	volSqrtT := req.Volatility * sqrtT

	d1 := (math.Log(req.Spot/req.Strike) +
		(req.DomesticRate-req.ForeignRate+0.5*req.Volatility*req.Volatility)*req.TimeToExpiry) / volSqrtT
	d2 := d1 - volSqrtT

	dfDomestic := math.Exp(-req.DomesticRate * req.TimeToExpiry)
	dfForeign := math.Exp(-req.ForeignRate * req.TimeToExpiry)

	nd1 := normal.CDF(w * d1)
	nd2 := normal.CDF(w * d2)
	pd1 := normal.PDF(d1)

	return PricingResult{
		Price: w * (req.Spot*dfForeign*nd1 - req.Strike*dfDomestic*nd2),
		Delta: w * dfForeign * nd1,
		Gamma: dfForeign * pd1 / (req.Spot * volSqrtT),
		Vega:  req.Spot * dfForeign * pd1 * sqrtT,
	}
}

// atExpiry is the T == 0 limit: undiscounted intrinsic value and a step delta
// that takes half its value exactly at the money.
func atExpiry(req PricingRequest, w float64) PricingResult {
	moneyness := w * (req.Spot - req.Strike)
	return PricingResult{
		Price: math.Max(moneyness, 0),
		Delta: w * step(moneyness),
	}
}

// deterministic is the σ == 0 limit: the forward is known with certainty so
// the option is worth its discounted forward intrinsic value.
func deterministic(req PricingRequest, w float64) PricingResult {
	dfDomestic := math.Exp(-req.DomesticRate * req.TimeToExpiry)
	dfForeign := math.Exp(-req.ForeignRate * req.TimeToExpiry)

	moneyness := w * (req.Spot*dfForeign - req.Strike*dfDomestic)
	return PricingResult{
		Price: math.Max(moneyness, 0),
		Delta: w * dfForeign * step(moneyness),
	}
}

func step(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return 0
	}
	return 0.5
}
