package dto

import (
	fxvanilla "github.com/jwaldner/fxvanilla/fxvanilla_lib"
	"github.com/jwaldner/fxvanilla/internal/config"
	"github.com/jwaldner/fxvanilla/internal/models"
)

// PriceRequest represents a pricing request from a dashboard or script.
// Fields are pointers so that an absent input can be told apart from zero.
type PriceRequest struct {
	Spot         *float64 `json:"spot"`
	Strike       *float64 `json:"strike"`
	TimeToExpiry *float64 `json:"time_to_expiry"`
	ExpiryDate   string   `json:"expiry_date"` // YYYY-MM-DD, used when time_to_expiry is absent
	DomesticRate *float64 `json:"domestic_rate"`
	ForeignRate  *float64 `json:"foreign_rate"`
	Volatility   *float64 `json:"volatility"`
	OptionType   *string  `json:"option_type"`
}

// SliceRequest asks for a price-vs-strike cut; bounds are multiples of spot
type SliceRequest struct {
	PriceRequest
	Lower  *float64 `json:"lower"`
	Upper  *float64 `json:"upper"`
	Points *int     `json:"points"`
}

// MissingMarketFields lists absent inputs shared by price and slice requests
func (r *PriceRequest) MissingMarketFields() []string {
	var missing []string
	if r.Spot == nil {
		missing = append(missing, "spot")
	}
	if r.TimeToExpiry == nil && r.ExpiryDate == "" {
		missing = append(missing, "time_to_expiry")
	}
	if r.DomesticRate == nil {
		missing = append(missing, "domestic_rate")
	}
	if r.ForeignRate == nil {
		missing = append(missing, "foreign_rate")
	}
	if r.Volatility == nil {
		missing = append(missing, "volatility")
	}
	return missing
}

// MissingFields lists absent inputs required to price a single option
func (r *PriceRequest) MissingFields() []string {
	missing := r.MissingMarketFields()
	if r.Strike == nil {
		missing = append(missing, "strike")
	}
	if r.OptionType == nil || *r.OptionType == "" {
		missing = append(missing, "option_type")
	}
	return missing
}

// PriceResponse represents a priced option
type PriceResponse struct {
	Success bool                    `json:"success"`
	Result  fxvanilla.PricingResult `json:"result"`
	Table   models.PriceTable       `json:"table"`
	Meta    models.ResponseMetadata `json:"meta"`
}

// SliceResponse carries the call and put price curves
type SliceResponse struct {
	Success bool                    `json:"success"`
	Strikes []float64               `json:"strikes"`
	Call    []float64               `json:"call"`
	Put     []float64               `json:"put"`
	Meta    models.ResponseMetadata `json:"meta"`
}

// DefaultsResponse exposes the configured initial inputs
type DefaultsResponse struct {
	Defaults config.DefaultsConfig `json:"defaults"`
	Slice    config.SliceConfig    `json:"slice"`
}

// ErrorResponse represents a failed request; no partial result is included
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}
