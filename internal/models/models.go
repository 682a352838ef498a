package models

import "github.com/shopspring/decimal"

// DisplayPlaces is the precision used for displayed metrics
const DisplayPlaces = 6

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     float64 `json:"raw"`     // Full precision: 0.0345612789
	Display string  `json:"display"` // For UI: "0.034561"
	Type    string  `json:"type"`    // For CSS: "price", "greek"
}

// MetricRow is one line of the price table
type MetricRow struct {
	Metric string     `json:"metric"`
	Value  FieldValue `json:"value"`
}

// PriceTable lists Price, Delta, Gamma, Vega in display order
type PriceTable []MetricRow

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	Timestamp          string  `json:"timestamp"`
	ProcessingTime     float64 `json:"processing_time"`
	ExecutionMode      string  `json:"execution_mode"`
	ContractsProcessed int     `json:"contracts_processed"`
}

// FormatFixed renders value rounded half away from zero to DisplayPlaces.
func FormatFixed(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(DisplayPlaces)
}

// RoundFixed rounds value to DisplayPlaces decimal places.
func RoundFixed(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(DisplayPlaces).Float64()
	return f
}

func formatValue(value float64, kind string) FieldValue {
	return FieldValue{
		Raw:     value,
		Display: FormatFixed(value),
		Type:    kind,
	}
}

// NewPriceTable builds the display table for a priced option
func NewPriceTable(price, delta, gamma, vega float64) PriceTable {
	return PriceTable{
		{Metric: "Price", Value: formatValue(price, "price")},
		{Metric: "Delta", Value: formatValue(delta, "greek")},
		{Metric: "Gamma", Value: formatValue(gamma, "greek")},
		{Metric: "Vega", Value: formatValue(vega, "greek")},
	}
}
