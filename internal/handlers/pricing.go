package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	fxvanilla "github.com/jwaldner/fxvanilla/fxvanilla_lib"
	"github.com/jwaldner/fxvanilla/internal/config"
	"github.com/jwaldner/fxvanilla/internal/dto"
	"github.com/jwaldner/fxvanilla/internal/logger"
	"github.com/jwaldner/fxvanilla/internal/models"
	"github.com/jwaldner/fxvanilla/internal/utils"
)

const maxSlicePoints = 1001

// PricingHandler serves the FX vanilla pricing endpoints
type PricingHandler struct {
	engine *fxvanilla.Engine
	config *config.Config
	now    func() time.Time
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(engine *fxvanilla.Engine, cfg *config.Config) *PricingHandler {
	return &PricingHandler{
		engine: engine,
		config: cfg,
		now:    time.Now,
	}
}

// RegisterRoutes binds the handler to r
func (h *PricingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/price", h.PriceHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/slice", h.SliceHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/defaults", h.DefaultsHandler).Methods("GET")
	r.HandleFunc("/api/health", h.HealthHandler).Methods("GET")
}

// PriceHandler prices one option and returns the result with its display table
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if setCORS(w, r) {
		return
	}

	var req dto.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", "Invalid request body", nil)
		return
	}

	// Incomplete input: the caller keeps its previous result
	if missing := req.MissingFields(); len(missing) > 0 {
		logger.Debug.Printf("price request incomplete: %v", missing)
		writeError(w, http.StatusUnprocessableEntity, "INCOMPLETE_INPUT",
			"Missing required inputs: "+strings.Join(missing, ", "), missing)
		return
	}

	pricingReq, err := h.toPricingRequest(&req)
	if err != nil {
		writePricingError(w, err)
		return
	}
	optionType, err := fxvanilla.ParseOptionType(*req.OptionType)
	if err != nil {
		writePricingError(w, err)
		return
	}
	pricingReq.Strike = *req.Strike
	pricingReq.OptionType = optionType

	start := time.Now()
	result, err := fxvanilla.Price(pricingReq)
	if err != nil {
		writePricingError(w, err)
		return
	}
	elapsed := time.Since(start)

	logger.Verbose.Printf("PRICE %s S=%g K=%g T=%g rd=%g rf=%g vol=%g -> %+v",
		pricingReq.OptionType, pricingReq.Spot, pricingReq.Strike, pricingReq.TimeToExpiry,
		pricingReq.DomesticRate, pricingReq.ForeignRate, pricingReq.Volatility, result)

	writeJSON(w, http.StatusOK, dto.PriceResponse{
		Success: true,
		Result:  result,
		Table:   models.NewPriceTable(result.Price, result.Delta, result.Gamma, result.Vega),
		Meta: models.ResponseMetadata{
			Timestamp:          h.now().UTC().Format(time.RFC3339),
			ProcessingTime:     models.RoundFixed(elapsed.Seconds() * 1000),
			ExecutionMode:      string(fxvanilla.ExecutionModeSequential),
			ContractsProcessed: 1,
		},
	})
}

// SliceHandler returns call and put prices across a strike grid
func (h *PricingHandler) SliceHandler(w http.ResponseWriter, r *http.Request) {
	if setCORS(w, r) {
		return
	}

	var req dto.SliceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", "Invalid request body", nil)
		return
	}

	if missing := req.MissingMarketFields(); len(missing) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "INCOMPLETE_INPUT",
			"Missing required inputs: "+strings.Join(missing, ", "), missing)
		return
	}

	base, err := h.toPricingRequest(&req.PriceRequest)
	if err != nil {
		writePricingError(w, err)
		return
	}

	lower, upper, points := h.config.Slice.Lower, h.config.Slice.Upper, h.config.Slice.Points
	if req.Lower != nil {
		lower = *req.Lower
	}
	if req.Upper != nil {
		upper = *req.Upper
	}
	if req.Points != nil {
		points = *req.Points
	}
	if points > maxSlicePoints {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT",
			fmt.Sprintf("points must be at most %d", maxSlicePoints), []string{"points"})
		return
	}

	slice, err := h.engine.StrikeSlice(r.Context(), base, lower, upper, points)
	if err != nil {
		writePricingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SliceResponse{
		Success: true,
		Strikes: slice.Strikes,
		Call:    slice.Call,
		Put:     slice.Put,
		Meta: models.ResponseMetadata{
			Timestamp:          h.now().UTC().Format(time.RFC3339),
			ProcessingTime:     models.RoundFixed(slice.CalculationTimeMs),
			ExecutionMode:      string(slice.ExecutionMode),
			ContractsProcessed: 2 * len(slice.Strikes),
		},
	})
}

// DefaultsHandler returns the configured initial inputs
func (h *PricingHandler) DefaultsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.DefaultsResponse{
		Defaults: h.config.Defaults,
		Slice:    h.config.Slice,
	})
}

// HealthHandler reports liveness
func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"service":        "fxvanilla",
		"execution_mode": h.engine.Mode(),
		"workers":        h.engine.Workers(),
		"log_level":      logger.Level(),
		"timestamp":      h.now().Unix(),
	})
}

// toPricingRequest copies the market inputs; strike and option type are left
// to the caller.
func (h *PricingHandler) toPricingRequest(req *dto.PriceRequest) (fxvanilla.PricingRequest, error) {
	var tte float64
	if req.TimeToExpiry != nil {
		tte = *req.TimeToExpiry
	} else {
		var err error
		tte, err = utils.TimeToExpiry(req.ExpiryDate, h.now())
		if err != nil {
			return fxvanilla.PricingRequest{}, &fxvanilla.InputError{
				Field: "expiry_date", Value: req.ExpiryDate, Reason: "must be YYYY-MM-DD",
			}
		}
	}

	return fxvanilla.PricingRequest{
		Spot:         *req.Spot,
		TimeToExpiry: tte,
		DomesticRate: *req.DomesticRate,
		ForeignRate:  *req.ForeignRate,
		Volatility:   *req.Volatility,
	}, nil
}

// setCORS sets CORS headers and reports whether the request was a preflight
func setCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writePricingError(w http.ResponseWriter, err error) {
	var inputErr *fxvanilla.InputError
	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", inputErr.Error(), []string{inputErr.Field})
	case errors.Is(err, fxvanilla.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
	case errors.Is(err, fxvanilla.ErrNumericSingularity):
		logger.Warn.Printf("numeric singularity: %v", err)
		writeError(w, http.StatusUnprocessableEntity, "NUMERIC_SINGULARITY", err.Error(), nil)
	default:
		logger.Error.Printf("pricing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "PRICING_FAILED", err.Error(), nil)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []string) {
	writeJSON(w, status, dto.ErrorResponse{Error: code, Message: message, Fields: fields})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error.Printf("failed to encode response: %v", err)
	}
}
