package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	fxvanilla "github.com/jwaldner/fxvanilla/fxvanilla_lib"
	"github.com/jwaldner/fxvanilla/internal/config"
	"github.com/jwaldner/fxvanilla/internal/dto"
	"github.com/jwaldner/fxvanilla/internal/logger"
	"github.com/jwaldner/fxvanilla/internal/models"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := config.LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Slice = config.SliceConfig{Lower: 0.6, Upper: 1.4, Points: 41}

	h := NewPricingHandler(fxvanilla.NewEngineWithConfig("parallel", 2, 1), cfg)
	h.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPriceHandlerSuccess(t *testing.T) {
	r := newTestRouter(t)
	body := `{"spot":1.25,"strike":1.2,"time_to_expiry":0.75,"domestic_rate":0.03,"foreign_rate":0.01,"volatility":0.2,"option_type":"CALL"}`

	rec := doJSON(t, r, http.MethodPost, "/api/price", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp dto.PriceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	want, err := fxvanilla.FXVanillaPrice(1.25, 1.2, 0.75, 0.03, 0.01, 0.2, "call")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Result != want {
		t.Errorf("result = %+v, want %+v", resp.Result, want)
	}
	if len(resp.Table) != 4 || resp.Table[0].Metric != "Price" {
		t.Errorf("unexpected table %+v", resp.Table)
	}
	if resp.Meta.ContractsProcessed != 1 {
		t.Errorf("contracts processed = %d", resp.Meta.ContractsProcessed)
	}
	if resp.Meta.ProcessingTime != models.RoundFixed(resp.Meta.ProcessingTime) {
		t.Errorf("processing time %v not rounded to display precision", resp.Meta.ProcessingTime)
	}
}

func TestPriceHandlerExpiryDate(t *testing.T) {
	r := newTestRouter(t)
	body := `{"spot":1.05,"strike":1.05,"expiry_date":"2027-10-15","domestic_rate":0.02,"foreign_rate":0.01,"volatility":0.15,"option_type":"put"}`

	rec := doJSON(t, r, http.MethodPost, "/api/price", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp dto.PriceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want, _ := fxvanilla.FXVanillaPrice(1.05, 1.05, 1.0, 0.02, 0.01, 0.15, "put")
	if math.Abs(resp.Result.Price-want.Price) > 1e-12 {
		t.Errorf("price = %v, want %v", resp.Result.Price, want.Price)
	}
}

func TestPriceHandlerErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed", `{"spot":`, http.StatusBadRequest, "INVALID_REQUEST_BODY"},
		{"missing volatility", `{"spot":1,"strike":1,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"option_type":"call"}`,
			http.StatusUnprocessableEntity, "INCOMPLETE_INPUT"},
		{"missing option type", `{"spot":1,"strike":1,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":0.1}`,
			http.StatusUnprocessableEntity, "INCOMPLETE_INPUT"},
		{"negative spot", `{"spot":-1,"strike":1,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":0.1,"option_type":"call"}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"negative volatility", `{"spot":1,"strike":1,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":-0.1,"option_type":"put"}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown type", `{"spot":1,"strike":1,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":0.1,"option_type":"straddle"}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"bad expiry", `{"spot":1,"strike":1,"expiry_date":"soon","domestic_rate":0,"foreign_rate":0,"volatility":0.1,"option_type":"put"}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"overflow", `{"spot":1,"strike":1,"time_to_expiry":10,"domestic_rate":-100,"foreign_rate":0,"volatility":0.1,"option_type":"put"}`,
			http.StatusUnprocessableEntity, "NUMERIC_SINGULARITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/price", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}

			var raw map[string]json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
				t.Fatal(err)
			}
			var code string
			json.Unmarshal(raw["error"], &code)
			if code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
			if _, ok := raw["result"]; ok {
				t.Error("error response must not carry a result")
			}
		})
	}
}

func TestPricePreflight(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodOptions, "/api/price", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestSliceHandler(t *testing.T) {
	r := newTestRouter(t)
	body := `{"spot":1.05,"time_to_expiry":0.5,"domestic_rate":0.02,"foreign_rate":0.01,"volatility":0.15}`

	rec := doJSON(t, r, http.MethodPost, "/api/slice", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp dto.SliceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Strikes) != 41 || len(resp.Call) != 41 || len(resp.Put) != 41 {
		t.Fatalf("unexpected lengths %d/%d/%d", len(resp.Strikes), len(resp.Call), len(resp.Put))
	}
	if resp.Meta.ContractsProcessed != 82 {
		t.Errorf("contracts processed = %d, want 82", resp.Meta.ContractsProcessed)
	}
	if resp.Meta.ExecutionMode != string(fxvanilla.ExecutionModeParallel) {
		t.Errorf("execution mode = %q", resp.Meta.ExecutionMode)
	}
	if resp.Meta.ProcessingTime != models.RoundFixed(resp.Meta.ProcessingTime) {
		t.Errorf("processing time %v not rounded to display precision", resp.Meta.ProcessingTime)
	}
}

func TestSliceHandlerOverridesAndLimits(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/slice",
		`{"spot":2,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":0.1,"lower":0.5,"upper":1.5,"points":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp dto.SliceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	for i, k := range want {
		if math.Abs(resp.Strikes[i]-k) > 1e-12 {
			t.Errorf("strike[%d] = %v, want %v", i, resp.Strikes[i], k)
		}
	}

	rec = doJSON(t, r, http.MethodPost, "/api/slice",
		`{"spot":2,"time_to_expiry":1,"domestic_rate":0,"foreign_rate":0,"volatility":0.1,"points":5000}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("too many points: status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/slice", `{"spot":2,"domestic_rate":0,"foreign_rate":0,"volatility":0.1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing expiry: status = %d", rec.Code)
	}
}

func TestDefaultsAndHealth(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/defaults", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("defaults status = %d", rec.Code)
	}
	var defaults dto.DefaultsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &defaults); err != nil {
		t.Fatal(err)
	}
	if defaults.Slice.Points != 41 || defaults.Defaults.Volatility <= 0 {
		t.Errorf("unexpected defaults %+v", defaults)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["log_level"] != logger.Level() {
		t.Errorf("health log_level = %v, want %q", health["log_level"], logger.Level())
	}

	rec = doJSON(t, r, http.MethodGet, "/api/price", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/price status = %d, want 405", rec.Code)
	}
}
