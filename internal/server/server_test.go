package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/pkg/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, maxBodySize int64) (http.Handler, *prometheus.Registry) {
	t.Helper()
	engine, err := calc.NewEngine(testutil.SyntheticTables())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	reg := prometheus.NewRegistry()
	return NewHandler(zap.NewNop(), engine, reg, maxBodySize, "1.2.3"), reg
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type decodedResponse struct {
	RequestID string                 `json:"requestId"`
	Result    map[string]interface{} `json:"result"`
	Report    string                 `json:"report"`
	Error     string                 `json:"error"`
	Field     string                 `json:"field"`
	Hint      string                 `json:"hint"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) decodedResponse {
	t.Helper()
	var resp decodedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

func TestCalculationEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		field  string
		value  string
		report string
	}{
		{"Salary", "/api/salary", `{"territory":"A","base":50000,"allowance":30}`, "gross", "80000", "Начислено"},
		{"Income tax", "/api/income-tax", `{"income":6000}`, "tax", "1200", "НДФЛ за год"},
		{"Contributions", "/api/contributions", `{"monthly":250000}`, "total", "631800", "Нарастающий итог"},
		{"VAT", "/api/vat", `{"amount":100000,"rate":22}`, "vatFromTotal", "22000", "Обратный расчёт"},
		{"Transport", "/api/transport", `{"category":"car","hp":150}`, "tax", "3000", "Налог за год"},
	}

	h, _ := newTestHandler(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, tt.path, tt.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			resp := decode(t, rr)
			if resp.RequestID == "" {
				t.Error("expected request ID in response")
			}
			if rr.Header().Get(RequestIDHeader) != resp.RequestID {
				t.Errorf("header request ID %q does not match body %q", rr.Header().Get(RequestIDHeader), resp.RequestID)
			}
			if got := resp.Result[tt.field]; got != tt.value {
				t.Errorf("result[%s] = %v, expected %s", tt.field, got, tt.value)
			}
			if !strings.Contains(resp.Report, tt.report) {
				t.Errorf("report missing %q:\n%s", tt.report, resp.Report)
			}
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	h, _ := newTestHandler(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/income-tax", strings.NewReader(`{"income":1}`))
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := decode(t, rr).RequestID; got != "abc-123" {
		t.Errorf("requestId = %q, expected abc-123", got)
	}
}

func TestCalculationErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		field  string
		hint   string
	}{
		{"Unknown territory", "/api/salary", `{"territory":"Z","base":50000}`, http.StatusBadRequest, "territory", "choose a territory group: А, Б"},
		{"Allowance out of range", "/api/salary", `{"territory":"A","base":50000,"allowance":150}`, http.StatusBadRequest, "allowance", "enter a number between 0 and 30"},
		{"Unsupported VAT rate", "/api/vat", `{"amount":100,"rate":18}`, http.StatusBadRequest, "rate", "choose a VAT rate: 22, 10"},
		{"No transport band", "/api/transport", `{"category":"motorcycle","hp":0}`, http.StatusBadRequest, "horsepower", "enter a power between 1 and 500 hp"},
		{"Malformed JSON", "/api/vat", `{"amount":`, http.StatusBadRequest, "", ""},
		{"Unknown field", "/api/income-tax", `{"salary":1}`, http.StatusBadRequest, "", ""},
	}

	h, _ := newTestHandler(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			resp := decode(t, rr)
			if resp.Error == "" {
				t.Error("expected error message")
			}
			if resp.Field != tt.field {
				t.Errorf("field = %q, expected %q", resp.Field, tt.field)
			}
			if resp.Hint != tt.hint {
				t.Errorf("hint = %q, expected %q", resp.Hint, tt.hint)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	h, _ := newTestHandler(t, 16)
	rr := post(t, h, "/api/salary", `{"territory":"A","base":50000,"allowance":30}`)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t, 0)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/salary"},
		{http.MethodPost, "/api/territories"},
		{http.MethodPost, "/api/version"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, &bytes.Buffer{})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestReferenceEndpoints(t *testing.T) {
	h, _ := newTestHandler(t, 0)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/territories", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("territories: expected 200, got %d", rr.Code)
	}
	var territories struct {
		Result []map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &territories); err != nil {
		t.Fatalf("failed to decode territories: %v", err)
	}
	if len(territories.Result) != 2 || territories.Result[0]["territory"] != "А" {
		t.Errorf("unexpected territories %v", territories.Result)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/usn", nil))
	if got := decode(t, rr).Result["law"]; got != "Test USN law" {
		t.Errorf("usn law = %v", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if !strings.Contains(rr.Body.String(), `"version":"1.2.3"`) {
		t.Errorf("unexpected version response %s", rr.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	h, reg := newTestHandler(t, 0)

	post(t, h, "/api/vat", `{"amount":100,"rate":22}`)
	post(t, h, "/api/vat", `{"amount":100,"rate":22}`)
	post(t, h, "/api/vat", `{"amount":100,"rate":18}`)

	m := NewMetrics(reg)
	if got := promtestutil.ToFloat64(m.Calculations.WithLabelValues("vat", "ok")); got != 2 {
		t.Errorf("vat ok = %v, expected 2", got)
	}
	if got := promtestutil.ToFloat64(m.Calculations.WithLabelValues("vat", "invalid")); got != 1 {
		t.Errorf("vat invalid = %v, expected 1", got)
	}
	if got := promtestutil.ToFloat64(m.InFlight); got != 0 {
		t.Errorf("in-flight = %v, expected 0", got)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "buhcalc_calculations_total") {
		t.Errorf("metrics endpoint missing calculations counter")
	}
}
