// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger      *zap.Logger
	engine      *calc.Engine
	metrics     *Metrics
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculation API and
// its Prometheus metrics. A nil registry gets a private one.
func NewHandler(logger *zap.Logger, engine *calc.Engine, reg *prometheus.Registry, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      engine,
		metrics:     NewMetrics(reg),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.Handle("/api/salary", h.instrument("/api/salary", calculation(h, "salary", h.salary)))
	mux.Handle("/api/income-tax", h.instrument("/api/income-tax", calculation(h, "income_tax", h.incomeTax)))
	mux.Handle("/api/contributions", h.instrument("/api/contributions", calculation(h, "contributions", h.contributions)))
	mux.Handle("/api/vat", h.instrument("/api/vat", calculation(h, "vat", h.vat)))
	mux.Handle("/api/transport", h.instrument("/api/transport", calculation(h, "transport", h.transport)))
	mux.Handle("/api/territories", h.instrument("/api/territories", h.reference(func() any { return h.engine.Territories() })))
	mux.Handle("/api/usn", h.instrument("/api/usn", h.reference(func() any { return h.engine.SimplifiedTax() })))
	mux.Handle("/api/version", h.instrument("/api/version", http.HandlerFunc(h.handleVersion)))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

type salaryRequest struct {
	Territory string `json:"territory"`
	Base      int    `json:"base"`
	Allowance int    `json:"allowance"`
}

type incomeTaxRequest struct {
	Income int `json:"income"`
}

type contributionsRequest struct {
	Monthly int `json:"monthly"`
}

type vatRequest struct {
	Amount int `json:"amount"`
	Rate   int `json:"rate"`
}

type transportRequest struct {
	Category   string `json:"category"`
	Horsepower int    `json:"hp"`
}

type calculationResponse struct {
	RequestID string `json:"requestId"`
	Result    any    `json:"result"`
	Report    string `json:"report"`
}

type errorResponse struct {
	RequestID string `json:"requestId,omitempty"`
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

func (h *handler) salary(ctx context.Context, req salaryRequest) (any, error) {
	r, err := h.engine.Salary(req.Territory, req.Base, req.Allowance)
	if err != nil {
		return nil, err
	}
	if r.AllowanceClamped {
		h.logger.Warn("allowance clamped to territory ceiling",
			zap.String("op", "server.salary"),
			zap.String("requestId", requestID(ctx)),
			zap.Int("requested", r.RequestedPercent),
			zap.Int("applied", r.AllowancePercent),
		)
	}
	if r.BelowMinimumWage {
		h.logger.Warn("base salary below minimum wage",
			zap.String("op", "server.salary"),
			zap.String("requestId", requestID(ctx)),
			zap.String("base", r.Base.String()),
			zap.String("minimumWage", r.MinimumWage.String()),
		)
	}
	return r, nil
}

func (h *handler) incomeTax(_ context.Context, req incomeTaxRequest) (any, error) {
	return h.engine.IncomeTax(req.Income)
}

func (h *handler) contributions(_ context.Context, req contributionsRequest) (any, error) {
	return h.engine.Contributions(req.Monthly)
}

func (h *handler) vat(_ context.Context, req vatRequest) (any, error) {
	return h.engine.VAT(req.Amount, req.Rate)
}

func (h *handler) transport(_ context.Context, req transportRequest) (any, error) {
	return h.engine.TransportTax(req.Category, req.Horsepower)
}

// calculation adapts a typed calculator call into a POST endpoint that
// decodes the request body, runs the calculator and returns both the result
// and its text report.
func calculation[Req any](h *handler, kind string, run func(context.Context, Req) (any, error)) http.Handler {
	op := "server." + kind
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var req Req
		if status, err := h.decode(w, r, &req); err != nil {
			h.metrics.Calculations.WithLabelValues(kind, "invalid").Inc()
			h.respondErrorWithOp(w, r, status, errorResponse{Error: err.Error()}, op)
			return
		}

		result, err := run(r.Context(), req)
		if err != nil {
			h.respondCalculationError(w, r, kind, err, op)
			return
		}

		h.respond(w, r, kind, result, op)
	})
}

func (h *handler) reference(build func() any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h.respond(w, r, "reference", build(), "server.reference")
	})
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, kind string, result any, op string) {
	var report bytes.Buffer
	if err := output.PrettyFormat(&report, result, output.Options{Schedule: true}); err != nil {
		h.metrics.Calculations.WithLabelValues(kind, "error").Inc()
		h.respondErrorWithOp(w, r, http.StatusInternalServerError,
			errorResponse{Error: fmt.Sprintf("failed to render report: %v", err)}, op)
		return
	}

	h.metrics.Calculations.WithLabelValues(kind, "ok").Inc()
	h.logger.Debug("calculation completed",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
	)
	h.writeJSON(w, http.StatusOK, calculationResponse{
		RequestID: requestID(r.Context()),
		Result:    result,
		Report:    report.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err)
	}
	return 0, nil
}

func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, kind string, err error, op string) {
	var inputErr *calc.InputError
	if errors.As(err, &inputErr) && (errors.Is(err, calc.ErrUnknownKey) || errors.Is(err, calc.ErrOutOfRange)) {
		h.metrics.Calculations.WithLabelValues(kind, "invalid").Inc()
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error: inputErr.Error(),
			Field: inputErr.Field,
			Hint:  inputErr.Hint,
		}, op)
		return
	}

	h.metrics.Calculations.WithLabelValues(kind, "error").Inc()
	h.respondErrorWithOp(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()}, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, resp errorResponse, op string) {
	resp.RequestID = requestID(r.Context())
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("requestId", resp.RequestID),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}
	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// instrument assigns a request ID and records latency and in-flight gauges.
func (h *handler) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.metrics.InFlight.Inc()
		defer func() {
			h.metrics.InFlight.Dec()
			h.metrics.ReqDur.WithLabelValues(r.Method, route).Observe(durationMillis(time.Since(start)))
		}()

		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
