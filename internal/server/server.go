// Package server exposes the amortization and borrowing-capacity engine as
// a JSON API for UI callers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/iwvelando/loan-planner/internal/cache"
	"github.com/iwvelando/loan-planner/internal/report"
	"github.com/iwvelando/loan-planner/pkg/amortization"
	"github.com/iwvelando/loan-planner/pkg/capacity"
	"github.com/iwvelando/loan-planner/pkg/rates"
	"github.com/iwvelando/loan-planner/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger          *zap.Logger
	generator       *amortization.ScheduleGenerator
	estimator       *capacity.Estimator
	cache           cache.Cache
	rateSource      rates.Source
	maxRequestBytes int64
}

// NewHandler constructs the HTTP handler serving the engine API. The rate
// limiter is owned by the caller so its cleanup goroutine can be stopped on
// shutdown; rateSource may be nil when no rate table is configured.
func NewHandler(logger *zap.Logger, cfg *Config, responseCache cache.Cache, rateSource rates.Source, limiter *RateLimiter) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		logger:          logger,
		generator:       amortization.NewScheduleGenerator(logger),
		estimator:       capacity.NewEstimator(logger),
		cache:           responseCache,
		rateSource:      rateSource,
		maxRequestBytes: cfg.MaxRequestBytes,
	}

	r := mux.NewRouter()
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.HandleFunc("/api/amortization", h.handleAmortization).Methods("POST")
	r.HandleFunc("/api/capacity", h.handleCapacity).Methods("POST")
	r.HandleFunc("/api/rates", h.handleRates).Methods("GET")

	return r
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	var params amortization.LoanParameters
	if !h.decodeRequest(w, r, &params, "server.handleAmortization") {
		return
	}

	key := amortizationCacheKey(params)
	if h.cache != nil {
		if cached, ok := h.cache.Get(r.Context(), key); ok {
			h.logger.Debug("serving amortization response from cache",
				zap.String("op", "server.handleAmortization"),
				zap.String("key", key),
			)
			writeRawJSON(w, http.StatusOK, []byte(cached))
			return
		}
	}

	schedule, err := h.generator.ComputeSchedule(params)
	if err != nil {
		h.respondComputeError(w, err, "server.handleAmortization")
		return
	}

	result := report.BuildAmortization(params, schedule)
	payload, err := json.Marshal(result)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to encode response: %v", err), "server.handleAmortization")
		return
	}

	if h.cache != nil {
		if cacheErr := h.cache.Set(r.Context(), key, string(payload)); cacheErr != nil {
			h.logger.Warn("failed to cache amortization response",
				zap.String("op", "server.handleAmortization"),
				zap.Error(cacheErr),
			)
		}
	}

	writeRawJSON(w, http.StatusOK, payload)
}

func (h *handler) handleCapacity(w http.ResponseWriter, r *http.Request) {
	var input capacity.Input
	if !h.decodeRequest(w, r, &input, "server.handleCapacity") {
		return
	}

	result, err := h.estimator.Estimate(input)
	if err != nil {
		h.respondComputeError(w, err, "server.handleCapacity")
		return
	}

	h.writeJSON(w, http.StatusOK, report.BuildCapacity(result))
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	if h.rateSource == nil {
		h.respondError(w, http.StatusNotFound, "no rate source configured", "server.handleRates")
		return
	}

	years, err := strconv.Atoi(r.URL.Query().Get("durationYears"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "durationYears must be an integer", "server.handleRates")
		return
	}

	quote, err := h.rateSource.CurrentRate(years)
	if err != nil {
		h.respondComputeError(w, err, "server.handleRates")
		return
	}

	h.writeJSON(w, http.StatusOK, quote)
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if h.maxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestBytes), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

// respondComputeError maps engine errors onto HTTP statuses: validation
// failures are client errors with a structured body, anything else is a 500.
func (h *handler) respondComputeError(w http.ResponseWriter, err error, op string) {
	var paramErr *validation.ParameterError
	if errors.As(err, &paramErr) {
		h.logger.Error("request failed validation",
			zap.String("op", op),
			zap.String("param", paramErr.Param),
			zap.String("constraint", paramErr.Constraint),
		)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      paramErr.Error(),
			"param":      paramErr.Param,
			"constraint": paramErr.Constraint,
		})
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// amortizationCacheKey builds the canonical memoization key for a parameter
// tuple. %g keeps the key stable across trailing-zero representations.
func amortizationCacheKey(params amortization.LoanParameters) string {
	return fmt.Sprintf("amortization:%g:%g:%d:%d:%g",
		params.Principal,
		params.AnnualRatePercent,
		params.DurationYears,
		params.DeferredMonths,
		params.InsuranceRatePercent,
	)
}
