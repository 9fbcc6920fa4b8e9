// Package api serves indicator, signal and analysis computations over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/leaps/internal/analysis"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/internal/series"
	"github.com/rxtech-lab/leaps/internal/signal"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"go.uber.org/zap"
)

// maxBodyBytes bounds a request body. 32 MiB holds several hundred thousand bars.
const maxBodyBytes = 32 << 20

// Server exposes the computations over HTTP.
type Server struct {
	router     *mux.Router
	registry   indicator.IndicatorRegistry
	analyzer   *analysis.Analyzer
	metrics    *Metrics
	validate   *validator.Validate
	logger     *logger.Logger

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer builds the router. Metrics are registered on a registry owned by the server.
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	promRegistry := prometheus.NewRegistry()

	s := &Server{
		router:   mux.NewRouter(),
		registry: indicator.NewDefaultRegistry(),
		analyzer: analysis.NewAnalyzer(nil, log),
		metrics:  NewMetrics(promRegistry),
		validate: validator.New(),
		logger:   log,
	}

	s.router.Use(s.instrument)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/indicators", s.handleIndicators).Methods(http.MethodPost)
	v1.HandleFunc("/signals", s.handleSignals).Methods(http.MethodPost)
	v1.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info("API server listening", zap.String("addr", addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	return httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	req, window, ok := s.decode(w, r)
	if !ok {
		return
	}

	indicators, err := config.BuildIndicators(s.registry, req.Indicators, window)
	if err != nil {
		s.writeError(w, err)

		return
	}

	bars := types.Series(req.Bars)
	if err := series.CheckOrder(bars); err != nil {
		s.writeError(w, err)

		return
	}

	start := time.Now()
	set, err := indicator.NewEngine(indicators...).Compute(series.Validate(bars))
	s.observe(r, start)

	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, newIndicatorResponse(set))
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	req, window, ok := s.decode(w, r)
	if !ok {
		return
	}

	bars := types.Series(req.Bars)
	if err := series.CheckOrder(bars); err != nil {
		s.writeError(w, err)

		return
	}

	generator, err := signal.NewBreakoutGenerator(window)
	if err != nil {
		s.writeError(w, err)

		return
	}

	start := time.Now()
	signals, err := generator.Generate(series.Validate(bars))
	s.observe(r, start)

	if err != nil {
		s.writeError(w, err)

		return
	}

	s.countSignals(signals)
	writeJSON(w, http.StatusOK, SignalResponse{Window: window, Signals: signals})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, window, ok := s.decode(w, r)
	if !ok {
		return
	}

	indicators, err := config.BuildIndicators(s.registry, req.Indicators, window)
	if err != nil {
		s.writeError(w, err)

		return
	}

	start := time.Now()
	result, err := s.analyzer.AnalyzeSeries(types.Series(req.Bars), analysis.Request{
		Symbol:     req.Symbol,
		Window:     window,
		Indicators: indicators,
	})
	s.observe(r, start)

	if err != nil {
		s.writeError(w, err)

		return
	}

	s.countSignals(result.Signals)
	writeJSON(w, http.StatusOK, newAnalyzeResponse(result, window))
}

// decode parses and validates the request body and resolves the signal window.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (ComputeRequest, int, bool) {
	var req ComputeRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err))

		return req, 0, false
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request", err))

		return req, 0, false
	}

	window, err := req.Signal.ResolveWindow()
	if err != nil {
		s.writeError(w, err)

		return req, 0, false
	}

	return req, window, true
}

func (s *Server) observe(r *http.Request, start time.Time) {
	s.metrics.ComputeDuration.WithLabelValues(routeName(r)).Observe(time.Since(start).Seconds())
}

func (s *Server) countSignals(signals []types.SignalEvent) {
	for _, event := range signals {
		s.metrics.SignalsTotal.WithLabelValues(string(event.Kind)).Inc()
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.Error(err))
	}

	writeJSON(w, status, ErrorResponse{Code: int(code), Category: string(code.Category()), Message: err.Error()})
}

// statusForCode maps validation codes to 400 and everything else to 500.
func statusForCode(code errors.ErrorCode) int {
	switch {
	case code.Category() == errors.CategoryValidation:
		return http.StatusBadRequest
	case code == errors.ErrCodeIndicatorNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// instrument counts every request by route template and status code.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RequestsTotal.WithLabelValues(routeName(r), strconv.Itoa(recorder.status)).Inc()
	})
}

func routeName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}

	template, err := route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}

	return template
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
