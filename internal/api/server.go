package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// Analyzer runs one analysis. *analysis.Service implements it.
type Analyzer interface {
	RunWindow(ctx context.Context, symbol string, window analysis.Window) (*analysis.Report, error)
}

// Server is the HTTP JSON adapter over the analysis service.
// It formats results only; every request runs a fresh analysis.
type Server struct {
	service    Analyzer
	metrics    *metrics.Metrics
	logger     *logger.Logger
	httpServer *http.Server
	listener   net.Listener
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code  errors.ErrorCode `json:"code"`
	Error string           `json:"error"`
	Hint  string           `json:"hint,omitempty"`
}

// NewServer creates a server. A nil metrics disables /metrics.
func NewServer(service Analyzer, m *metrics.Metrics, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		service: service,
		metrics: m,
		logger:  log.Named("api"),
	}
}

// Router returns the routes of the server.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/v1/signals/{symbol}", s.handleSignals).Methods("GET")

	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	return s.observe(router)
}

// Start listens on address and serves in the background.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("HTTP server started", zap.String("address", s.Address()))

	return nil
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	window, err := analysis.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	report, err := s.service.RunWindow(r.Context(), symbol, window)
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, hint := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, ErrorResponse{
		Code:  errors.GetCode(err),
		Error: err.Error(),
		Hint:  hint,
	})
}

// StatusFor maps an analysis error to its HTTP status and a remediation hint.
func StatusFor(err error) (int, string) {
	switch {
	case errors.IsInsufficientDataError(err):
		return http.StatusUnprocessableEntity, "the provider returned fewer daily bars than the indicators need; request a longer history"
	case errors.IsMalformedSeriesError(err):
		return http.StatusUnprocessableEntity, "the provider series has unordered, duplicate or invalid rows"
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeMarketDataFetchFailed:
		return http.StatusBadGateway, "check the API key, the symbol and the provider rate limits"
	case errors.ErrCodeInvalidParameter, errors.ErrCodeMissingParameter:
		return http.StatusBadRequest, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// unmatchedRoute labels requests no route template matched.
const unmatchedRoute = "unmatched"

// observe counts every request by route template and status.
// Requests that match no route share one label so raw paths never become label values.
func (s *Server) observe(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := unmatchedRoute

		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			if template, err := match.Route.GetPathTemplate(); err == nil {
				route = template
			}
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		router.ServeHTTP(recorder, r)

		s.metrics.ObserveHTTPRequest(route, recorder.status)
	})
}
