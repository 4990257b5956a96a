package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Metrics holds the Prometheus collectors of the analysis service and HTTP adapter.
// All methods are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// AnalysesTotal counts successful runs by symbol and last signal
	AnalysesTotal *prometheus.CounterVec
	// AnalysisErrorsTotal counts failed runs by error code
	AnalysisErrorsTotal *prometheus.CounterVec
	// AnalysisDuration observes fetch plus analysis time
	AnalysisDuration prometheus.Histogram
	// HTTPRequestsTotal counts API requests by route and status code
	HTTPRequestsTotal *prometheus.CounterVec
}

// New registers and returns all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_signal_analyses_total",
			Help: "Total successful analyses by symbol and latest signal",
		}, []string{"symbol", "signal"}),
		AnalysisErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_signal_analysis_errors_total",
			Help: "Total failed analyses by error code",
		}, []string{"code"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_signal_analysis_duration_seconds",
			Help:    "Time spent fetching and analyzing one symbol",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_signal_http_requests_total",
			Help: "Total HTTP requests by route and status",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.AnalysesTotal,
		m.AnalysisErrorsTotal,
		m.AnalysisDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

// ObserveAnalysis records a successful run.
func (m *Metrics) ObserveAnalysis(symbol string, signal types.SignalType, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.AnalysesTotal.WithLabelValues(symbol, string(signal)).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

// ObserveError records a failed run under the code of err.
func (m *Metrics) ObserveError(err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.AnalysisErrorsTotal.WithLabelValues(strconv.Itoa(int(errors.GetCode(err)))).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(route string, status int) {
	if m == nil {
		return
	}

	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
