package statelessauth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/auth0/go-stateless-auth/core"
)

// Authentication outcomes reported to Metrics and recorded on spans.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeAnonymous     = "anonymous"
	OutcomeFailed        = "failed"
	OutcomeIssued        = "issued"
)

// Operations whose latency is observed.
const (
	OperationRetrieve = "retrieve"
	OperationAdd      = "add"
)

// Metrics is the metrics interface for the middleware and the success
// handler.
type Metrics interface {
	IncTokensIssued()
	IncAuthentications(outcome string)
	ObserveLatency(operation string, d time.Duration)
}

// NoopMetrics is a default metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) IncTokensIssued()                     {}
func (NoopMetrics) IncAuthentications(string)            {}
func (NoopMetrics) ObserveLatency(string, time.Duration) {}

// PrometheusMetrics implements the Metrics interface using Prometheus.
type PrometheusMetrics struct {
	tokensIssued    prometheus.Counter
	authentications *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors under namespace and registers
// them with registerer, prometheus.DefaultRegisterer when nil. Registration
// happens here, once; a conflict is a configuration error.
func NewPrometheusMetrics(registerer prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Number of tokens added to responses.",
		}),
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authentications_total",
			Help:      "Number of requests authenticated, by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent adding and retrieving tokens.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.tokensIssued, m.authentications, m.latency} {
		if err := registerer.Register(c); err != nil {
			return nil, core.NewError(core.KindConfiguration, "could not register metrics", err)
		}
	}

	return m, nil
}

func (m *PrometheusMetrics) IncTokensIssued() {
	m.tokensIssued.Inc()
}

func (m *PrometheusMetrics) IncAuthentications(outcome string) {
	m.authentications.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) ObserveLatency(operation string, d time.Duration) {
	m.latency.WithLabelValues(operation).Observe(d.Seconds())
}
