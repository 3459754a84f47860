package telemetry

import (
	"io"
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/sghaida/graphioc/di"
)

// Metrics is a di.Observer backed by prometheus collectors.
type Metrics struct {
	// Per-node metrics
	resolutions *prometheus.CounterVec

	// Per-request metrics
	requests        *prometheus.CounterVec
	failures        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ di.Observer = (*Metrics)(nil)

// NewMetrics creates the collectors under namespace and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of resolved graph nodes",
			},
			[]string{"kind", "strategy"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of top-level resolution requests",
			},
			[]string{"status"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of failed requests by error kind",
			},
			[]string{"error"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of top-level resolution requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"status"},
		),
	}

	for _, c := range []prometheus.Collector{m.resolutions, m.requests, m.failures, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveResolution implements di.Observer.
func (m *Metrics) ObserveResolution(d di.Descriptor, s di.Strategy) {
	m.resolutions.WithLabelValues(d.Kind.String(), s.String()).Inc()
}

// ObserveRequest implements di.Observer.
func (m *Metrics) ObserveRequest(_ reflect.Type, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		m.failures.WithLabelValues(di.ErrorKind(err)).Inc()
	}
	m.requests.WithLabelValues(status).Inc()
	m.requestDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// WriteText renders everything g gathers in the prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
