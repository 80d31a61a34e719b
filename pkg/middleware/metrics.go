package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toastify").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for message duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "toastify",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics. It implements toast.Observer.
type Metrics struct {
	messagesTotal   *prometheus.CounterVec
	messageDuration *prometheus.HistogramVec
	toastsShown     *prometheus.CounterVec
	toastsClosed    *prometheus.CounterVec
	toastsActive    prometheus.Gauge
	sessionsActive  prometheus.Gauge
	rendersTotal    prometheus.Counter
	wsErrors        *prometheus.CounterVec
}

var _ toast.Observer = (*Metrics)(nil)

// NewMetrics registers the collector's metrics.
// Registering twice on the same registry panics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		messagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_total",
			Help:        "Total number of client messages handled",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		messageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "message_duration_seconds",
			Help:        "Client message handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		toastsShown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_shown_total",
			Help:        "Total number of toasts shown",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		toastsClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_closed_total",
			Help:        "Total number of toasts closed by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		toastsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_active",
			Help:        "Number of toasts currently shown",
			ConstLabels: config.ConstLabels,
		}),

		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_active",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render messages sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Middleware records the count and duration of every message.
func (m *Metrics) Middleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) error {
			typ := string(call.Message.Type)
			start := time.Now()
			err := next(ctx, call)
			m.messageDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = errorStatus(err)
			}
			m.messagesTotal.WithLabelValues(typ, status).Inc()
			return err
		}
	}
}

// errorStatus keeps label cardinality bounded: coded errors report their
// code, everything else is "error".
func errorStatus(err error) string {
	if te := errors.FromError(err, ""); te != nil && te.Code != "" {
		return te.Code
	}
	return "error"
}

// Shown implements toast.Observer.
func (m *Metrics) Shown(t *toast.Toast) {
	m.toastsShown.WithLabelValues(string(t.Type())).Inc()
	m.toastsActive.Inc()
}

// Closing implements toast.Observer.
func (m *Metrics) Closing(_ *toast.Toast, reason toast.CloseReason) {
	m.toastsClosed.WithLabelValues(string(reason)).Inc()
}

// Detached implements toast.Observer. Toasts closed before their entry
// frame never counted as active.
func (m *Metrics) Detached(t *toast.Toast) {
	if t.Shown() {
		m.toastsActive.Dec()
	}
}

// SessionOpened records a new session.
func (m *Metrics) SessionOpened() { m.sessionsActive.Inc() }

// SessionClosed records a session ending.
func (m *Metrics) SessionClosed() { m.sessionsActive.Dec() }

// RecordRender records a render message sent.
func (m *Metrics) RecordRender() { m.rendersTotal.Inc() }

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
