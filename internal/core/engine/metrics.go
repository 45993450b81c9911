package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/colonyops/herald/internal/core/toasts"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "herald").
	Namespace string

	// Registry is where the metrics are registered. Nil leaves them
	// unregistered, which suits tests and embedding without an exporter.
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics records engine activity. A nil *Metrics records nothing.
type Metrics struct {
	shown         *prometheus.CounterVec
	removed       *prometheus.CounterVec
	active        prometheus.Gauge
	confirms      *prometheus.CounterVec
	dialogsOpened prometheus.Counter
	dialogsClosed prometheus.Counter
	dialogsOpen   prometheus.Gauge
	deliveries    *prometheus.CounterVec
}

// NewMetrics creates the engine collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{Namespace: "herald"}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "notifications_shown_total",
			Help:      "Total number of toast notifications shown",
		}, []string{"type"}),

		removed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "notifications_removed_total",
			Help:      "Total number of toast notifications removed",
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "notifications_active",
			Help:      "Number of live toast notifications",
		}),

		confirms: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "confirms_total",
			Help:      "Total number of confirmations by outcome",
		}, []string{"result"}),

		dialogsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "dialogs_opened_total",
			Help:      "Total number of dialogs opened",
		}),

		dialogsClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "dialogs_closed_total",
			Help:      "Total number of dialogs closed",
		}),

		dialogsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "dialogs_open",
			Help:      "Number of open dialogs",
		}),

		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "log_deliveries_total",
			Help:      "Total number of notification log deliveries by sink and status",
		}, []string{"sink", "status"}),
	}
}

func (m *Metrics) notificationShown(typ string) {
	if m == nil {
		return
	}
	m.shown.WithLabelValues(typ).Inc()
}

func (m *Metrics) notificationRemoved(reason toasts.Reason) {
	if m == nil {
		return
	}
	m.removed.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) confirmed(result string) {
	if m == nil {
		return
	}
	m.confirms.WithLabelValues(result).Inc()
}

func (m *Metrics) dialogOpened() {
	if m == nil {
		return
	}
	m.dialogsOpened.Inc()
}

func (m *Metrics) dialogClosed() {
	if m == nil {
		return
	}
	m.dialogsClosed.Inc()
}

func (m *Metrics) delivered(sink string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.deliveries.WithLabelValues(sink, status).Inc()
}

func (m *Metrics) observe(s State) {
	if m == nil {
		return
	}
	m.active.Set(float64(len(s.Notifications)))
	m.dialogsOpen.Set(float64(len(s.Dialogs)))
}
