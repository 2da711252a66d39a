package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "station"

// prometheusMetrics exposes the station runtime metrics on its own registry
type prometheusMetrics struct {
	registry *prometheus.Registry

	fieldValues    *prometheus.GaugeVec
	metricFaults   *prometheus.GaugeVec
	stationFaulted prometheus.Gauge
	ticks          prometheus.Counter
	tickDuration   prometheus.Histogram
	reportsSent    prometheus.Counter
	reportsFailed  prometheus.Counter
	reportsDropped prometheus.Counter

	mutFields     sync.Mutex
	exposedFields map[string]struct{}
}

// NewPrometheusMetrics creates the station collectors and registers them on a new registry
func NewPrometheusMetrics(stationID string) *prometheusMetrics {
	constLabels := prometheus.Labels{"station": stationID}

	m := &prometheusMetrics{
		registry:      prometheus.NewRegistry(),
		exposedFields: make(map[string]struct{}),
		fieldValues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "field_value",
			Help:        "Current value of every snapshot field.",
			ConstLabels: constLabels,
		}, []string{"field"}),
		metricFaults: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "metric_faulted",
			Help:        "Fault bit of every metric aggregator, 1 when faulted.",
			ConstLabels: constLabels,
		}, []string{"metric"}),
		stationFaulted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "faulted",
			Help:        "Station health flag, 1 when at least one metric is faulted.",
			ConstLabels: constLabels,
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ticks_total",
			Help:        "Total sampling ticks processed.",
			ConstLabels: constLabels,
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "tick_duration_seconds",
			Help:        "Time spent updating the aggregators and building the snapshot on a tick.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		reportsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reports_sent_total",
			Help:        "Snapshots accepted by the reporter.",
			ConstLabels: constLabels,
		}),
		reportsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reports_failed_total",
			Help:        "Snapshots the reporter failed to deliver.",
			ConstLabels: constLabels,
		}),
		reportsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reports_dropped_total",
			Help:        "Snapshots discarded because the report buffer was full.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		m.fieldValues,
		m.metricFaults,
		m.stationFaulted,
		m.ticks,
		m.tickDuration,
		m.reportsSent,
		m.reportsFailed,
		m.reportsDropped,
	)

	return m
}

// ObserveTick records one processed tick
func (m *prometheusMetrics) ObserveTick(duration time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(duration.Seconds())
}

// SetSnapshot updates the field and fault gauges. Fields missing from the snapshot are removed
func (m *prometheusMetrics) SetSnapshot(snapshot common.StationSnapshot, faults map[string]bool) {
	m.mutFields.Lock()
	current := make(map[string]struct{}, len(snapshot.Fields))
	for _, f := range snapshot.Fields {
		m.fieldValues.WithLabelValues(f.Name).Set(f.Value)
		current[f.Name] = struct{}{}
	}
	for name := range m.exposedFields {
		if _, found := current[name]; !found {
			m.fieldValues.DeleteLabelValues(name)
		}
	}
	m.exposedFields = current
	m.mutFields.Unlock()

	for name, faulted := range faults {
		m.metricFaults.WithLabelValues(name).Set(boolToFloat(faulted))
	}
	m.stationFaulted.Set(boolToFloat(snapshot.Faulted))
}

// IncReportsSent increments the sent reports counter
func (m *prometheusMetrics) IncReportsSent() {
	m.reportsSent.Inc()
}

// IncReportsFailed increments the failed reports counter
func (m *prometheusMetrics) IncReportsFailed() {
	m.reportsFailed.Inc()
}

// IncReportsDropped increments the dropped reports counter
func (m *prometheusMetrics) IncReportsDropped() {
	m.reportsDropped.Inc()
}

// Handler returns the HTTP handler serving the registry in the Prometheus text format
func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IsInterfaceNil returns true if the value under the interface is nil
func (m *prometheusMetrics) IsInterfaceNil() bool {
	return m == nil
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}

	return 0
}
