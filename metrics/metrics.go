// Package metrics exports Prometheus counters for resolutions and downloads.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/truemediaorg/postgrab/model"
)

const namespace = "postgrab"

// Label values
const (
	ModeDemo   = "demo"
	ModeRemote = "remote"

	ResultOK             = "ok"
	ResultNoURL          = "no_url"
	ResultResolveError   = "resolve_error"
	ResultNormalizeError = "normalize_error"

	OutcomeSaved  = "saved"
	OutcomeFailed = "failed"
)

type Metrics struct {
	Resolutions   *prometheus.CounterVec
	Assets        *prometheus.CounterVec
	Batches       *prometheus.CounterVec
	BatchDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers all collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to stay independent of the global registry.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Post resolutions by resolver mode and result.",
		}, []string{"mode", "result"}),
		Assets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_total",
			Help:      "Asset download attempts by media kind and outcome.",
		}, []string{"kind", "outcome"}),
		Batches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Finished batch downloads by final status.",
		}, []string{"status"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a batch download including throttle pauses.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveResolution(demo bool, result string) {
	mode := ModeRemote
	if demo {
		mode = ModeDemo
	}
	m.Resolutions.WithLabelValues(mode, result).Inc()
}

func (m *Metrics) ObserveAsset(outcome model.AssetOutcome) {
	result := OutcomeFailed
	if outcome.Succeeded {
		result = OutcomeSaved
	}
	m.Assets.WithLabelValues(string(outcome.Kind), result).Inc()
}

func (m *Metrics) ObserveBatch(batch model.BatchOutcome, seconds float64) {
	m.Batches.WithLabelValues(string(batch.Status)).Inc()
	m.BatchDuration.Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
