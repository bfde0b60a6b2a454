// Package metrics provides Prometheus instrumentation for pack lookups.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution labels used on fetch_resolutions_total.
const (
	ResolutionApplied    = "applied"
	ResolutionFailed     = "failed"
	ResolutionSuperseded = "superseded"
)

// Recorder holds the lookup collectors registered on one registry.
type Recorder struct {
	FetchesStarted   prometheus.Counter
	FetchResolutions *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		FetchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fetches_started_total",
			Help: "Total number of pack lookups issued",
		}),
		FetchResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_resolutions_total",
				Help: "Total number of pack lookups resolved, by resolution",
			},
			[]string{"resolution"},
		),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Pack lookup duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	if reg != nil {
		reg.MustRegister(r.FetchesStarted, r.FetchResolutions, r.FetchDuration)
	}
	return r
}

// RecordStarted counts an issued lookup.
func (r *Recorder) RecordStarted() {
	if r == nil {
		return
	}
	r.FetchesStarted.Inc()
}

// RecordResolution counts how a lookup was reconciled and how long it took.
func (r *Recorder) RecordResolution(resolution string, duration time.Duration) {
	if r == nil {
		return
	}
	r.FetchResolutions.WithLabelValues(resolution).Inc()
	r.FetchDuration.Observe(duration.Seconds())
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
