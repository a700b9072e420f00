// Package metrics exposes analysis and keyword source activity to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"keywordlab/internal/models"
)

var (
	analysisRunsDesc = prometheus.NewDesc(
		"keywordlab_analysis_runs_total",
		"Total analysis runs by outcome",
		[]string{"outcome"},
		nil,
	)
	sourceFetchesDesc = prometheus.NewDesc(
		"keywordlab_source_fetches_total",
		"Total keyword source fetches by provider and outcome",
		[]string{"provider", "outcome"},
		nil,
	)
	analysisSecondsDesc = prometheus.NewDesc(
		"keywordlab_analysis_run_seconds_total",
		"Cumulative wall time spent in analysis runs",
		nil,
		nil,
	)
	viewsActiveDesc = prometheus.NewDesc(
		"keywordlab_views_active",
		"Number of live analysis views",
		nil,
		nil,
	)
)

type fetchKey struct {
	provider models.ProviderID
	outcome  string
}

// Recorder keeps the in-memory counters behind the collector.
type Recorder struct {
	mu         sync.Mutex
	runs       map[string]uint64
	runSeconds float64
	fetches    map[fetchKey]uint64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		runs:    make(map[string]uint64),
		fetches: make(map[fetchKey]uint64),
	}
}

// RecordRun counts one finished analysis run.
func (r *Recorder) RecordRun(outcome string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[outcome]++
	r.runSeconds += elapsed.Seconds()
}

// RecordFetch counts one provider fetch.
func (r *Recorder) RecordFetch(provider models.ProviderID, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[fetchKey{provider, outcome}]++
}

// Collector is a custom Prometheus collector that reads the recorder counters
// and the live view count on each scrape.
type Collector struct {
	rec   *Recorder
	views func() int
}

// NewCollector creates a collector over rec. views may be nil.
func NewCollector(rec *Recorder, views func() int) *Collector {
	return &Collector{rec: rec, views: views}
}

// Describe sends the metric descriptors to the channel.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- analysisRunsDesc
	ch <- sourceFetchesDesc
	ch <- analysisSecondsDesc
	ch <- viewsActiveDesc
}

// Collect emits a snapshot of the counters.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.rec.mu.Lock()
	for outcome, n := range c.rec.runs {
		ch <- prometheus.MustNewConstMetric(analysisRunsDesc, prometheus.CounterValue, float64(n), outcome)
	}
	for k, n := range c.rec.fetches {
		ch <- prometheus.MustNewConstMetric(sourceFetchesDesc, prometheus.CounterValue, float64(n), string(k.provider), k.outcome)
	}
	ch <- prometheus.MustNewConstMetric(analysisSecondsDesc, prometheus.CounterValue, c.rec.runSeconds)
	c.rec.mu.Unlock()

	if c.views != nil {
		ch <- prometheus.MustNewConstMetric(viewsActiveDesc, prometheus.GaugeValue, float64(c.views()))
	}
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the collector with the default registry and initializes the recorder.
// Must be called once at startup.
func Init(views func() int) {
	recorderOnce.Do(func() {
		recorder = NewRecorder()
		prometheus.MustRegister(NewCollector(recorder, views))
	})
}

// RecordRun records an analysis run outcome. No-op before Init.
func RecordRun(outcome string, elapsed time.Duration) {
	if recorder == nil {
		return
	}
	recorder.RecordRun(outcome, elapsed)
}

// RecordFetch records a provider fetch outcome. No-op before Init.
func RecordFetch(provider models.ProviderID, outcome string) {
	if recorder == nil {
		return
	}
	recorder.RecordFetch(provider, outcome)
}
