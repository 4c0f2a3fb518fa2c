package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal      *prometheus.CounterVec
	fetchLatency    *prometheus.HistogramVec
	aggregations    *prometheus.CounterVec
	aggLatency      *prometheus.HistogramVec
	bucketsPerQuery prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	upstreamStatus  *prometheus.CounterVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentimentdash_feed_fetches_total",
				Help: "Total number of prediction feed fetches",
			},
			[]string{"source", "result"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentimentdash_feed_fetch_duration_seconds",
				Help:    "Duration of prediction feed fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		aggregations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentimentdash_aggregations_total",
				Help: "Total number of grouped aggregations",
			},
			[]string{"interval", "result"},
		),
		aggLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentimentdash_aggregation_duration_seconds",
				Help:    "Duration of grouped aggregations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"interval"},
		),
		bucketsPerQuery: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sentimentdash_aggregation_buckets",
				Help:    "Number of buckets per grouped aggregation",
				Buckets: []float64{1, 2, 5, 7, 14, 31, 62, 93, 186, 366},
			},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentimentdash_feed_cache_lookups_total",
				Help: "Feed cache lookups by result",
			},
			[]string{"result"},
		),
		upstreamStatus: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentimentdash_upstream_errors_total",
				Help: "Non-success answers from the prediction feed by status code",
			},
			[]string{"code"},
		),
	}
}

// RecordFetch records one feed fetch.
func (r *Recorder) RecordFetch(source string, seconds float64, err error) {
	r.fetchTotal.WithLabelValues(source, result(err)).Inc()
	r.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordAggregation records one grouped aggregation.
func (r *Recorder) RecordAggregation(interval string, buckets int, seconds float64, err error) {
	r.aggregations.WithLabelValues(interval, result(err)).Inc()
	r.aggLatency.WithLabelValues(interval).Observe(seconds)
	r.bucketsPerQuery.Observe(float64(buckets))
}

// RecordCache records a cache hit or miss.
func (r *Recorder) RecordCache(hit bool) {
	if hit {
		r.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// RecordUpstreamStatus counts a non-success status from the feed.
func (r *Recorder) RecordUpstreamStatus(status int) {
	r.upstreamStatus.WithLabelValues(strconv.Itoa(status)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
