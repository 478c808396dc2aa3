package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	observations *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	records      *prometheus.CounterVec
	lastRisk     prometheus.Gauge
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg. Collectors that are
// already registered are reused, so calling it twice on one registry is safe.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		observations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskfill_observations_fetched_total",
				Help: "Observations retrieved per FRED series",
			},
			[]string{"series"},
		),
		fetchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskfill_fetch_duration_seconds",
				Help:    "Duration of a single series retrieval",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"series"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskfill_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskfill_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskfill_records_written_total",
				Help: "Daily risk records delivered per sink",
			},
			[]string{"sink"},
		),
		lastRisk: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "riskfill_last_risk_score",
				Help: "Risk score of the most recent day in the last build",
			},
		),
	}

	r.observations = register(reg, r.observations)
	r.fetchLatency = register(reg, r.fetchLatency)
	r.errorsTotal = register(reg, r.errorsTotal)
	r.latency = register(reg, r.latency)
	r.records = register(reg, r.records)
	r.lastRisk = register(reg, r.lastRisk)
	return r
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RecordFetch records one series retrieval.
func (r *Recorder) RecordFetch(series string, observations int, seconds float64) {
	r.observations.WithLabelValues(series).Add(float64(observations))
	r.fetchLatency.WithLabelValues(series).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordRecords records records delivered to a sink.
func (r *Recorder) RecordRecords(sink string, n int) {
	r.records.WithLabelValues(sink).Add(float64(n))
}

// RecordLastRisk records the latest daily score.
func (r *Recorder) RecordLastRisk(value float64) {
	r.lastRisk.Set(value)
}
