package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	pairsProcessed *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	rowsWritten    *prometheus.CounterVec
	lastClose      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pairsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlepull_pairs_processed_total",
				Help: "Pairs processed end-to-end without failure",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlepull_errors_total",
				Help: "Per-pair pipeline failures by kind",
			},
			[]string{"kind"},
		),
		rowsWritten: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlepull_rows_written_total",
				Help: "Feature rows written per sink",
			},
			[]string{"sink", "symbol"},
		),
		lastClose: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "candlepull_last_close",
				Help: "Most recent close price per symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "candlepull_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPairProcessed counts a pair that completed the full pipeline.
func (r *Recorder) RecordPairProcessed(symbol string) {
	r.pairsProcessed.WithLabelValues(symbol).Inc()
}

// RecordError counts a failure by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRowsWritten counts rows persisted by a sink.
func (r *Recorder) RecordRowsWritten(sink, symbol string, n int) {
	r.rowsWritten.WithLabelValues(sink, symbol).Add(float64(n))
}

// RecordLastClose records the newest close price for a symbol.
func (r *Recorder) RecordLastClose(symbol string, price float64) {
	r.lastClose.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
