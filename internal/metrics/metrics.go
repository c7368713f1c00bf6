// Package metrics exposes Prometheus counters for settlement runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/settleup/internal/calculator"
)

// Recorder counts reconciliation activity.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	instructions  prometheus.Counter
	imbalanced    prometheus.Counter
	unsettled     *prometheus.CounterVec
	rejectedLines prometheus.Counter
	participants  prometheus.Histogram
}

// New creates a Recorder registered on its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "runs_total",
			Help:      "Settlement runs by entry point.",
		}, []string{"source"}),
		instructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "instructions_total",
			Help:      "Payment instructions emitted.",
		}),
		imbalanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "imbalanced_runs_total",
			Help:      "Runs whose balances did not sum to zero.",
		}),
		unsettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "unsettled_parties_total",
			Help:      "Parties left with a residual after a run.",
		}, []string{"role"}),
		rejectedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "rejected_lines_total",
			Help:      "Input lines skipped during ingestion.",
		}),
		participants: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "participants",
			Help:      "Participants per run.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
	}

	r.registry.MustRegister(r.runs, r.instructions, r.imbalanced, r.unsettled, r.rejectedLines, r.participants)
	return r
}

// ObserveRun records one reconciliation.
func (r *Recorder) ObserveRun(source string, out calculator.Outcome) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(source).Inc()
	r.instructions.Add(float64(len(out.Plan.Instructions)))
	r.participants.Observe(float64(len(out.Balances)))
	if out.Imbalanced {
		r.imbalanced.Inc()
	}
	for _, res := range out.Plan.Unsettled {
		r.unsettled.WithLabelValues(string(res.Role)).Inc()
	}
}

// ObserveRejectedLines records skipped input lines.
func (r *Recorder) ObserveRejectedLines(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rejectedLines.Add(float64(n))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
