package branchsync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "prsync"

const (
	processedBranchesMetricName = "processed_branches_total"
	autoMergesMetricName        = "auto_merges_total"
	batchDurationMetricName     = "batch_duration_seconds"
)

const outcomeLabel = "outcome"

// Metrics collects prometheus metrics about processed branches.
// A nil *Metrics is valid and discards all values.
type Metrics struct {
	registry      *prometheus.Registry
	processed     *prometheus.CounterVec
	autoMerges    prometheus.Counter
	batchDuration prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := Metrics{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      processedBranchesMetricName,
				Help:      "count of processed branches by outcome",
			},
			[]string{outcomeLabel},
		),
		autoMerges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      autoMergesMetricName,
				Help:      "count of automatically merged pull requests",
			},
		),
		batchDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      batchDurationMetricName,
				Help:      "duration of the last batch run",
			},
		),
	}

	m.registry.MustRegister(m.processed, m.autoMerges, m.batchDuration)

	return &m
}

func (m *Metrics) recordResult(res *ProcessResult) {
	if m == nil {
		return
	}

	m.processed.WithLabelValues(string(res.Outcome)).Inc()
}

func (m *Metrics) autoMerged() {
	if m == nil {
		return
	}

	m.autoMerges.Inc()
}

func (m *Metrics) batchFinished(d time.Duration) {
	if m == nil {
		return
	}

	m.batchDuration.Set(d.Seconds())
}

// WriteToTextfile writes the metrics in the text format to path, it is
// intended for the node-exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
