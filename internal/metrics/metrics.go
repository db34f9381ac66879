// metrics - Prometheus-метрики конвейера загрузки тендеров.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tender_ingest"

// Ingest реализует service.Recorder.
type Ingest struct {
	runs        *prometheus.CounterVec
	items       *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
	lastItems   *prometheus.GaugeVec
}

// NewIngest создаёт коллекторы и регистрирует их в reg.
func NewIngest(reg prometheus.Registerer) *Ingest {
	m := &Ingest{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Ingest runs by final state.",
		}, []string{"state"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Processed feed items by final state.",
		}, []string{"state"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_skipped_total",
			Help:      "Scheduler ticks skipped without a run.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of ingest runs.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that finished in state done.",
		}),
		lastItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_items",
			Help:      "Item counters of the last finished run.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.runs, m.items, m.skipped, m.duration, m.lastSuccess, m.lastItems)

	return m
}

// RunFinished учитывает завершённый прогон.
func (m *Ingest) RunFinished(state string, duration time.Duration, written, skipped, failed int) {
	m.runs.WithLabelValues(state).Inc()
	m.duration.Observe(duration.Seconds())

	m.lastItems.WithLabelValues("written").Set(float64(written))
	m.lastItems.WithLabelValues("skipped").Set(float64(skipped))
	m.lastItems.WithLabelValues("failed").Set(float64(failed))

	if state == "done" {
		m.lastSuccess.SetToCurrentTime()
	}
}

// ItemProcessed учитывает финальное состояние элемента.
func (m *Ingest) ItemProcessed(state string) {
	m.items.WithLabelValues(state).Inc()
}

// RunSkipped учитывает пропущенный тик планировщика.
func (m *Ingest) RunSkipped(reason string) {
	m.skipped.WithLabelValues(reason).Inc()
}
