// Package metrics exposes Prometheus collectors for plan edits, history
// moves and LLM calls.
package metrics

import (
	"net/http"

	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements both estimate.Observer and llm.Observer.
type Collector struct {
	reg prometheus.Gatherer

	editsTotal    *prometheus.CounterVec
	editDuration  *prometheus.HistogramVec
	issuesTotal   *prometheus.CounterVec
	planTotalCost prometheus.Gauge
	historyMoves  *prometheus.CounterVec
	historyLength prometheus.Gauge

	llmCallsTotal *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
}

var (
	_ estimate.Observer = (*Collector)(nil)
	_ llm.Observer      = (*Collector)(nil)
)

// New registers the collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Collector{
		reg: reg,
		editsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "buildplan_edits_total",
			Help: "Plan edits by kind and whether they entered history",
		}, []string{"kind", "recorded"}),
		editDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buildplan_edit_duration_seconds",
			Help:    "Time to derive and recalculate a snapshot",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}, []string{"kind"}),
		issuesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "buildplan_edit_issues_total",
			Help: "Degraded edit outcomes by issue code",
		}, []string{"code"}),
		planTotalCost: f.NewGauge(prometheus.GaugeOpts{
			Name: "buildplan_plan_total_cost",
			Help: "Total cost of the most recently derived snapshot",
		}),
		historyMoves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "buildplan_history_moves_total",
			Help: "History cursor moves by direction and whether the cursor moved",
		}, []string{"move", "moved"}),
		historyLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "buildplan_history_length",
			Help: "Number of snapshots in the active history",
		}),
		llmCallsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "buildplan_llm_calls_total",
			Help: "LLM calls by task, provider and error code",
		}, []string{"task", "provider", "code"}),
		llmLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buildplan_llm_call_duration_seconds",
			Help:    "LLM call latency including retries",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}, []string{"task", "provider"}),
	}
}

func (c *Collector) ObserveEdit(e estimate.EditEvent) {
	c.editsTotal.WithLabelValues(string(e.Kind), boolLabel(e.Recorded)).Inc()
	c.editDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
	for _, is := range e.Issues {
		c.issuesTotal.WithLabelValues(string(is.Code)).Inc()
	}
	c.planTotalCost.Set(e.TotalCost)
}

func (c *Collector) ObserveHistory(e estimate.HistoryEvent) {
	c.historyMoves.WithLabelValues(string(e.Move), boolLabel(e.Moved)).Inc()
	c.historyLength.Set(float64(e.Length))
}

func (c *Collector) OnCallComplete(e llm.LLMCallEvent) {
	code := e.ErrorCode
	if e.Success {
		code = "OK"
	}
	c.llmCallsTotal.WithLabelValues(string(e.Task), string(e.Provider), code).Inc()
	c.llmLatency.WithLabelValues(string(e.Task), string(e.Provider)).Observe(float64(e.LatencyMs) / 1000)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
