// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Prometheus instrumentation for tool calls and dataset loads.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gridsite"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	loads        *prometheus.CounterVec
	datasetRows  prometheus.Gauge
	rankedRows   prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool calls by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "MCP tool call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"tool"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Node dataset loads by source kind and outcome.",
		}, []string{"kind", "outcome"}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the currently loaded node table.",
		}),
		rankedRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_filtered_rows",
			Help:      "Rows surviving the location filter per ranking.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		}),
	}
	reg.MustRegister(
		m.toolCalls, m.toolDuration, m.loads, m.datasetRows, m.rankedRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTool records one tool call. A nil receiver is a no-op so callers
// need not check whether metrics are enabled.
func (m *Metrics) ObserveTool(tool string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, outcome(err)).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())
}

// ObserveLoad records a dataset load.
func (m *Metrics) ObserveLoad(kind string, rows int, err error) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(kind, outcome(err)).Inc()
	if err == nil {
		m.datasetRows.Set(float64(rows))
	}
}

// ObserveRanking records the filtered row count of one ranking.
func (m *Metrics) ObserveRanking(filtered int) {
	if m == nil {
		return
	}
	m.rankedRows.Observe(float64(filtered))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
