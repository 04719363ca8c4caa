package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTool(t *testing.T) {
	m := New()
	m.ObserveTool("rank_nodes", time.Now(), nil)
	m.ObserveTool("rank_nodes", time.Now(), errors.New("bad"))
	if got := testutil.ToFloat64(m.toolCalls.WithLabelValues("rank_nodes", "ok")); got != 1 {
		t.Fatalf("expected 1 ok call, got %v", got)
	}
	if got := testutil.ToFloat64(m.toolCalls.WithLabelValues("rank_nodes", "error")); got != 1 {
		t.Fatalf("expected 1 failed call, got %v", got)
	}
}

func TestObserveLoadSetsRows(t *testing.T) {
	m := New()
	m.ObserveLoad("csv", 42, nil)
	m.ObserveLoad("csv", 0, errors.New("gone"))
	if got := testutil.ToFloat64(m.datasetRows); got != 42 {
		t.Fatalf("failed load must not reset rows, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTool("ping", time.Now(), nil)
	m.ObserveLoad("csv", 1, nil)
	m.ObserveRanking(3)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveRanking(12)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "gridsite_ranking_filtered_rows") {
		t.Fatalf("metrics output missing histogram")
	}
}
