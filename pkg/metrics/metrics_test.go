package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Mutation("create_boat", ResultOK)
	m.Assistant("fast", ResultOK, time.Second)
	m.Entities("boats", 3)
	if m.Registry() != nil {
		t.Fatalf("nil metrics should have no registry")
	}
}

func TestCounters(t *testing.T) {
	m := New()
	m.Mutation("delete_boat", ResultDeclined)
	m.Mutation("delete_boat", ResultDeclined)
	m.Mutation("delete_boat", ResultOK)
	m.Entities("boats", 9)

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("delete_boat", ResultDeclined)); got != 2 {
		t.Fatalf("expected 2 declined deletes, got %v", got)
	}
	if got := testutil.ToFloat64(m.entities.WithLabelValues("boats")); got != 9 {
		t.Fatalf("expected 9 boats, got %v", got)
	}
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.Assistant("fast", ResultError, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"riverline_assistant_requests_total", "riverline_assistant_request_seconds_bucket"} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
}
