package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnalysis(t *testing.T) {
	m := New()

	m.ObserveAnalysis("analyze", "ok")
	m.ObserveAnalysis("analyze", "ok")
	m.ObserveAnalysis("study-plan", "invalid")

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("analyze", "ok")); got != 2 {
		t.Errorf("analyze/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.analyses.WithLabelValues("study-plan", "invalid")); got != 1 {
		t.Errorf("study-plan/invalid = %v, want 1", got)
	}
}

func TestObserveRequestAndCache(t *testing.T) {
	m := New()

	m.ObserveRequest("POST /api/analyze", http.MethodPost, http.StatusOK, 5*time.Millisecond)
	m.ObserveCache("hit")

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST /api/analyze", "POST", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cache.WithLabelValues("hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveAnalysis("recommendations", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `quiz_analyses_total{operation="recommendations",outcome="ok"} 1`) {
		t.Error("exposition should include the analyses counter")
	}
}
