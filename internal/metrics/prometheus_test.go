package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounters(t *testing.T) {
	r := New()
	r.RecordForecast("ok", 8, 0.01)
	r.RecordForecast("ok", 8, 0.02)
	r.RecordForecast("error", 4, 0.01)
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)

	if got := testutil.ToFloat64(r.forecasts.WithLabelValues("ok")); got != 2 {
		t.Fatalf("expected 2 ok forecasts, got %v", got)
	}
	if got := testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestRecordersUseSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordItemWrite("expense", "created")
	if got := testutil.ToFloat64(b.itemWrites.WithLabelValues("expense", "created")); got != 0 {
		t.Fatalf("registries leaked: %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.RecordAlertCheck(-120, true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{"cashflow_low_balance_alerts_total 1", "cashflow_last_lowest_balance -120"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition", want)
		}
	}
}
