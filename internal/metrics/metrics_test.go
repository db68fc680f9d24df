package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/parser"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
)

func TestObserveRun_StatusLabels(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRun(pipeline.OpGeo, time.Millisecond, nil)
	m.ObserveRun(pipeline.OpGeo, time.Millisecond, &pipeline.IntegrityError{Year: 2019, Unmatched: []string{"x"}})
	m.ObserveRun(pipeline.OpIndustry, time.Millisecond, &pipeline.EmptyResultError{Year: 2030})
	m.ObserveRun(pipeline.OpTrend, time.Millisecond, errors.New("boom"))

	cases := []struct {
		op, status string
	}{
		{pipeline.OpGeo, StatusOK},
		{pipeline.OpGeo, StatusIntegrity},
		{pipeline.OpIndustry, StatusEmpty},
		{pipeline.OpTrend, StatusError},
	}
	for _, tc := range cases {
		if got := testutil.ToFloat64(m.AggregationRuns.WithLabelValues(tc.op, tc.status)); got != 1 {
			t.Fatalf("%s/%s want 1, got %v", tc.op, tc.status, got)
		}
	}
}

func TestSetLoadedRows(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetLoadedRows(datastore.Summary{NationalByIndustry: 3, Coordinates: 47})
	if got := testutil.ToFloat64(m.LoadedRows.WithLabelValues(string(parser.TableCoordinates))); got != 47 {
		t.Fatalf("coordinates rows want 47, got %v", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRequest(http.MethodGet, "/api/status", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "wagedash_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}
