package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qara/internal/compliance"
	"qara/internal/compliance/models"
	"qara/internal/compliance/service"
	"qara/internal/compliance/store/memory"
	"qara/pkg/testutil"
)

// End-to-end over the demo dataset: router, middleware, service, engine and memory store.
func TestAnalyticsEndpoints(t *testing.T) {
	store := memory.NewDemo(time.Now())
	svc := service.New(store, store, compliance.NewEngine(compliance.DefaultScoringConfig()))
	router := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Register(router)

	do := func(path string, tenant int64) *http.Request {
		req := testutil.NewRequest(t, http.MethodGet, path)
		return testutil.WithTenant(req, tenant)
	}

	t.Run("every aggregate answers for the demo tenant", func(t *testing.T) {
		for _, path := range []string{
			"/analytics/summary", "/analytics/funnel", "/analytics/scores", "/analytics/radar",
			"/analytics/timeseries", "/analytics/heatmap", "/analytics/suggestions",
			"/analytics/drilldown/findings", "/analytics/drilldown/actions", "/analytics/drilldown/audits",
		} {
			rr := testutil.DoRequest(router, do(path, memory.DemoTenantID))
			assert.Equal(t, http.StatusOK, rr.Code, path)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), path)
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), path)
		}
	})

	t.Run("radar always has seven dimensions", func(t *testing.T) {
		rr := testutil.DoRequest(router, do("/analytics/radar", memory.DemoTenantID))
		radar := testutil.UnmarshalResponse[models.Radar](t, rr)
		require.Len(t, radar.Dimensions, compliance.RadarDimensionCount)
		for _, d := range radar.Dimensions {
			assert.GreaterOrEqual(t, d.Score, 0.0)
			assert.LessOrEqual(t, d.Score, 100.0)
		}
	})

	t.Run("another tenant sees empty aggregates", func(t *testing.T) {
		rr := testutil.DoRequest(router, do("/analytics/summary", 777))
		summary := testutil.UnmarshalResponse[models.Summary](t, rr)
		assert.Zero(t, summary.Audits.Total)
		assert.Zero(t, summary.Findings.Total)

		rr = testutil.DoRequest(router, do("/analytics/drilldown/findings?page=2", 777))
		testutil.AssertJSONContains(t, rr, "total", 0.0)
	})

	t.Run("invalid enum is a validation error", func(t *testing.T) {
		rr := testutil.DoRequest(router, do("/analytics/heatmap?criticality=severe", memory.DemoTenantID))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}
