package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/platform/httputil"
	"qara/pkg/platform/middleware/request"
	"qara/pkg/platform/middleware/requesttime"
	"qara/pkg/platform/middleware/tenant"
	"qara/pkg/requestcontext"
)

// Service defines the analytics operations exposed over HTTP.
type Service interface {
	Summary(ctx context.Context, c models.FilterCriteria) (models.Summary, error)
	Funnel(ctx context.Context, c models.FilterCriteria) (models.Funnel, error)
	Scores(ctx context.Context, c models.FilterCriteria) ([]models.ProcessScore, error)
	Radar(ctx context.Context, c models.FilterCriteria) (models.Radar, error)
	Timeseries(ctx context.Context, req models.TimeseriesRequest) (models.Timeseries, error)
	Heatmap(ctx context.Context, c models.FilterCriteria) (models.Heatmap, error)
	Suggestions(ctx context.Context, c models.FilterCriteria) ([]models.Suggestion, error)
	Drilldown(ctx context.Context, req models.DrilldownRequest) (*models.DrilldownResult, error)
}

// DefaultTimeout bounds one analytics request.
const DefaultTimeout = 30 * time.Second

// Handler serves the /analytics endpoints.
type Handler struct {
	logger    *slog.Logger
	analytics Service
	latency   request.LatencyObserver
	timeout   time.Duration
}

// New creates a new analytics Handler. latency may be nil.
func New(analytics Service, logger *slog.Logger, latency request.LatencyObserver) *Handler {
	return &Handler{
		logger:    logger,
		analytics: analytics,
		latency:   latency,
		timeout:   DefaultTimeout,
	}
}

// Register registers the analytics routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	analyticsRouter := chi.NewRouter()
	analyticsRouter.Use(request.Recovery(h.logger))
	analyticsRouter.Use(request.RequestID)
	analyticsRouter.Use(request.Logger(h.logger))
	analyticsRouter.Use(request.Timeout(h.timeout))
	analyticsRouter.Use(request.ContentTypeJSON)
	analyticsRouter.Use(request.Latency(h.latency))
	analyticsRouter.Use(requesttime.Middleware)
	analyticsRouter.Use(tenant.RequireTenant(h.logger))

	analyticsRouter.Get("/summary", h.handleSummary)
	analyticsRouter.Get("/funnel", h.handleFunnel)
	analyticsRouter.Get("/scores", h.handleScores)
	analyticsRouter.Get("/radar", h.handleRadar)
	analyticsRouter.Get("/timeseries", h.handleTimeseries)
	analyticsRouter.Get("/heatmap", h.handleHeatmap)
	analyticsRouter.Get("/suggestions", h.handleSuggestions)
	analyticsRouter.Get("/drilldown/{kind}", h.handleDrilldown)

	r.Mount("/analytics", analyticsRouter)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "summary", h.analytics.Summary)
}

func (h *Handler) handleFunnel(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "funnel", h.analytics.Funnel)
}

func (h *Handler) handleScores(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "scores", h.analytics.Scores)
}

func (h *Handler) handleRadar(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "radar", h.analytics.Radar)
}

func (h *Handler) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "heatmap", h.analytics.Heatmap)
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "suggestions", h.analytics.Suggestions)
}

func (h *Handler) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	serveFiltered(h, w, r, "timeseries", func(ctx context.Context, c models.FilterCriteria) (models.Timeseries, error) {
		return h.analytics.Timeseries(ctx, models.TimeseriesRequest{
			Filter:      c,
			Granularity: models.Granularity(r.URL.Query().Get("granularity")),
		})
	})
}

func (h *Handler) handleDrilldown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	criteria, err := parseCriteria(ctx, q)
	if err != nil {
		h.fail(ctx, w, "drilldown", err)
		return
	}
	req, err := parseDrilldown(q)
	if err != nil {
		h.fail(ctx, w, "drilldown", err)
		return
	}
	req.Kind = models.DrilldownKind(chi.URLParam(r, "kind"))
	req.Filter = criteria

	res, err := h.analytics.Drilldown(ctx, req)
	if err != nil {
		h.fail(ctx, w, "drilldown", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// serveFiltered parses the common filters, runs fn and writes its result.
func serveFiltered[T any](h *Handler, w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, models.FilterCriteria) (T, error)) {
	ctx := r.Context()

	criteria, err := parseCriteria(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}

	result, err := fn(ctx, criteria)
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// fail logs err at a level matching its code and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	attrs := []any{
		"request_id", request.GetRequestID(ctx),
		"tenant_id", requestcontext.TenantID(ctx),
		"operation", op,
		"error", err.Error(),
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		h.logger.WarnContext(ctx, "invalid analytics request", attrs...)
	default:
		h.logger.ErrorContext(ctx, "analytics request failed", attrs...)
	}
	httputil.WriteError(w, err)
}
