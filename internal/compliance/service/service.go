package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"qara/internal/compliance"
	"qara/internal/compliance/filter"
	"qara/internal/compliance/metrics"
	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/platform/sentinel"
	"qara/pkg/requestcontext"
)

// AuditStore reads the tenant-owned record chain.
type AuditStore interface {
	ListAudits(ctx context.Context, q models.Query) ([]models.Audit, error)
	CountAudits(ctx context.Context, q models.Query) (int, error)
	ListFindings(ctx context.Context, q models.Query) ([]models.Finding, error)
	CountFindings(ctx context.Context, q models.Query) (int, error)
	ListActions(ctx context.Context, q models.Query) ([]models.Action, error)
	CountActions(ctx context.Context, q models.Query) (int, error)
}

// CatalogStore resolves display names for processes, referentials and sites.
type CatalogStore interface {
	ProcessesByIDs(ctx context.Context, ids []int64) ([]models.Process, error)
	ReferentialsByIDs(ctx context.Context, ids []int64) ([]models.Referential, error)
	SitesByIDs(ctx context.Context, tenantID int64, ids []int64) ([]models.Site, error)
}

// Service runs analytics aggregations for one tenant at a time. Each call
// normalizes the filter, reads audits, then their findings, then their
// actions, and hands the resulting Dataset to the engine.
type Service struct {
	audits  AuditStore
	catalog CatalogStore
	engine  *compliance.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(audits AuditStore, catalog CatalogStore, engine *compliance.Engine, opts ...Option) *Service {
	s := &Service{
		audits:  audits,
		catalog: catalog,
		engine:  engine,
		tracer:  otel.Tracer("qara/compliance"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Operation names used for spans, metrics and logs.
const (
	opSummary     = "summary"
	opFunnel      = "funnel"
	opScores      = "scores"
	opRadar       = "radar"
	opTimeseries  = "timeseries"
	opHeatmap     = "heatmap"
	opSuggestions = "suggestions"
	opDrilldown   = "drilldown"
)

// observe wraps one operation with a span, a metric sample and a log line.
func observe[T any](ctx context.Context, s *Service, op string, tenantID int64, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "analytics."+op,
		trace.WithAttributes(
			attribute.String("operation", op),
			attribute.Int64("tenant_id", tenantID),
		))
	defer span.End()

	result, err := fn(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		s.metrics.ObserveAggregation(op, outcome(err), start)
		s.logError(ctx, "analytics aggregation failed",
			"operation", op,
			"tenant_id", tenantID,
			"error", err,
		)
		return result, err
	}

	s.metrics.ObserveAggregation(op, metrics.OutcomeOK, start)
	s.logInfo(ctx, "analytics aggregation completed",
		"operation", op,
		"tenant_id", tenantID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func outcome(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		return metrics.OutcomeInvalid
	case dErrors.CodeUnavailable:
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}

// loadDataset runs the dependency-ordered store chain for c. The chain stops
// early when a stage comes back empty.
func (s *Service) loadDataset(ctx context.Context, c models.FilterCriteria) (compliance.Dataset, error) {
	preds, err := filter.Normalize(c)
	if err != nil {
		return compliance.Dataset{}, err
	}

	d := compliance.Dataset{Now: requestcontext.Now(ctx)}

	d.Audits, err = s.audits.ListAudits(ctx, models.Query{
		Predicates: preds.For(models.EntityAudit),
		OrderBy:    []models.OrderBy{{Field: models.FieldID}},
	})
	if err != nil {
		return compliance.Dataset{}, translate(err, "failed to load audits")
	}
	if d.IsEmpty() {
		return d, nil
	}

	d.Findings, err = s.findingsOf(ctx, d.AuditIDs(), preds.For(models.EntityFinding))
	if err != nil {
		return compliance.Dataset{}, err
	}

	if len(d.Findings) > 0 {
		d.Actions, err = s.audits.ListActions(ctx, models.Query{
			Predicates: []models.Predicate{models.In(models.EntityAction, models.FieldFindingID, d.FindingIDs())},
			OrderBy:    []models.OrderBy{{Field: models.FieldID}},
		})
		if err != nil {
			return compliance.Dataset{}, translate(err, "failed to load actions")
		}
	}

	d.ProcessNames, err = s.processNames(ctx, d.ReferencedProcessIDs())
	if err != nil {
		return compliance.Dataset{}, err
	}
	return d, nil
}

func (s *Service) findingsOf(ctx context.Context, auditIDs []int64, extra []models.Predicate) ([]models.Finding, error) {
	preds := append([]models.Predicate{models.In(models.EntityFinding, models.FieldAuditID, auditIDs)}, extra...)
	findings, err := s.audits.ListFindings(ctx, models.Query{
		Predicates: preds,
		OrderBy:    []models.OrderBy{{Field: models.FieldID}},
	})
	if err != nil {
		return nil, translate(err, "failed to load findings")
	}
	return findings, nil
}

func (s *Service) processNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	procs, err := s.catalog.ProcessesByIDs(ctx, ids)
	if err != nil {
		return nil, translate(err, "failed to load processes")
	}
	for _, p := range procs {
		names[p.ID] = p.Name
	}
	return names, nil
}

// translate maps store errors to coded errors. Unavailable stores are never
// reported as empty results.
func translate(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "analytics store unavailable")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if id := requestcontext.RequestID(ctx); id != "" {
		args = append(args, "request_id", id)
	}
	s.logger.InfoContext(ctx, msg, args...)
}

func (s *Service) logError(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if id := requestcontext.RequestID(ctx); id != "" {
		args = append(args, "request_id", id)
	}
	s.logger.ErrorContext(ctx, msg, args...)
}
