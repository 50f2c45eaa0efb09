// Package sqlstore is the SQL-backed Query Store. It reads the audit schema
// through sqlx and works against PostgreSQL, MySQL and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"

	"qara/internal/compliance/models"
	"qara/pkg/platform/collections"
)

// MalformedRecorder counts legacy array columns that could not be decoded.
type MalformedRecorder interface {
	IncMalformedArray(column string)
}

// Store reads audits, findings, actions and the catalog tables.
type Store struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics MalformedRecorder
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the recorder for malformed array columns.
func WithMetrics(m MalformedRecorder) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a Store on an open database handle.
func New(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAudits returns the audits matching q.
func (s *Store) ListAudits(ctx context.Context, q models.Query) ([]models.Audit, error) {
	audits, _, err := s.audits(ctx, q, false)
	return audits, err
}

// CountAudits returns the number of audits matching q's predicates.
func (s *Store) CountAudits(ctx context.Context, q models.Query) (int, error) {
	c, err := compile(auditsTable, q)
	if err != nil {
		return 0, err
	}
	if c.hasResidual() {
		_, total, err := s.audits(ctx, models.Query{Predicates: q.Predicates}, true)
		return total, err
	}
	return s.count(ctx, "count audits", auditsTable, c)
}

// audits runs q. When q carries predicates on JSON array columns every
// SQL-matching row is read and filtering and paging happen here.
func (s *Store) audits(ctx context.Context, q models.Query, wantTotal bool) ([]models.Audit, int, error) {
	c, err := compile(auditsTable, q)
	if err != nil {
		return nil, 0, err
	}

	query := selectSQL(auditsTable, c)
	if !c.hasResidual() {
		query += limitSQL(q)
	}

	var rows []auditRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), c.args...); err != nil {
		return nil, 0, wrapErr("list audits", err)
	}

	audits := make([]models.Audit, 0, len(rows))
	for _, r := range rows {
		a := s.toAudit(ctx, r)
		if !residualMatch(a, c.residual) {
			continue
		}
		audits = append(audits, a)
	}

	if !c.hasResidual() {
		return audits, len(audits), nil
	}
	total := len(audits)
	return paginate(audits, q.Limit, q.Offset), total, nil
}

// ListFindings returns the findings matching q.
func (s *Store) ListFindings(ctx context.Context, q models.Query) ([]models.Finding, error) {
	c, err := compile(findingsTable, q)
	if err != nil {
		return nil, err
	}
	var rows []findingRow
	query := s.db.Rebind(selectSQL(findingsTable, c) + limitSQL(q))
	if err := s.db.SelectContext(ctx, &rows, query, c.args...); err != nil {
		return nil, wrapErr("list findings", err)
	}
	out := make([]models.Finding, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// CountFindings returns the number of findings matching q's predicates.
func (s *Store) CountFindings(ctx context.Context, q models.Query) (int, error) {
	c, err := compile(findingsTable, q)
	if err != nil {
		return 0, err
	}
	return s.count(ctx, "count findings", findingsTable, c)
}

// ListActions returns the actions matching q.
func (s *Store) ListActions(ctx context.Context, q models.Query) ([]models.Action, error) {
	c, err := compile(actionsTable, q)
	if err != nil {
		return nil, err
	}
	var rows []actionRow
	query := s.db.Rebind(selectSQL(actionsTable, c) + limitSQL(q))
	if err := s.db.SelectContext(ctx, &rows, query, c.args...); err != nil {
		return nil, wrapErr("list actions", err)
	}
	out := make([]models.Action, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// CountActions returns the number of actions matching q's predicates.
func (s *Store) CountActions(ctx context.Context, q models.Query) (int, error) {
	c, err := compile(actionsTable, q)
	if err != nil {
		return 0, err
	}
	return s.count(ctx, "count actions", actionsTable, c)
}

// ProcessesByIDs returns the processes with the given ids, ordered by id.
func (s *Store) ProcessesByIDs(ctx context.Context, ids []int64) ([]models.Process, error) {
	out := []models.Process{}
	if err := s.selectByIDs(ctx, &out, "SELECT id, code, name FROM processes WHERE id IN (?) ORDER BY id", ids); err != nil {
		return nil, wrapErr("list processes", err)
	}
	return out, nil
}

// ReferentialsByIDs returns the referentials with the given ids, ordered by id.
func (s *Store) ReferentialsByIDs(ctx context.Context, ids []int64) ([]models.Referential, error) {
	out := []models.Referential{}
	if err := s.selectByIDs(ctx, &out, "SELECT id, code, name FROM referentials WHERE id IN (?) ORDER BY id", ids); err != nil {
		return nil, wrapErr("list referentials", err)
	}
	return out, nil
}

// SitesByIDs returns tenantID's sites with the given ids, ordered by id.
func (s *Store) SitesByIDs(ctx context.Context, tenantID int64, ids []int64) ([]models.Site, error) {
	ids = collections.Dedupe(ids)
	if len(ids) == 0 {
		return []models.Site{}, nil
	}
	query, args, err := sqlx.In("SELECT id, user_id, name FROM sites WHERE user_id = ? AND id IN (?) ORDER BY id", tenantID, ids)
	if err != nil {
		return nil, err
	}
	out := []models.Site{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...); err != nil {
		return nil, wrapErr("list sites", err)
	}
	return out, nil
}

func (s *Store) selectByIDs(ctx context.Context, dest any, query string, ids []int64) error {
	ids = collections.Dedupe(ids)
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *Store) count(ctx context.Context, op string, t table, c compiled) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(countSQL(t, c)), c.args...); err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}

func (s *Store) toAudit(ctx context.Context, r auditRow) models.Audit {
	a := models.Audit{
		ID:             r.ID,
		UserID:         r.UserID,
		SiteID:         nullInt(r.SiteID),
		Title:          r.Title,
		Status:         models.AuditStatus(r.Status),
		EconomicRole:   models.EconomicRole(r.EconomicRole.String),
		StartDate:      nullTime(r.StartDate),
		EndDate:        nullTime(r.EndDate),
		Score:          nullFloat(r.Score),
		ConformityRate: nullFloat(r.ConformityRate),
	}
	a.ProcessIDs = s.decodeColumn(ctx, r.ID, "process_ids", r.ProcessIDs)
	a.ReferentialIDs = s.decodeColumn(ctx, r.ID, "referential_ids", r.ReferentialIDs)
	return a
}

func (s *Store) decodeColumn(ctx context.Context, auditID int64, column string, raw sql.NullString) []int64 {
	ids, ok := decodeIDs(raw)
	if !ok {
		s.logger.WarnContext(ctx, "malformed id array, treating as empty",
			"audit_id", auditID,
			"column", column,
		)
		if s.metrics != nil {
			s.metrics.IncMalformedArray(column)
		}
	}
	return ids
}

func residualMatch(a models.Audit, preds []models.Predicate) bool {
	for _, p := range preds {
		want, _ := p.Value.([]int64)
		switch p.Field {
		case models.FieldReferentialIDs:
			if !collections.Overlaps(a.ReferentialIDs, want) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func limitSQL(q models.Query) string {
	if q.Limit <= 0 {
		if q.Offset > 0 {
			// LIMIT is required before OFFSET on MySQL and SQLite.
			return " LIMIT 9223372036854775807 OFFSET " + strconv.Itoa(q.Offset)
		}
		return ""
	}
	out := " LIMIT " + strconv.Itoa(q.Limit)
	if q.Offset > 0 {
		out += " OFFSET " + strconv.Itoa(q.Offset)
	}
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
