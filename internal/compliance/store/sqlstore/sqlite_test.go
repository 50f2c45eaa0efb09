package sqlstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"qara/internal/compliance/models"
	"qara/internal/platform/database"
)

// =============================================================================
// SQLite Round-Trip Suite
// =============================================================================
// Justification for unit tests: SQLite runs the real migrations and driver
// conversions in-process, covering NULL handling, date bounds and the legacy
// array decoding end to end.

type recordingMetrics struct {
	columns []string
}

func (m *recordingMetrics) IncMalformedArray(column string) {
	m.columns = append(m.columns, column)
}

type SQLiteStoreSuite struct {
	suite.Suite
	db      *sqlx.DB
	store   *Store
	metrics *recordingMetrics
	logs    *bytes.Buffer
	ctx     context.Context
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.OpenTestSQLite(s.T())
	s.metrics = &recordingMetrics{}
	s.logs = &bytes.Buffer{}
	s.store = New(s.db,
		WithLogger(slog.New(slog.NewJSONHandler(s.logs, nil))),
		WithMetrics(s.metrics),
	)
}

func (s *SQLiteStoreSuite) exec(query string, args ...any) {
	_, err := s.db.ExecContext(s.ctx, s.db.Rebind(query), args...)
	s.Require().NoError(err)
}

func (s *SQLiteStoreSuite) insertAudit(id, tenant int64, start *time.Time, score any, processIDs, referentialIDs any) {
	s.exec(`INSERT INTO audits (id, user_id, site_id, title, status, economic_role, start_date, end_date,
		score, conformity_rate, process_ids, referential_ids)
		VALUES (?, ?, NULL, ?, 'closed', NULL, ?, NULL, ?, NULL, ?, ?)`,
		id, tenant, fmt.Sprintf("Audit %d", id), start, score, processIDs, referentialIDs)
}

func day(m time.Month, d int) *time.Time {
	t := time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (s *SQLiteStoreSuite) TestAuditRoundTrip() {
	s.insertAudit(1, 1, day(1, 10), 75.5, "[1,2]", `["3"]`)
	s.insertAudit(2, 1, nil, nil, nil, nil)
	s.insertAudit(3, 2, day(1, 10), 10.0, "[1]", "[3]")

	audits, err := s.store.ListAudits(s.ctx, models.Query{
		Predicates: []models.Predicate{models.Eq(models.EntityAudit, models.FieldUserID, int64(1))},
	})
	s.Require().NoError(err)
	s.Require().Len(audits, 2)

	s.Equal(int64(1), audits[0].ID)
	s.Require().NotNil(audits[0].StartDate)
	s.True(audits[0].StartDate.Equal(*day(1, 10)))
	s.Equal([]int64{1, 2}, audits[0].ProcessIDs)
	s.Equal([]int64{3}, audits[0].ReferentialIDs)

	s.Nil(audits[1].StartDate)
	s.Nil(audits[1].Score)
	s.Empty(audits[1].ProcessIDs)
	s.Empty(s.metrics.columns)
}

func (s *SQLiteStoreSuite) TestMalformedArraysAreEmpty() {
	s.insertAudit(1, 1, nil, nil, "not-json", "[1,")

	audits, err := s.store.ListAudits(s.ctx, models.Query{})
	s.Require().NoError(err)
	s.Require().Len(audits, 1)
	s.Empty(audits[0].ProcessIDs)
	s.Empty(audits[0].ReferentialIDs)
	s.Equal([]string{"process_ids", "referential_ids"}, s.metrics.columns)
	s.Contains(s.logs.String(), `"audit_id":1`)
}

func (s *SQLiteStoreSuite) TestPeriodBounds() {
	s.insertAudit(1, 1, day(1, 1), nil, nil, nil)
	s.insertAudit(2, 1, day(1, 15), nil, nil, nil)
	s.insertAudit(3, 1, day(2, 1), nil, nil, nil)

	n, err := s.store.CountAudits(s.ctx, models.Query{
		Predicates: []models.Predicate{
			{Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpGte, Value: *day(1, 1)},
			{Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpLte, Value: *day(1, 31)},
		},
	})
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *SQLiteStoreSuite) TestPagination() {
	for i := int64(1); i <= 25; i++ {
		s.insertAudit(i, 1, nil, nil, nil, "[7]")
	}

	var sizes []int
	for offset := 0; offset < 30; offset += 10 {
		page, err := s.store.ListAudits(s.ctx, models.Query{Limit: 10, Offset: offset})
		s.Require().NoError(err)
		sizes = append(sizes, len(page))
	}
	s.Equal([]int{10, 10, 5}, sizes)

	s.Run("residual filter keeps the total", func() {
		q := models.Query{
			Predicates: []models.Predicate{
				{Entity: models.EntityAudit, Field: models.FieldReferentialIDs, Op: models.OpOverlaps, Value: []int64{7}},
			},
			Limit:  10,
			Offset: 20,
		}
		page, err := s.store.ListAudits(s.ctx, q)
		s.Require().NoError(err)
		s.Len(page, 5)

		total, err := s.store.CountAudits(s.ctx, q)
		s.Require().NoError(err)
		s.Equal(25, total)
	})
}

func (s *SQLiteStoreSuite) TestFindingsAndActions() {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	s.exec(`INSERT INTO findings (id, audit_id, process_id, finding_type, criticality, status, clause, title, description, created_at)
		VALUES (1, 1, 4, 'nc_major', 'critical', 'open', '7.5', 'Missing records', NULL, ?),
		       (2, 1, NULL, 'observation', 'low', 'open', '8.2', 'Label wording', 'minor', ?)`, created, created)
	s.exec(`INSERT INTO actions (id, finding_id, title, status, priority, due_date, completed_at, created_at)
		VALUES (1, 1, 'Restore records', 'open', 'critical', ?, NULL, ?)`, *day(3, 1), created)

	findings, err := s.store.ListFindings(s.ctx, models.Query{
		Predicates: []models.Predicate{models.In(models.EntityFinding, models.FieldAuditID, []int64{1})},
		OrderBy:    []models.OrderBy{{Field: models.FieldCriticality}},
	})
	s.Require().NoError(err)
	s.Require().Len(findings, 2)
	s.Equal(models.CriticalityCritical, findings[0].Criticality)
	s.Require().NotNil(findings[0].ProcessID)
	s.Equal(int64(4), *findings[0].ProcessID)
	s.Nil(findings[1].ProcessID)
	s.Equal("minor", findings[1].Description)

	actions, err := s.store.ListActions(s.ctx, models.Query{
		Predicates: []models.Predicate{models.In(models.EntityAction, models.FieldFindingID, []int64{1, 2})},
	})
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Require().NotNil(actions[0].DueDate)
	s.True(actions[0].DueDate.Equal(*day(3, 1)))
	s.Nil(actions[0].CompletedAt)
	s.True(actions[0].IsOverdue(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
}
