package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"qara/internal/compliance/models"
)

// =============================================================================
// Memory Store Test Suite
// =============================================================================
// Justification for unit tests: the memory store backs the demo server and the
// service tests, so its predicate, ordering and pagination semantics must agree
// with the SQL store.

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()

	date := func(m time.Month, d int) *time.Time {
		t := time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	score := func(v float64) *float64 { return &v }
	site := int64(10)

	s.store.Load(Dataset{
		Processes:    []models.Process{{ID: 1, Name: "Purchasing"}, {ID: 2, Name: "Design"}},
		Referentials: []models.Referential{{ID: 3, Name: "MDR"}},
		Sites:        []models.Site{{ID: 10, UserID: 1, Name: "HQ"}, {ID: 11, UserID: 2, Name: "Other"}},
		Audits: []models.Audit{
			{ID: 1, UserID: 1, SiteID: &site, Status: models.AuditClosed, StartDate: date(1, 10), Score: score(70), ReferentialIDs: []int64{3}},
			{ID: 2, UserID: 1, Status: models.AuditDraft, StartDate: date(3, 5), ReferentialIDs: []int64{1, 2}},
			{ID: 3, UserID: 1, Status: models.AuditClosed, StartDate: nil, Score: score(90)},
			{ID: 4, UserID: 2, Status: models.AuditClosed, StartDate: date(2, 1), Score: score(10)},
		},
		Findings: []models.Finding{
			{ID: 1, AuditID: 1, Criticality: models.CriticalityHigh},
			{ID: 2, AuditID: 1, Criticality: models.CriticalityLow},
			{ID: 3, AuditID: 4, Criticality: models.CriticalityHigh},
		},
		Actions: []models.Action{
			{ID: 1, FindingID: 1, Status: models.ActionOpen},
			{ID: 2, FindingID: 3, Status: models.ActionOpen},
		},
	})
}

func (s *MemoryStoreSuite) ids(audits []models.Audit) []int64 {
	out := make([]int64, 0, len(audits))
	for _, a := range audits {
		out = append(out, a.ID)
	}
	return out
}

// =============================================================================
// Predicate Tests
// =============================================================================

func (s *MemoryStoreSuite) TestPredicates() {
	tenant := models.Eq(models.EntityAudit, models.FieldUserID, int64(1))

	s.Run("tenant equality", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{tenant}})
		s.Require().NoError(err)
		s.Equal([]int64{1, 2, 3}, s.ids(audits))
	})

	s.Run("date range excludes null dates", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{
			tenant,
			{Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpGte, Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpLte, Value: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		}})
		s.Require().NoError(err)
		s.Equal([]int64{1}, s.ids(audits))
	})

	s.Run("referential overlap", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{
			tenant,
			{Entity: models.EntityAudit, Field: models.FieldReferentialIDs, Op: models.OpOverlaps, Value: []int64{2, 9}},
		}})
		s.Require().NoError(err)
		s.Equal([]int64{2}, s.ids(audits))
	})

	s.Run("null site never equals", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{
			tenant, models.Eq(models.EntityAudit, models.FieldSiteID, int64(10)),
		}})
		s.Require().NoError(err)
		s.Equal([]int64{1}, s.ids(audits))
	})

	s.Run("membership over audit ids", func() {
		findings, err := s.store.ListFindings(s.ctx, models.Query{Predicates: []models.Predicate{
			models.In(models.EntityFinding, models.FieldAuditID, []int64{1, 2, 3}),
			models.Eq(models.EntityFinding, models.FieldCriticality, "high"),
		}})
		s.Require().NoError(err)
		s.Require().Len(findings, 1)
		s.Equal(int64(1), findings[0].ID)
	})

	s.Run("unknown field is an error", func() {
		_, err := s.store.ListActions(s.ctx, models.Query{Predicates: []models.Predicate{
			models.Eq(models.EntityAction, "owner", "bob"),
		}})
		s.Error(err)
	})
}

// =============================================================================
// Ordering and Pagination Tests
// =============================================================================

func (s *MemoryStoreSuite) TestOrderingAndPagination() {
	tenant := models.Eq(models.EntityAudit, models.FieldUserID, int64(1))

	s.Run("descending with nulls first and id tie-break", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{
			Predicates: []models.Predicate{tenant},
			OrderBy:    []models.OrderBy{{Field: models.FieldScore, Desc: true}},
		})
		s.Require().NoError(err)
		s.Equal([]int64{2, 3, 1}, s.ids(audits))
	})

	s.Run("ascending puts nulls last", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{
			Predicates: []models.Predicate{tenant},
			OrderBy:    []models.OrderBy{{Field: models.FieldStartDate}},
		})
		s.Require().NoError(err)
		s.Equal([]int64{1, 2, 3}, s.ids(audits))
	})

	s.Run("limit and offset", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{tenant}, Limit: 2, Offset: 2})
		s.Require().NoError(err)
		s.Equal([]int64{3}, s.ids(audits))

		total, err := s.store.CountAudits(s.ctx, models.Query{Predicates: []models.Predicate{tenant}, Limit: 2, Offset: 2})
		s.Require().NoError(err)
		s.Equal(3, total)
	})

	s.Run("offset past the end is empty", func() {
		audits, err := s.store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{tenant}, Limit: 10, Offset: 30})
		s.Require().NoError(err)
		s.NotNil(audits)
		s.Empty(audits)
	})

	s.Run("unknown sort field is an error", func() {
		_, err := s.store.ListAudits(s.ctx, models.Query{OrderBy: []models.OrderBy{{Field: "color"}}})
		s.Error(err)
	})
}

// =============================================================================
// Catalog Tests
// =============================================================================

func (s *MemoryStoreSuite) TestCatalog() {
	s.Run("processes by ids skips unknown and duplicates", func() {
		procs, err := s.store.ProcessesByIDs(s.ctx, []int64{2, 99, 1, 2})
		s.Require().NoError(err)
		s.Require().Len(procs, 2)
		s.Equal(int64(1), procs[0].ID)
		s.Equal(int64(2), procs[1].ID)
	})

	s.Run("sites are tenant scoped", func() {
		sites, err := s.store.SitesByIDs(s.ctx, 1, []int64{10, 11})
		s.Require().NoError(err)
		s.Require().Len(sites, 1)
		s.Equal("HQ", sites[0].Name)
	})

	s.Run("referentials", func() {
		refs, err := s.store.ReferentialsByIDs(s.ctx, []int64{3})
		s.Require().NoError(err)
		s.Require().Len(refs, 1)
		s.Equal("MDR", refs[0].Name)
	})
}

func (s *MemoryStoreSuite) TestDemoDataset() {
	store := NewDemo(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	audits, err := store.ListAudits(s.ctx, models.Query{Predicates: []models.Predicate{
		models.Eq(models.EntityAudit, models.FieldUserID, DemoTenantID),
	}})
	s.Require().NoError(err)
	s.Len(audits, 6)

	procs, err := store.ProcessesByIDs(s.ctx, []int64{1, 14})
	s.Require().NoError(err)
	s.Len(procs, 2)
}
