// Package memory is an in-process Query Store used by tests and by the
// server when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"qara/internal/compliance/models"
)

// Store holds audit records in memory. Reads honour the same predicates,
// ordering and pagination as the SQL store.
type Store struct {
	mu           sync.RWMutex
	audits       []models.Audit
	findings     []models.Finding
	actions      []models.Action
	processes    map[int64]models.Process
	referentials map[int64]models.Referential
	sites        map[int64]models.Site
}

// New creates an empty store.
func New() *Store {
	return &Store{
		processes:    make(map[int64]models.Process),
		referentials: make(map[int64]models.Referential),
		sites:        make(map[int64]models.Site),
	}
}

// Dataset is a bulk load of records.
type Dataset struct {
	Processes    []models.Process
	Referentials []models.Referential
	Sites        []models.Site
	Audits       []models.Audit
	Findings     []models.Finding
	Actions      []models.Action
}

// Load appends records to the store. Catalog entries with an existing id are replaced.
func (s *Store) Load(d Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audits = append(s.audits, d.Audits...)
	s.findings = append(s.findings, d.Findings...)
	s.actions = append(s.actions, d.Actions...)
	for _, p := range d.Processes {
		s.processes[p.ID] = p
	}
	for _, r := range d.Referentials {
		s.referentials[r.ID] = r
	}
	for _, site := range d.Sites {
		s.sites[site.ID] = site
	}
}

func (s *Store) ListAudits(_ context.Context, q models.Query) ([]models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, _, err := run(s.audits, q, auditField)
	return rows, err
}

func (s *Store) CountAudits(_ context.Context, q models.Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, total, err := run(s.audits, models.Query{Predicates: q.Predicates}, auditField)
	return total, err
}

func (s *Store) ListFindings(_ context.Context, q models.Query) ([]models.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, _, err := run(s.findings, q, findingField)
	return rows, err
}

func (s *Store) CountFindings(_ context.Context, q models.Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, total, err := run(s.findings, models.Query{Predicates: q.Predicates}, findingField)
	return total, err
}

func (s *Store) ListActions(_ context.Context, q models.Query) ([]models.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, _, err := run(s.actions, q, actionField)
	return rows, err
}

func (s *Store) CountActions(_ context.Context, q models.Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, total, err := run(s.actions, models.Query{Predicates: q.Predicates}, actionField)
	return total, err
}

func (s *Store) ProcessesByIDs(_ context.Context, ids []int64) ([]models.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.processes, ids, func(p models.Process) int64 { return p.ID }), nil
}

func (s *Store) ReferentialsByIDs(_ context.Context, ids []int64) ([]models.Referential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.referentials, ids, func(r models.Referential) int64 { return r.ID }), nil
}

// SitesByIDs only returns sites owned by tenantID.
func (s *Store) SitesByIDs(_ context.Context, tenantID int64, ids []int64) ([]models.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sites := byIDs(s.sites, ids, func(site models.Site) int64 { return site.ID })
	owned := sites[:0]
	for _, site := range sites {
		if site.UserID == tenantID {
			owned = append(owned, site)
		}
	}
	return owned, nil
}

func byIDs[T any](m map[int64]T, ids []int64, idOf func(T) int64) []T {
	out := make([]T, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if v, ok := m[id]; ok {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return idOf(out[i]) < idOf(out[j]) })
	return out
}
