// Package compliance is the scoring and analytics engine. It turns a tenant's
// audits, findings and actions into KPIs, penalty-weighted scores, a radar
// view, trends, a heatmap and remediation suggestions.
//
// Every computation here is pure: the caller loads a Dataset through the
// store chain and the engine only reads it.
package compliance

import (
	"math"
	"time"

	"qara/internal/compliance/models"
)

// Dataset is the in-scope record set of one aggregation. Findings belong to
// Audits and Actions belong to Findings; nothing outside that chain is present.
type Dataset struct {
	Audits   []models.Audit
	Findings []models.Finding
	Actions  []models.Action
	// ProcessNames resolves display names; missing ids render as empty names.
	ProcessNames map[int64]string
	// Now is the request-scoped instant used for overdue checks.
	Now time.Time
}

// IsEmpty reports whether no audit is in scope.
func (d Dataset) IsEmpty() bool {
	return len(d.Audits) == 0
}

// AuditIDs returns the ids of the in-scope audits in order.
func (d Dataset) AuditIDs() []int64 {
	ids := make([]int64, 0, len(d.Audits))
	for _, a := range d.Audits {
		ids = append(ids, a.ID)
	}
	return ids
}

// FindingIDs returns the ids of the in-scope findings in order.
func (d Dataset) FindingIDs() []int64 {
	ids := make([]int64, 0, len(d.Findings))
	for _, f := range d.Findings {
		ids = append(ids, f.ID)
	}
	return ids
}

// ReferencedProcessIDs returns every process id referenced by an audit or a finding.
func (d Dataset) ReferencedProcessIDs() []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, a := range d.Audits {
		for _, id := range a.ProcessIDs {
			add(id)
		}
	}
	for _, f := range d.Findings {
		if f.ProcessID != nil {
			add(*f.ProcessID)
		}
	}
	return ids
}

func (d Dataset) processName(id int64) string {
	return d.ProcessNames[id]
}

// Engine computes every aggregate from a Dataset using one ScoringConfig.
type Engine struct {
	cfg ScoringConfig
}

// NewEngine builds an engine. The config is assumed valid.
func NewEngine(cfg ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's scoring configuration.
func (e *Engine) Config() ScoringConfig {
	return e.cfg
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percentage returns n/d*100 rounded to one decimal, or 0 when d is 0.
func percentage(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round1(float64(n) / float64(d) * 100)
}

// meanOf averages the non-nil values; ok is false when there are none.
func meanOf(values []*float64) (mean float64, ok bool) {
	var sum float64
	var n int
	for _, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// meanCountingNull averages every value with nil or NaN counting as 0; ok is
// false only when values is empty.
func meanCountingNull(values []*float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sum += *v
	}
	return sum / float64(len(values)), true
}

func zeroFilled[T ~string](keys []T) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[string(k)] = 0
	}
	return m
}
