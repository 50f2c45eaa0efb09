package memory

import (
	"cmp"
	"fmt"
	"sort"
	"time"

	"qara/internal/compliance/models"
	"qara/pkg/platform/collections"
)

// fieldFunc resolves a named field of a record. ok is false for unknown fields.
// A nil value stands for SQL NULL.
type fieldFunc[T any] func(rec T, field string) (value any, ok bool)

func auditField(a models.Audit, field string) (any, bool) {
	switch field {
	case models.FieldID:
		return a.ID, true
	case models.FieldUserID:
		return a.UserID, true
	case models.FieldSiteID:
		return derefInt(a.SiteID), true
	case models.FieldStatus:
		return string(a.Status), true
	case models.FieldEconomicRole:
		if a.EconomicRole == "" {
			return nil, true
		}
		return string(a.EconomicRole), true
	case models.FieldStartDate:
		return derefTime(a.StartDate), true
	case models.FieldEndDate:
		return derefTime(a.EndDate), true
	case models.FieldScore:
		return derefFloat(a.Score), true
	case models.FieldConformityRate:
		return derefFloat(a.ConformityRate), true
	case models.FieldReferentialIDs:
		return a.ReferentialIDs, true
	}
	return nil, false
}

func findingField(f models.Finding, field string) (any, bool) {
	switch field {
	case models.FieldID:
		return f.ID, true
	case models.FieldAuditID:
		return f.AuditID, true
	case models.FieldProcessID:
		return derefInt(f.ProcessID), true
	case models.FieldFindingType:
		return string(f.FindingType), true
	case models.FieldCriticality:
		return string(f.Criticality), true
	case models.FieldStatus:
		return string(f.Status), true
	case models.FieldCreatedAt:
		return f.CreatedAt, true
	}
	return nil, false
}

func actionField(a models.Action, field string) (any, bool) {
	switch field {
	case models.FieldID:
		return a.ID, true
	case models.FieldFindingID:
		return a.FindingID, true
	case models.FieldStatus:
		return string(a.Status), true
	case models.FieldPriority:
		return string(a.Priority), true
	case models.FieldDueDate:
		return derefTime(a.DueDate), true
	case models.FieldCreatedAt:
		return a.CreatedAt, true
	}
	return nil, false
}

func derefInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

// run filters, sorts and pages records the way the SQL store would.
func run[T any](records []T, q models.Query, get fieldFunc[T]) ([]T, int, error) {
	matched := make([]T, 0, len(records))
	for _, rec := range records {
		ok, err := matchAll(rec, q.Predicates, get)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	for _, o := range q.OrderBy {
		if _, ok := get(*new(T), o.Field); !ok {
			return nil, 0, fmt.Errorf("unsupported sort field %q", o.Field)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		for _, o := range q.OrderBy {
			a, _ := get(matched[i], o.Field)
			b, _ := get(matched[j], o.Field)
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		a, _ := get(matched[i], models.FieldID)
		b, _ := get(matched[j], models.FieldID)
		return compare(a, b) < 0
	})

	total := len(matched)
	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []T{}, total, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func matchAll[T any](rec T, preds []models.Predicate, get fieldFunc[T]) (bool, error) {
	for _, p := range preds {
		v, ok := get(rec, p.Field)
		if !ok {
			return false, fmt.Errorf("unsupported filter field %q", p.Field)
		}
		m, err := match(v, p)
		if err != nil {
			return false, err
		}
		if !m {
			return false, nil
		}
	}
	return true, nil
}

func match(v any, p models.Predicate) (bool, error) {
	switch p.Op {
	case models.OpEq:
		return v != nil && compare(v, p.Value) == 0, nil
	case models.OpIn:
		if v == nil {
			return false, nil
		}
		switch set := p.Value.(type) {
		case []int64:
			id, ok := v.(int64)
			return ok && collections.Contains(set, id), nil
		case []string:
			s, ok := v.(string)
			return ok && collections.Contains(set, s), nil
		}
		return false, fmt.Errorf("unsupported value %T for %s in", p.Value, p.Field)
	case models.OpGte:
		return v != nil && compare(v, p.Value) >= 0, nil
	case models.OpLte:
		return v != nil && compare(v, p.Value) <= 0, nil
	case models.OpOverlaps:
		have, _ := v.([]int64)
		want, ok := p.Value.([]int64)
		if !ok {
			return false, fmt.Errorf("unsupported value %T for %s overlaps", p.Value, p.Field)
		}
		return collections.Overlaps(have, want), nil
	}
	return false, fmt.Errorf("unsupported operator %q", p.Op)
}

// compare orders two field values of the same kind. nil sorts after every
// value, matching Postgres' NULLS LAST for ascending order.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	switch x := a.(type) {
	case int64:
		y, _ := toInt64(b)
		return cmp.Compare(x, y)
	case float64:
		y, _ := b.(float64)
		return cmp.Compare(x, y)
	case string:
		y, _ := b.(string)
		return cmp.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	}
	return 0
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
