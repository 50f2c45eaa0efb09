package sqlstore

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"qara/internal/compliance/models"
)

// table describes one readable table: its select list and the fields that
// may appear in predicates and ORDER BY.
type table struct {
	name    string
	columns string
	fields  map[string]struct{}
	// jsonArrays are legacy JSON-text columns. Predicates on them are applied
	// in Go after decoding.
	jsonArrays map[string]struct{}
}

func fieldSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var (
	auditsTable = table{
		name: "audits",
		columns: "id, user_id, site_id, title, status, economic_role, start_date, end_date, " +
			"score, conformity_rate, process_ids, referential_ids",
		fields: fieldSet(models.FieldID, models.FieldUserID, models.FieldSiteID, models.FieldStatus,
			models.FieldEconomicRole, models.FieldStartDate, models.FieldEndDate, models.FieldScore,
			models.FieldConformityRate),
		jsonArrays: fieldSet(models.FieldReferentialIDs),
	}
	findingsTable = table{
		name:    "findings",
		columns: "id, audit_id, process_id, finding_type, criticality, status, clause, title, description, created_at",
		fields: fieldSet(models.FieldID, models.FieldAuditID, models.FieldProcessID, models.FieldFindingType,
			models.FieldCriticality, models.FieldStatus, models.FieldCreatedAt),
	}
	actionsTable = table{
		name:    "actions",
		columns: "id, finding_id, title, status, priority, due_date, completed_at, created_at",
		fields: fieldSet(models.FieldID, models.FieldFindingID, models.FieldStatus, models.FieldPriority,
			models.FieldDueDate, models.FieldCreatedAt),
	}
)

// compiled is a query split into its SQL part and the residual predicates
// that have to be evaluated after decoding.
type compiled struct {
	where    string
	args     []any
	orderBy  string
	residual []models.Predicate
}

func (c compiled) hasResidual() bool {
	return len(c.residual) > 0
}

// compile turns predicates and ordering into a WHERE fragment using '?'
// placeholders. The caller rebinds for the driver.
func compile(t table, q models.Query) (compiled, error) {
	var (
		clauses []string
		out     compiled
	)

	for _, p := range q.Predicates {
		if _, ok := t.jsonArrays[p.Field]; ok {
			if p.Op != models.OpOverlaps {
				return compiled{}, fmt.Errorf("%s.%s only supports overlaps", t.name, p.Field)
			}
			out.residual = append(out.residual, p)
			continue
		}
		if _, ok := t.fields[p.Field]; !ok {
			return compiled{}, fmt.Errorf("unsupported filter field %s.%s", t.name, p.Field)
		}

		switch p.Op {
		case models.OpEq:
			clauses = append(clauses, p.Field+" = ?")
			out.args = append(out.args, p.Value)
		case models.OpGte:
			clauses = append(clauses, p.Field+" >= ?")
			out.args = append(out.args, p.Value)
		case models.OpLte:
			clauses = append(clauses, p.Field+" <= ?")
			out.args = append(out.args, p.Value)
		case models.OpIn:
			clause, args, err := inClause(p)
			if err != nil {
				return compiled{}, err
			}
			clauses = append(clauses, clause)
			out.args = append(out.args, args...)
		default:
			return compiled{}, fmt.Errorf("unsupported operator %q on %s.%s", p.Op, t.name, p.Field)
		}
	}

	if len(clauses) > 0 {
		out.where = " AND " + strings.Join(clauses, " AND ")
	}

	order := make([]string, 0, len(q.OrderBy)+1)
	byID := false
	for _, o := range q.OrderBy {
		if _, ok := t.fields[o.Field]; !ok {
			return compiled{}, fmt.Errorf("unsupported sort field %s.%s", t.name, o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		order = append(order, o.Field+" "+dir)
		byID = byID || o.Field == models.FieldID
	}
	if !byID {
		order = append(order, "id ASC")
	}
	out.orderBy = " ORDER BY " + strings.Join(order, ", ")

	return out, nil
}

// inClause expands a membership predicate. An empty set matches nothing.
func inClause(p models.Predicate) (string, []any, error) {
	var n int
	switch v := p.Value.(type) {
	case []int64:
		n = len(v)
	case []string:
		n = len(v)
	default:
		return "", nil, fmt.Errorf("unsupported value %T for %s in", p.Value, p.Field)
	}
	if n == 0 {
		return "1 = 0", nil, nil
	}
	return sqlx.In(p.Field+" IN (?)", p.Value)
}

func selectSQL(t table, c compiled) string {
	return "SELECT " + t.columns + " FROM " + t.name + " WHERE 1=1" + c.where + c.orderBy
}

func countSQL(t table, c compiled) string {
	return "SELECT COUNT(*) FROM " + t.name + " WHERE 1=1" + c.where
}
