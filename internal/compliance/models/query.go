package models

// Entity names the record collection a predicate applies to.
type Entity string

const (
	EntityAudit   Entity = "audit"
	EntityFinding Entity = "finding"
	EntityAction  Entity = "action"
)

// Op is a predicate comparison operator.
type Op string

const (
	// OpEq matches a single value.
	OpEq Op = "eq"
	// OpIn matches membership in a []int64 or []string value.
	OpIn Op = "in"
	// OpGte and OpLte bound a time.Time range, inclusive.
	OpGte Op = "gte"
	OpLte Op = "lte"
	// OpOverlaps matches array columns sharing at least one element with a []int64 value.
	OpOverlaps Op = "overlaps"
)

// Field names, shared by every store. They match the read schema's column names.
const (
	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldSiteID         = "site_id"
	FieldStatus         = "status"
	FieldEconomicRole   = "economic_role"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldScore          = "score"
	FieldConformityRate = "conformity_rate"
	FieldReferentialIDs = "referential_ids"
	FieldAuditID        = "audit_id"
	FieldProcessID      = "process_id"
	FieldFindingType    = "finding_type"
	FieldCriticality    = "criticality"
	FieldCreatedAt      = "created_at"
	FieldFindingID      = "finding_id"
	FieldPriority       = "priority"
	FieldDueDate        = "due_date"
)

// Predicate is one AND-ed condition of a store query.
type Predicate struct {
	Entity Entity `json:"entity"`
	Field  string `json:"field"`
	Op     Op     `json:"op"`
	Value  any    `json:"value"`
}

// Predicates is an ordered predicate set. The normalizer always emits the
// tenant-ownership predicate first.
type Predicates []Predicate

// For returns the predicates that apply to entity, in order.
func (p Predicates) For(entity Entity) []Predicate {
	var out []Predicate
	for _, pred := range p {
		if pred.Entity == entity {
			out = append(out, pred)
		}
	}
	return out
}

// Has reports whether a predicate exists for entity and field.
func (p Predicates) Has(entity Entity, field string) bool {
	for _, pred := range p {
		if pred.Entity == entity && pred.Field == field {
			return true
		}
	}
	return false
}

// OrderBy is one sort key of a store query.
type OrderBy struct {
	Field string
	Desc  bool
}

// Query is a read request against one record collection. A zero Limit means no limit.
type Query struct {
	Predicates []Predicate
	OrderBy    []OrderBy
	Limit      int
	Offset     int
}

// Eq builds an equality predicate.
func Eq(entity Entity, field string, value any) Predicate {
	return Predicate{Entity: entity, Field: field, Op: OpEq, Value: value}
}

// In builds a membership predicate over ids.
func In(entity Entity, field string, ids []int64) Predicate {
	return Predicate{Entity: entity, Field: field, Op: OpIn, Value: ids}
}
