package models

import (
	"time"
)

// FilterAll is the sentinel equivalent to leaving an enum filter unset.
const FilterAll = "all"

// Period is an inclusive date range over audit start dates.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FilterCriteria is the caller's filter request. TenantID is mandatory; every
// other refinement is optional and may use FilterAll.
type FilterCriteria struct {
	TenantID       int64   `json:"tenantId"`
	SiteID         *int64  `json:"siteId,omitempty"`
	AuditStatus    string  `json:"auditStatus,omitempty"`
	Period         *Period `json:"period,omitempty"`
	Criticality    string  `json:"criticality,omitempty"`
	EconomicRole   string  `json:"economicRole,omitempty"`
	ReferentialIDs []int64 `json:"referentialIds,omitempty"`
}

// TimeseriesRequest adds bucket granularity to the common filters.
type TimeseriesRequest struct {
	Filter      FilterCriteria
	Granularity Granularity
}

// DrilldownRequest lists one record kind with kind-specific refinements.
// Refinements that do not apply to Kind are rejected.
type DrilldownRequest struct {
	Kind   DrilldownKind
	Filter FilterCriteria

	// findings
	ProcessID   *int64
	FindingType string
	// findings and actions and audits
	Status string
	// actions
	Priority string

	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
