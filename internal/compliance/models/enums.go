package models

// AuditStatus is the lifecycle state of an audit, owned by the audit workflow.
type AuditStatus string

const (
	AuditDraft      AuditStatus = "draft"
	AuditInProgress AuditStatus = "in_progress"
	AuditCompleted  AuditStatus = "completed"
	AuditClosed     AuditStatus = "closed"
	AuditCancelled  AuditStatus = "cancelled"
)

// AuditStatuses lists every audit status in display order.
var AuditStatuses = []AuditStatus{AuditDraft, AuditInProgress, AuditCompleted, AuditClosed, AuditCancelled}

// IsValid checks if the status is one of the supported enum values.
func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditDraft, AuditInProgress, AuditCompleted, AuditClosed, AuditCancelled:
		return true
	}
	return false
}

// FindingType classifies a finding. Only nc_major and nc_minor are non-conformities.
type FindingType string

const (
	FindingNCMajor     FindingType = "nc_major"
	FindingNCMinor     FindingType = "nc_minor"
	FindingObservation FindingType = "observation"
	FindingOFI         FindingType = "ofi"
	FindingPositive    FindingType = "positive"
)

// FindingTypes lists every finding type in display order.
var FindingTypes = []FindingType{FindingNCMajor, FindingNCMinor, FindingObservation, FindingOFI, FindingPositive}

// IsValid checks if the finding type is one of the supported enum values.
func (t FindingType) IsValid() bool {
	switch t {
	case FindingNCMajor, FindingNCMinor, FindingObservation, FindingOFI, FindingPositive:
		return true
	}
	return false
}

// IsNonConformity reports whether the finding is a major or minor non-conformity.
func (t FindingType) IsNonConformity() bool {
	return t == FindingNCMajor || t == FindingNCMinor
}

// Criticality ranks findings. Action priorities share the same scale.
type Criticality string

const (
	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
)

// Criticalities lists every criticality from most to least severe.
var Criticalities = []Criticality{CriticalityCritical, CriticalityHigh, CriticalityMedium, CriticalityLow}

// IsValid checks if the criticality is one of the supported enum values.
func (c Criticality) IsValid() bool {
	switch c {
	case CriticalityCritical, CriticalityHigh, CriticalityMedium, CriticalityLow:
		return true
	}
	return false
}

// FindingStatus is the lifecycle state of a finding.
type FindingStatus string

const (
	FindingOpen       FindingStatus = "open"
	FindingInProgress FindingStatus = "in_progress"
	FindingClosed     FindingStatus = "closed"
)

// FindingStatuses lists every finding status in display order.
var FindingStatuses = []FindingStatus{FindingOpen, FindingInProgress, FindingClosed}

// IsValid checks if the status is one of the supported enum values.
func (s FindingStatus) IsValid() bool {
	switch s {
	case FindingOpen, FindingInProgress, FindingClosed:
		return true
	}
	return false
}

// ActionStatus is the lifecycle state of a corrective or preventive action.
type ActionStatus string

const (
	ActionOpen       ActionStatus = "open"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionVerified   ActionStatus = "verified"
	ActionCancelled  ActionStatus = "cancelled"
)

// ActionStatuses lists every action status in display order.
var ActionStatuses = []ActionStatus{ActionOpen, ActionInProgress, ActionCompleted, ActionVerified, ActionCancelled}

// IsValid checks if the status is one of the supported enum values.
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionOpen, ActionInProgress, ActionCompleted, ActionVerified, ActionCancelled:
		return true
	}
	return false
}

// IsDone reports whether the action counts as completed (completed or verified).
func (s ActionStatus) IsDone() bool {
	return s == ActionCompleted || s == ActionVerified
}

// IsTerminal reports whether the action can no longer become overdue.
func (s ActionStatus) IsTerminal() bool {
	return s == ActionCompleted || s == ActionVerified || s == ActionCancelled
}

// EconomicRole is the operator role an audit was performed for under the MDR.
type EconomicRole string

const (
	RoleManufacturer             EconomicRole = "manufacturer"
	RoleAuthorizedRepresentative EconomicRole = "authorized_representative"
	RoleImporter                 EconomicRole = "importer"
	RoleDistributor              EconomicRole = "distributor"
)

// IsValid checks if the role is one of the supported enum values.
func (r EconomicRole) IsValid() bool {
	switch r {
	case RoleManufacturer, RoleAuthorizedRepresentative, RoleImporter, RoleDistributor:
		return true
	}
	return false
}

// Granularity selects the timeseries bucket width.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
)

// IsValid checks if the granularity is one of the supported enum values.
func (g Granularity) IsValid() bool {
	return g == GranularityMonth || g == GranularityWeek
}

// DrilldownKind selects which record type a drilldown lists.
type DrilldownKind string

const (
	DrilldownFindings DrilldownKind = "findings"
	DrilldownActions  DrilldownKind = "actions"
	DrilldownAudits   DrilldownKind = "audits"
)

// IsValid checks if the kind is one of the supported enum values.
func (k DrilldownKind) IsValid() bool {
	switch k {
	case DrilldownFindings, DrilldownActions, DrilldownAudits:
		return true
	}
	return false
}

// SortDirection orders drilldown rows.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the direction is asc or desc.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}
