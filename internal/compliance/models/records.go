package models

import "time"

// Audit is a compliance audit of one tenant's organisation. Score and
// ConformityRate are computed by the audit workflow and only read here.
type Audit struct {
	ID             int64        `json:"id"`
	UserID         int64        `json:"userId"`
	SiteID         *int64       `json:"siteId"`
	Title          string       `json:"title"`
	Status         AuditStatus  `json:"status"`
	EconomicRole   EconomicRole `json:"economicRole,omitempty"`
	StartDate      *time.Time   `json:"startDate"`
	EndDate        *time.Time   `json:"endDate"`
	Score          *float64     `json:"score"`
	ConformityRate *float64     `json:"conformityRate"`
	ProcessIDs     []int64      `json:"processIds"`
	ReferentialIDs []int64      `json:"referentialIds"`
}

// CoversProcess reports whether processID is in the audit's process set.
func (a Audit) CoversProcess(processID int64) bool {
	for _, id := range a.ProcessIDs {
		if id == processID {
			return true
		}
	}
	return false
}

// Finding is a non-conformity, observation or improvement opportunity raised during an audit.
type Finding struct {
	ID          int64         `json:"id"`
	AuditID     int64         `json:"auditId"`
	ProcessID   *int64        `json:"processId"`
	FindingType FindingType   `json:"findingType"`
	Criticality Criticality   `json:"criticality"`
	Status      FindingStatus `json:"status"`
	Clause      string        `json:"clause"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Action is a corrective or preventive task raised against a finding.
type Action struct {
	ID          int64        `json:"id"`
	FindingID   int64        `json:"findingId"`
	Title       string       `json:"title"`
	Status      ActionStatus `json:"status"`
	Priority    Criticality  `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// IsOverdue reports whether the due date has passed and the action is still actionable.
func (a Action) IsOverdue(now time.Time) bool {
	if a.DueDate == nil || a.Status.IsTerminal() {
		return false
	}
	return a.DueDate.Before(now)
}

// Process is an entry of the fixed, tenant-independent process catalog.
type Process struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// Referential is a regulatory standard an audit is performed against (ISO 13485, MDR, ...).
type Referential struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// Site is a physical location belonging to a tenant.
type Site struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
}
