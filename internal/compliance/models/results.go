package models

// Summary is the KPI overview of a tenant's filtered audit portfolio.
type Summary struct {
	Audits            AuditStats     `json:"audits"`
	Findings          FindingStats   `json:"findings"`
	Actions           ActionStats    `json:"actions"`
	TopRiskyProcesses []RiskyProcess `json:"topRiskyProcesses"`
}

// AuditStats rolls up audits by status with their mean precomputed scores.
type AuditStats struct {
	Total                 int            `json:"total"`
	ByStatus              map[string]int `json:"byStatus"`
	AverageScore          float64        `json:"averageScore"`
	AverageConformityRate float64        `json:"averageConformityRate"`
}

// FindingStats counts findings by criticality and type.
type FindingStats struct {
	Total         int            `json:"total"`
	ByCriticality map[string]int `json:"byCriticality"`
	ByType        map[string]int `json:"byType"`
}

// ActionStats rolls up actions. AverageClosureTime is in whole days.
type ActionStats struct {
	Total              int            `json:"total"`
	ByStatus           map[string]int `json:"byStatus"`
	Overdue            int            `json:"overdueActions"`
	OverduePercentage  float64        `json:"overduePercentage"`
	AverageClosureTime int            `json:"averageClosureTime"`
}

// RiskyProcess is a process ranked by the criticality-weighted sum of its findings.
type RiskyProcess struct {
	ProcessID     int64  `json:"processId"`
	ProcessName   string `json:"processName"`
	RiskScore     int    `json:"riskScore"`
	FindingsCount int    `json:"findingsCount"`
}

// Funnel stage keys in order.
const (
	StageAudits           = "audits"
	StageFindings         = "findings"
	StageNonConformities  = "non_conformities"
	StageActions          = "actions"
	StageCompletedActions = "completed_actions"
)

// Funnel is the audit-to-closure conversion funnel.
type Funnel struct {
	Stages      []FunnelStage     `json:"stages"`
	Conversions FunnelConversions `json:"conversionRates"`
}

// FunnelStage is one stage count of the funnel.
type FunnelStage struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FunnelConversions holds stage-to-stage percentages, 0 to 100 rounded to one decimal.
type FunnelConversions struct {
	AuditsToFindings          float64 `json:"auditsToFindings"`
	FindingsToNonConformities float64 `json:"findingsToNonConformities"`
	NonConformitiesToActions  float64 `json:"nonConformitiesToActions"`
	ActionsToCompleted        float64 `json:"actionsToCompleted"`
}

// ProcessScore is the penalty-adjusted score of one process.
type ProcessScore struct {
	ProcessID        int64   `json:"processId"`
	ProcessName      string  `json:"processName"`
	BaseScore        float64 `json:"baseScore"`
	AuditsCount      int     `json:"auditsCount"`
	NCMajorCount     int     `json:"ncMajorCount"`
	NCMinorCount     int     `json:"ncMinorCount"`
	ObservationCount int     `json:"observationCount"`
	OverdueActions   int     `json:"overdueActions"`
	NCMajorPenalty   float64 `json:"ncMajorPenalty"`
	NCMinorPenalty   float64 `json:"ncMinorPenalty"`
	OverduePenalty   float64 `json:"overduePenalty"`
	TotalPenalty     float64 `json:"totalPenalty"`
	FinalScore       float64 `json:"finalScore"`
}

// Radar is the seven-dimension compliance view.
type Radar struct {
	Dimensions []DimensionScore `json:"dimensions"`
	Overall    float64          `json:"overallScore"`
}

// DimensionScore scores one radar dimension, clamped to [0, 100].
// Question counts are coarse estimates derived from audit coverage.
type DimensionScore struct {
	Key                string  `json:"key"`
	Label              string  `json:"label"`
	ProcessIDs         []int64 `json:"processIds"`
	BaseScore          float64 `json:"baseScore"`
	Score              float64 `json:"score"`
	AuditsCount        int     `json:"auditsCount"`
	FindingsCount      int     `json:"findingsCount"`
	NCMajorCount       int     `json:"ncMajorCount"`
	NCMinorCount       int     `json:"ncMinorCount"`
	Summary            string  `json:"summary"`
	EstimatedQuestions int     `json:"estimatedQuestions"`
	EstimatedCompliant int     `json:"estimatedCompliant"`
}

// Timeseries is the bucketed trend of audits, findings and actions.
type Timeseries struct {
	Granularity Granularity        `json:"granularity"`
	Buckets     []TimeseriesBucket `json:"buckets"`
}

// TimeseriesBucket holds the KPIs of one month or week bucket.
type TimeseriesBucket struct {
	Period           string  `json:"period"`
	AuditsCount      int     `json:"auditsCount"`
	AverageScore     float64 `json:"averageScore"`
	ConformityRate   float64 `json:"conformityRate"`
	FindingsCount    int     `json:"findingsCount"`
	NCMajorCount     int     `json:"ncMajorCount"`
	NCMinorCount     int     `json:"ncMinorCount"`
	ActionsCreated   int     `json:"actionsCreated"`
	ActionsCompleted int     `json:"actionsCompleted"`
}

// Heatmap is the process by criticality finding matrix.
type Heatmap struct {
	Rows            []HeatmapRow    `json:"rows"`
	ColumnTotals    CriticalityCell `json:"columnTotals"`
	Total           int             `json:"total"`
	UnassignedCount int             `json:"unassignedCount"`
}

// CriticalityCell counts findings per criticality.
type CriticalityCell struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Add increments the count for c. Unknown criticalities are ignored.
func (c *CriticalityCell) Add(crit Criticality) {
	switch crit {
	case CriticalityCritical:
		c.Critical++
	case CriticalityHigh:
		c.High++
	case CriticalityMedium:
		c.Medium++
	case CriticalityLow:
		c.Low++
	}
}

// Sum returns the row total.
func (c CriticalityCell) Sum() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// HeatmapRow is one process row of the heatmap.
type HeatmapRow struct {
	ProcessID   int64  `json:"processId"`
	ProcessName string `json:"processName"`
	CriticalityCell
	Total int `json:"total"`
}

// Suggestion is a prioritised remediation proposal for a low-scoring process.
type Suggestion struct {
	ProcessID          int64               `json:"processId"`
	ProcessName        string              `json:"processName"`
	Score              float64             `json:"score"`
	Priority           Criticality         `json:"priority"`
	Issue              string              `json:"issue"`
	RecommendedActions []RecommendedAction `json:"recommendedActions"`
	Rationale          string              `json:"rationale"`
}

// ActionType distinguishes corrective from preventive recommendations.
type ActionType string

const (
	ActionTypeCorrective ActionType = "corrective"
	ActionTypePreventive ActionType = "preventive"
)

// RecommendedAction is a templated action proposal.
type RecommendedAction struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ActionType       ActionType `json:"actionType"`
	OwnerRole        string     `json:"suggestedOwnerRole"`
	DeadlineDays     int        `json:"suggestedDeadlineDays"`
	ExpectedEvidence []string   `json:"expectedEvidence"`
}

// Page is one page of drilldown rows.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// FindingRow is a drilldown finding enriched with display names.
type FindingRow struct {
	Finding
	ProcessName string `json:"processName,omitempty"`
	AuditTitle  string `json:"auditTitle"`
}

// ActionRow is a drilldown action enriched with its finding and process.
type ActionRow struct {
	Action
	FindingTitle string `json:"findingTitle"`
	ProcessID    *int64 `json:"processId"`
	ProcessName  string `json:"processName,omitempty"`
	Overdue      bool   `json:"overdue"`
}

// AuditRow is a drilldown audit enriched with site, process and referential names.
type AuditRow struct {
	Audit
	SiteName         string   `json:"siteName,omitempty"`
	ProcessNames     []string `json:"processNames"`
	ReferentialNames []string `json:"referentialNames"`
}

// DrilldownResult is the polymorphic drilldown response. Data holds FindingRow,
// ActionRow or AuditRow values depending on Kind.
type DrilldownResult struct {
	Kind DrilldownKind `json:"kind"`
	Page[any]
}
