package memory

import (
	"time"

	"qara/internal/compliance/models"
)

// DemoTenantID owns every record of the demo dataset.
const DemoTenantID int64 = 1

// Catalog returns the process and referential catalog shared by all tenants.
func Catalog() ([]models.Process, []models.Referential) {
	processes := []models.Process{
		{ID: 1, Code: "GOV-01", Name: "Management responsibility"},
		{ID: 2, Code: "GOV-02", Name: "Management review"},
		{ID: 3, Code: "RSK-01", Name: "Risk management"},
		{ID: 4, Code: "RSK-02", Name: "Clinical evaluation"},
		{ID: 5, Code: "DES-01", Name: "Design and development planning"},
		{ID: 6, Code: "DES-02", Name: "Design verification and validation"},
		{ID: 7, Code: "PRD-01", Name: "Production control"},
		{ID: 8, Code: "PRD-02", Name: "Infrastructure and work environment"},
		{ID: 9, Code: "SUP-01", Name: "Purchasing"},
		{ID: 10, Code: "SUP-02", Name: "Supplier evaluation"},
		{ID: 11, Code: "PMS-01", Name: "Post-market surveillance"},
		{ID: 12, Code: "PMS-02", Name: "Vigilance and complaints"},
		{ID: 13, Code: "DOC-01", Name: "Document control"},
		{ID: 14, Code: "DOC-02", Name: "Record control"},
	}
	referentials := []models.Referential{
		{ID: 1, Code: "ISO9001", Name: "ISO 9001:2015"},
		{ID: 2, Code: "ISO13485", Name: "ISO 13485:2016"},
		{ID: 3, Code: "MDR", Name: "Regulation (EU) 2017/745 (MDR)"},
	}
	return processes, referentials
}

// DemoDataset builds a small, realistic portfolio for DemoTenantID with dates
// relative to now so trailing-window views are populated.
func DemoDataset(now time.Time) Dataset {
	processes, referentials := Catalog()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		t := today.AddDate(0, 0, -n)
		return &t
	}
	score := func(v float64) *float64 { return &v }
	site := func(v int64) *int64 { return &v }
	proc := func(v int64) *int64 { return &v }

	audits := []models.Audit{
		{ID: 1, UserID: DemoTenantID, SiteID: site(1), Title: "ISO 13485 internal audit", Status: models.AuditClosed,
			EconomicRole: models.RoleManufacturer, StartDate: daysAgo(300), EndDate: daysAgo(298),
			Score: score(82), ConformityRate: score(88), ProcessIDs: []int64{1, 2, 13, 14}, ReferentialIDs: []int64{2}},
		{ID: 2, UserID: DemoTenantID, SiteID: site(1), Title: "MDR technical documentation", Status: models.AuditCompleted,
			EconomicRole: models.RoleManufacturer, StartDate: daysAgo(210), EndDate: daysAgo(207),
			Score: score(64), ConformityRate: score(71), ProcessIDs: []int64{3, 4, 5, 6}, ReferentialIDs: []int64{3}},
		{ID: 3, UserID: DemoTenantID, SiteID: site(2), Title: "Production site audit", Status: models.AuditCompleted,
			EconomicRole: models.RoleManufacturer, StartDate: daysAgo(120), EndDate: daysAgo(119),
			Score: score(75), ConformityRate: score(80), ProcessIDs: []int64{7, 8}, ReferentialIDs: []int64{1, 2}},
		{ID: 4, UserID: DemoTenantID, SiteID: site(2), Title: "Supplier audit", Status: models.AuditInProgress,
			EconomicRole: models.RoleImporter, StartDate: daysAgo(45),
			ProcessIDs: []int64{9, 10}, ReferentialIDs: []int64{2}},
		{ID: 5, UserID: DemoTenantID, SiteID: site(1), Title: "Post-market surveillance review", Status: models.AuditCompleted,
			EconomicRole: models.RoleDistributor, StartDate: daysAgo(20), EndDate: daysAgo(18),
			Score: score(58), ConformityRate: score(66), ProcessIDs: []int64{11, 12}, ReferentialIDs: []int64{3}},
		{ID: 6, UserID: DemoTenantID, Title: "Next surveillance audit", Status: models.AuditDraft,
			ProcessIDs: []int64{1, 3, 11}, ReferentialIDs: []int64{2, 3}},
	}

	at := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	findings := []models.Finding{
		{ID: 1, AuditID: 1, ProcessID: proc(13), FindingType: models.FindingNCMinor, Criticality: models.CriticalityMedium,
			Status: models.FindingClosed, Clause: "4.2.4", Title: "Obsolete procedure in use", CreatedAt: at(298)},
		{ID: 2, AuditID: 1, ProcessID: proc(2), FindingType: models.FindingObservation, Criticality: models.CriticalityLow,
			Status: models.FindingClosed, Clause: "5.6", Title: "Review inputs incomplete", CreatedAt: at(298)},
		{ID: 3, AuditID: 2, ProcessID: proc(3), FindingType: models.FindingNCMajor, Criticality: models.CriticalityCritical,
			Status: models.FindingInProgress, Clause: "Annex I GSPR 3", Title: "Risk management file not maintained", CreatedAt: at(207)},
		{ID: 4, AuditID: 2, ProcessID: proc(4), FindingType: models.FindingNCMinor, Criticality: models.CriticalityHigh,
			Status: models.FindingOpen, Clause: "Art. 61", Title: "Clinical evaluation plan outdated", CreatedAt: at(207)},
		{ID: 5, AuditID: 2, ProcessID: proc(6), FindingType: models.FindingOFI, Criticality: models.CriticalityLow,
			Status: models.FindingOpen, Clause: "7.3.7", Title: "Validation protocol template", CreatedAt: at(207)},
		{ID: 6, AuditID: 3, ProcessID: proc(7), FindingType: models.FindingNCMinor, Criticality: models.CriticalityMedium,
			Status: models.FindingClosed, Clause: "7.5.1", Title: "Line clearance not recorded", CreatedAt: at(119)},
		{ID: 7, AuditID: 3, ProcessID: proc(8), FindingType: models.FindingPositive, Criticality: models.CriticalityLow,
			Status: models.FindingClosed, Clause: "6.4", Title: "Clean room monitoring", CreatedAt: at(119)},
		{ID: 8, AuditID: 5, ProcessID: proc(11), FindingType: models.FindingNCMajor, Criticality: models.CriticalityHigh,
			Status: models.FindingOpen, Clause: "Art. 83", Title: "No PMS plan for class IIa devices", CreatedAt: at(18)},
		{ID: 9, AuditID: 5, ProcessID: proc(12), FindingType: models.FindingNCMinor, Criticality: models.CriticalityMedium,
			Status: models.FindingOpen, Clause: "Art. 87", Title: "Vigilance reporting delays", CreatedAt: at(18)},
		{ID: 10, AuditID: 5, FindingType: models.FindingObservation, Criticality: models.CriticalityLow,
			Status: models.FindingOpen, Clause: "8.2.2", Title: "Complaint form wording", CreatedAt: at(18)},
	}

	actions := []models.Action{
		{ID: 1, FindingID: 1, Title: "Withdraw obsolete procedure", Status: models.ActionVerified, Priority: models.CriticalityMedium,
			DueDate: daysAgo(260), CompletedAt: daysAgo(280), CreatedAt: at(297)},
		{ID: 2, FindingID: 3, Title: "Update risk management file", Status: models.ActionInProgress, Priority: models.CriticalityCritical,
			DueDate: daysAgo(30), CreatedAt: at(205)},
		{ID: 3, FindingID: 4, Title: "Revise clinical evaluation plan", Status: models.ActionOpen, Priority: models.CriticalityHigh,
			DueDate: daysAgo(-30), CreatedAt: at(205)},
		{ID: 4, FindingID: 6, Title: "Add line clearance checklist", Status: models.ActionCompleted, Priority: models.CriticalityMedium,
			DueDate: daysAgo(60), CompletedAt: daysAgo(100), CreatedAt: at(118)},
		{ID: 5, FindingID: 8, Title: "Write PMS plan", Status: models.ActionOpen, Priority: models.CriticalityHigh,
			DueDate: daysAgo(-45), CreatedAt: at(17)},
		{ID: 6, FindingID: 9, Title: "Vigilance training", Status: models.ActionOpen, Priority: models.CriticalityMedium,
			DueDate: daysAgo(2), CreatedAt: at(17)},
	}

	return Dataset{
		Processes:    processes,
		Referentials: referentials,
		Sites: []models.Site{
			{ID: 1, UserID: DemoTenantID, Name: "Headquarters"},
			{ID: 2, UserID: DemoTenantID, Name: "Production plant"},
		},
		Audits:   audits,
		Findings: findings,
		Actions:  actions,
	}
}

// NewDemo returns a store loaded with DemoDataset.
func NewDemo(now time.Time) *Store {
	s := New()
	s.Load(DemoDataset(now))
	return s
}
