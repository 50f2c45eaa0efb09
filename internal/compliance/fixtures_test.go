package compliance

import (
	"time"

	"qara/internal/compliance/models"
)

var testNow = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func audit(id int64, score *float64, processIDs ...int64) models.Audit {
	return models.Audit{
		ID:         id,
		UserID:     1,
		Title:      "Audit",
		Status:     models.AuditCompleted,
		Score:      score,
		StartDate:  day(2025, 3, 15),
		ProcessIDs: processIDs,
	}
}

func finding(id, auditID int64, processID *int64, ft models.FindingType, crit models.Criticality) models.Finding {
	return models.Finding{
		ID:          id,
		AuditID:     auditID,
		ProcessID:   processID,
		FindingType: ft,
		Criticality: crit,
		Status:      models.FindingOpen,
		CreatedAt:   testNow.AddDate(0, -1, 0),
	}
}

func action(id, findingID int64, status models.ActionStatus, due *time.Time) models.Action {
	return models.Action{
		ID:        id,
		FindingID: findingID,
		Status:    status,
		Priority:  models.CriticalityMedium,
		DueDate:   due,
		CreatedAt: testNow.AddDate(0, 0, -30),
	}
}
