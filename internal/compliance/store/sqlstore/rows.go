package sqlstore

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"qara/internal/compliance/models"
)

type auditRow struct {
	ID             int64           `db:"id"`
	UserID         int64           `db:"user_id"`
	SiteID         sql.NullInt64   `db:"site_id"`
	Title          string          `db:"title"`
	Status         string          `db:"status"`
	EconomicRole   sql.NullString  `db:"economic_role"`
	StartDate      sql.NullTime    `db:"start_date"`
	EndDate        sql.NullTime    `db:"end_date"`
	Score          sql.NullFloat64 `db:"score"`
	ConformityRate sql.NullFloat64 `db:"conformity_rate"`
	ProcessIDs     sql.NullString  `db:"process_ids"`
	ReferentialIDs sql.NullString  `db:"referential_ids"`
}

type findingRow struct {
	ID          int64          `db:"id"`
	AuditID     int64          `db:"audit_id"`
	ProcessID   sql.NullInt64  `db:"process_id"`
	FindingType string         `db:"finding_type"`
	Criticality string         `db:"criticality"`
	Status      string         `db:"status"`
	Clause      sql.NullString `db:"clause"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

type actionRow struct {
	ID          int64          `db:"id"`
	FindingID   int64          `db:"finding_id"`
	Title       string         `db:"title"`
	Status      string         `db:"status"`
	Priority    sql.NullString `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	CompletedAt sql.NullTime   `db:"completed_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r findingRow) toModel() models.Finding {
	return models.Finding{
		ID:          r.ID,
		AuditID:     r.AuditID,
		ProcessID:   nullInt(r.ProcessID),
		FindingType: models.FindingType(r.FindingType),
		Criticality: models.Criticality(r.Criticality),
		Status:      models.FindingStatus(r.Status),
		Clause:      r.Clause.String,
		Title:       r.Title,
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func (r actionRow) toModel() models.Action {
	return models.Action{
		ID:          r.ID,
		FindingID:   r.FindingID,
		Title:       r.Title,
		Status:      models.ActionStatus(r.Status),
		Priority:    models.Criticality(r.Priority.String),
		DueDate:     nullTime(r.DueDate),
		CompletedAt: nullTime(r.CompletedAt),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// decodeIDs reads a legacy JSON-text id array. Elements may be numbers or
// numeric strings. ok is false when the value is not a usable array, in
// which case ids is empty.
func decodeIDs(raw sql.NullString) (ids []int64, ok bool) {
	text := strings.TrimSpace(raw.String)
	if !raw.Valid || text == "" || text == "null" {
		return []int64{}, true
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return []int64{}, false
	}

	ids = make([]int64, 0, len(elems))
	for _, e := range elems {
		var n int64
		if err := json.Unmarshal(e, &n); err == nil {
			ids = append(ids, n)
			continue
		}
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			return []int64{}, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return []int64{}, false
		}
		ids = append(ids, n)
	}
	return ids, true
}
