package compliance

import (
	"sort"

	"qara/internal/compliance/models"
)

// Heatmap counts findings per process and criticality in one pass. Rows are
// ordered by process id; findings without a process are only counted.
func (e *Engine) Heatmap(d Dataset) models.Heatmap {
	rows := make(map[int64]*models.HeatmapRow)
	hm := models.Heatmap{Rows: []models.HeatmapRow{}}

	for _, f := range d.Findings {
		if f.ProcessID == nil {
			hm.UnassignedCount++
			continue
		}
		id := *f.ProcessID
		row, ok := rows[id]
		if !ok {
			row = &models.HeatmapRow{ProcessID: id, ProcessName: d.processName(id)}
			rows[id] = row
		}
		row.Add(f.Criticality)
		hm.ColumnTotals.Add(f.Criticality)
	}

	for _, row := range rows {
		row.Total = row.Sum()
		hm.Rows = append(hm.Rows, *row)
	}
	sort.Slice(hm.Rows, func(i, j int) bool {
		return hm.Rows[i].ProcessID < hm.Rows[j].ProcessID
	})
	hm.Total = hm.ColumnTotals.Sum()
	return hm
}
