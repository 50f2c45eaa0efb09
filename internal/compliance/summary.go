package compliance

import (
	"math"
	"sort"
	"time"

	"qara/internal/compliance/models"
)

// Summary computes the KPI overview. An empty dataset yields zero counts,
// zero-filled breakdowns and an empty top-risk list.
func (e *Engine) Summary(d Dataset) models.Summary {
	return models.Summary{
		Audits:            auditStats(d.Audits),
		Findings:          findingStats(d.Findings),
		Actions:           actionStats(d.Actions, d.Now),
		TopRiskyProcesses: e.topRiskyProcesses(d),
	}
}

func auditStats(audits []models.Audit) models.AuditStats {
	stats := models.AuditStats{
		Total:    len(audits),
		ByStatus: zeroFilled(models.AuditStatuses),
	}
	scores := make([]*float64, 0, len(audits))
	rates := make([]*float64, 0, len(audits))
	for _, a := range audits {
		stats.ByStatus[string(a.Status)]++
		scores = append(scores, a.Score)
		rates = append(rates, a.ConformityRate)
	}
	avg, _ := meanOf(scores)
	stats.AverageScore = round1(avg)
	avg, _ = meanOf(rates)
	stats.AverageConformityRate = round1(avg)
	return stats
}

func findingStats(findings []models.Finding) models.FindingStats {
	stats := models.FindingStats{
		Total:         len(findings),
		ByCriticality: zeroFilled(models.Criticalities),
		ByType:        zeroFilled(models.FindingTypes),
	}
	for _, f := range findings {
		stats.ByCriticality[string(f.Criticality)]++
		stats.ByType[string(f.FindingType)]++
	}
	return stats
}

func actionStats(actions []models.Action, now time.Time) models.ActionStats {
	stats := models.ActionStats{
		Total:    len(actions),
		ByStatus: zeroFilled(models.ActionStatuses),
	}

	var closureDays float64
	var closed int
	for _, a := range actions {
		stats.ByStatus[string(a.Status)]++
		if a.IsOverdue(now) {
			stats.Overdue++
		}
		if a.CompletedAt != nil && !a.CreatedAt.IsZero() {
			closureDays += a.CompletedAt.Sub(a.CreatedAt).Hours() / 24
			closed++
		}
	}

	stats.OverduePercentage = percentage(stats.Overdue, stats.Total)
	if closed > 0 {
		stats.AverageClosureTime = int(math.Round(closureDays / float64(closed)))
	}
	return stats
}

// topRiskyProcesses ranks processes by the criticality-weighted sum of their
// findings, highest first, ties by ascending process id.
func (e *Engine) topRiskyProcesses(d Dataset) []models.RiskyProcess {
	byProcess := make(map[int64]*models.RiskyProcess)
	for _, f := range d.Findings {
		if f.ProcessID == nil {
			continue
		}
		id := *f.ProcessID
		rp, ok := byProcess[id]
		if !ok {
			rp = &models.RiskyProcess{ProcessID: id, ProcessName: d.processName(id)}
			byProcess[id] = rp
		}
		rp.RiskScore += e.cfg.Weights.Of(f.Criticality)
		rp.FindingsCount++
	}

	ranked := make([]models.RiskyProcess, 0, len(byProcess))
	for _, rp := range byProcess {
		ranked = append(ranked, *rp)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RiskScore != ranked[j].RiskScore {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return ranked[i].ProcessID < ranked[j].ProcessID
	})

	if len(ranked) > e.cfg.TopRiskLimit {
		ranked = ranked[:e.cfg.TopRiskLimit]
	}
	return ranked
}
