package compliance

import (
	"math"
	"sort"

	"qara/internal/compliance/models"
)

// processTally accumulates per-process inputs shared by scoring and suggestions.
type processTally struct {
	scores       []*float64
	audits       int
	ncMajor      int
	ncMinor      int
	observations int
	overdue      int
}

// Scores computes the penalty-adjusted score of every process referenced by an
// in-scope audit or finding, worst first, ties by ascending process id.
//
// The base score is the mean audit score over audits covering the process, an
// unscored audit counting as 0, and falls back to 0 when no audit covers it. The final score is
// floored at 0 and is not capped.
func (e *Engine) Scores(d Dataset) []models.ProcessScore {
	tallies := e.tally(d)

	out := make([]models.ProcessScore, 0, len(tallies))
	for id, t := range tallies {
		base, _ := meanCountingNull(t.scores)
		majorPenalty := float64(t.ncMajor) * e.cfg.Penalties.NCMajor
		minorPenalty := float64(t.ncMinor) * e.cfg.Penalties.NCMinor
		overduePenalty := float64(t.overdue) * e.cfg.Penalties.Overdue
		total := majorPenalty + minorPenalty + overduePenalty

		out = append(out, models.ProcessScore{
			ProcessID:        id,
			ProcessName:      d.processName(id),
			BaseScore:        round1(base),
			AuditsCount:      t.audits,
			NCMajorCount:     t.ncMajor,
			NCMinorCount:     t.ncMinor,
			ObservationCount: t.observations,
			OverdueActions:   t.overdue,
			NCMajorPenalty:   majorPenalty,
			NCMinorPenalty:   minorPenalty,
			OverduePenalty:   overduePenalty,
			TotalPenalty:     total,
			FinalScore:       round1(math.Max(0, base-total)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalScore != out[j].FinalScore {
			return out[i].FinalScore < out[j].FinalScore
		}
		return out[i].ProcessID < out[j].ProcessID
	})
	return out
}

func (e *Engine) tally(d Dataset) map[int64]*processTally {
	tallies := make(map[int64]*processTally)
	get := func(id int64) *processTally {
		t, ok := tallies[id]
		if !ok {
			t = &processTally{}
			tallies[id] = t
		}
		return t
	}

	for _, a := range d.Audits {
		seen := make(map[int64]struct{}, len(a.ProcessIDs))
		for _, id := range a.ProcessIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			t := get(id)
			t.audits++
			t.scores = append(t.scores, a.Score)
		}
	}

	processOfFinding := make(map[int64]int64, len(d.Findings))
	for _, f := range d.Findings {
		if f.ProcessID == nil {
			continue
		}
		processOfFinding[f.ID] = *f.ProcessID
		t := get(*f.ProcessID)
		switch f.FindingType {
		case models.FindingNCMajor:
			t.ncMajor++
		case models.FindingNCMinor:
			t.ncMinor++
		case models.FindingObservation:
			t.observations++
		}
	}

	for _, a := range d.Actions {
		if !a.IsOverdue(d.Now) {
			continue
		}
		if id, ok := processOfFinding[a.FindingID]; ok {
			tallies[id].overdue++
		}
	}
	return tallies
}
