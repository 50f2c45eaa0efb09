package compliance

import (
	"fmt"
	"math"

	"qara/internal/compliance/models"
)

// radarDefaultScore is used for a dimension no audit covers: nothing has been
// proven non-compliant there.
const radarDefaultScore = 100

// Radar scores each configured dimension. Unlike Scores, an uncovered
// dimension starts at 100, overdue actions carry no penalty, and the result
// is clamped to [0, 100].
func (e *Engine) Radar(d Dataset) models.Radar {
	dims := make([]models.DimensionScore, 0, len(e.cfg.Dimensions))
	var overall float64

	for _, dim := range e.cfg.Dimensions {
		ds := models.DimensionScore{
			Key:        dim.Key,
			Label:      dim.Label,
			ProcessIDs: append([]int64(nil), dim.ProcessIDs...),
		}

		var scores []*float64
		for _, a := range d.Audits {
			if !coversAny(a, dim) {
				continue
			}
			ds.AuditsCount++
			scores = append(scores, a.Score)
		}

		for _, f := range d.Findings {
			if f.ProcessID == nil || !dim.Covers(*f.ProcessID) {
				continue
			}
			ds.FindingsCount++
			switch f.FindingType {
			case models.FindingNCMajor:
				ds.NCMajorCount++
			case models.FindingNCMinor:
				ds.NCMinorCount++
			}
		}

		base := float64(radarDefaultScore)
		if ds.AuditsCount > 0 {
			base, _ = meanCountingNull(scores)
		}
		penalty := float64(ds.NCMajorCount)*e.cfg.Penalties.NCMajor + float64(ds.NCMinorCount)*e.cfg.Penalties.NCMinor

		ds.BaseScore = round1(base)
		ds.Score = round1(clamp(base-penalty, 0, 100))
		ds.Summary = dimensionSummary(ds)
		ds.EstimatedQuestions = ds.AuditsCount * e.cfg.QuestionsPerAudit
		ds.EstimatedCompliant = int(math.Round(float64(ds.EstimatedQuestions) * ds.Score / 100))

		overall += ds.Score
		dims = append(dims, ds)
	}

	radar := models.Radar{Dimensions: dims}
	if len(dims) > 0 {
		radar.Overall = round1(overall / float64(len(dims)))
	}
	return radar
}

func coversAny(a models.Audit, dim Dimension) bool {
	for _, id := range a.ProcessIDs {
		if dim.Covers(id) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func dimensionSummary(ds models.DimensionScore) string {
	if ds.AuditsCount == 0 && ds.FindingsCount == 0 {
		return "Not audited yet"
	}
	return fmt.Sprintf("%s, %s (%d major NC, %d minor NC)",
		plural(ds.AuditsCount, "audit"), plural(ds.FindingsCount, "finding"), ds.NCMajorCount, ds.NCMinorCount)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
