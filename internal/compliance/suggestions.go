package compliance

import (
	"fmt"
	"strings"

	"qara/internal/compliance/models"
)

// Suggestions proposes remediation for the worst-scoring processes, in the
// same worst-first order as Scores.
func (e *Engine) Suggestions(d Dataset) []models.Suggestion {
	scores := e.Scores(d)
	if len(scores) > e.cfg.SuggestionLimit {
		scores = scores[:e.cfg.SuggestionLimit]
	}

	out := make([]models.Suggestion, 0, len(scores))
	for _, ps := range scores {
		out = append(out, models.Suggestion{
			ProcessID:          ps.ProcessID,
			ProcessName:        ps.ProcessName,
			Score:              ps.FinalScore,
			Priority:           suggestionPriority(ps),
			Issue:              issueSummary(ps),
			RecommendedActions: recommendedActions(ps),
			Rationale:          rationale(ps, e.cfg.Penalties),
		})
	}
	return out
}

// suggestionPriority: any major NC is critical, more than two minor NCs is high.
func suggestionPriority(ps models.ProcessScore) models.Criticality {
	switch {
	case ps.NCMajorCount >= 1:
		return models.CriticalityCritical
	case ps.NCMinorCount > 2:
		return models.CriticalityHigh
	default:
		return models.CriticalityMedium
	}
}

func displayName(ps models.ProcessScore) string {
	if ps.ProcessName != "" {
		return ps.ProcessName
	}
	return fmt.Sprintf("process #%d", ps.ProcessID)
}

func issueSummary(ps models.ProcessScore) string {
	var parts []string
	if ps.NCMajorCount > 0 {
		parts = append(parts, countNoun(ps.NCMajorCount, "major non-conformity", "major non-conformities"))
	}
	if ps.NCMinorCount > 0 {
		parts = append(parts, countNoun(ps.NCMinorCount, "minor non-conformity", "minor non-conformities"))
	}
	if ps.ObservationCount > 0 {
		parts = append(parts, countNoun(ps.ObservationCount, "observation", "observations"))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Low compliance score (%.1f) on %s", ps.FinalScore, displayName(ps))
	}
	return fmt.Sprintf("%s recorded on %s", joinAnd(parts), displayName(ps))
}

func countNoun(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

func joinAnd(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func recommendedActions(ps models.ProcessScore) []models.RecommendedAction {
	var actions []models.RecommendedAction

	if ps.NCMajorCount > 0 {
		actions = append(actions, models.RecommendedAction{
			Title:        "Treat major non-conformities",
			Description:  fmt.Sprintf("Run a root cause analysis on the %d major non-conformities of %s, correct them and verify effectiveness.", ps.NCMajorCount, displayName(ps)),
			ActionType:   models.ActionTypeCorrective,
			OwnerRole:    "Quality manager",
			DeadlineDays: 30,
			ExpectedEvidence: []string{
				"Root cause analysis record",
				"Correction and corrective action plan",
				"Effectiveness verification record",
			},
		})
	}

	if ps.NCMinorCount > 0 {
		actions = append(actions, models.RecommendedAction{
			Title:        "Close minor non-conformities",
			Description:  fmt.Sprintf("Correct the %d minor non-conformities of %s and update the affected procedures.", ps.NCMinorCount, displayName(ps)),
			ActionType:   models.ActionTypeCorrective,
			OwnerRole:    "Process owner",
			DeadlineDays: 60,
			ExpectedEvidence: []string{
				"Updated procedure or work instruction",
				"Training record",
			},
		})
	}

	if ps.ObservationCount > 0 {
		actions = append(actions, models.RecommendedAction{
			Title:        "Address observations",
			Description:  fmt.Sprintf("Review the %d observations on %s and decide on preventive measures.", ps.ObservationCount, displayName(ps)),
			ActionType:   models.ActionTypePreventive,
			OwnerRole:    "Process owner",
			DeadlineDays: 90,
			ExpectedEvidence: []string{
				"Risk assessment update",
				"Management review minutes",
			},
		})
	}

	if ps.OverdueActions > 0 {
		actions = append(actions, models.RecommendedAction{
			Title:        "Clear overdue actions",
			Description:  fmt.Sprintf("%s past their due date on %s. Reschedule or complete them.", countNoun(ps.OverdueActions, "action is", "actions are"), displayName(ps)),
			ActionType:   models.ActionTypeCorrective,
			OwnerRole:    "Quality manager",
			DeadlineDays: 15,
			ExpectedEvidence: []string{
				"Action closure records",
				"Updated action plan",
			},
		})
	}

	if len(actions) == 0 {
		actions = append(actions, models.RecommendedAction{
			Title:        "Schedule a follow-up audit",
			Description:  fmt.Sprintf("No findings explain the low score of %s. Plan an audit to establish its compliance level.", displayName(ps)),
			ActionType:   models.ActionTypePreventive,
			OwnerRole:    "Internal auditor",
			DeadlineDays: 90,
			ExpectedEvidence: []string{
				"Audit plan",
				"Audit report",
			},
		})
	}

	return actions
}

func rationale(ps models.ProcessScore, p Penalties) string {
	return fmt.Sprintf("Base score %.1f - major NC penalty %.1f (%d x %g) - minor NC penalty %.1f (%d x %g) - overdue penalty %.1f (%d x %g) = %.1f",
		ps.BaseScore,
		ps.NCMajorPenalty, ps.NCMajorCount, p.NCMajor,
		ps.NCMinorPenalty, ps.NCMinorCount, p.NCMinor,
		ps.OverduePenalty, ps.OverdueActions, p.Overdue,
		ps.FinalScore,
	)
}
