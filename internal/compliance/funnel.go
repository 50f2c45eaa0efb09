package compliance

import "qara/internal/compliance/models"

// Funnel computes the five funnel stages and the conversion rate between each
// consecutive pair. Rates are capped at 100: one audit can yield many findings.
func (e *Engine) Funnel(d Dataset) models.Funnel {
	var ncs, completed int
	for _, f := range d.Findings {
		if f.FindingType.IsNonConformity() {
			ncs++
		}
	}
	for _, a := range d.Actions {
		if a.Status.IsDone() {
			completed++
		}
	}

	audits, findings, actions := len(d.Audits), len(d.Findings), len(d.Actions)

	return models.Funnel{
		Stages: []models.FunnelStage{
			{Key: models.StageAudits, Label: "Audits", Count: audits},
			{Key: models.StageFindings, Label: "Findings", Count: findings},
			{Key: models.StageNonConformities, Label: "Non-conformities", Count: ncs},
			{Key: models.StageActions, Label: "Actions", Count: actions},
			{Key: models.StageCompletedActions, Label: "Completed actions", Count: completed},
		},
		Conversions: models.FunnelConversions{
			AuditsToFindings:          conversionRate(findings, audits),
			FindingsToNonConformities: conversionRate(ncs, findings),
			NonConformitiesToActions:  conversionRate(actions, ncs),
			ActionsToCompleted:        conversionRate(completed, actions),
		},
	}
}

func conversionRate(stage, previous int) float64 {
	rate := percentage(stage, previous)
	if rate > 100 {
		return 100
	}
	return rate
}
