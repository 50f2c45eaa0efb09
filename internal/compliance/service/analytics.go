package service

import (
	"context"

	"qara/internal/compliance"
	"qara/internal/compliance/filter"
	"qara/internal/compliance/models"
	"qara/pkg/requestcontext"
)

// aggregate loads the dataset for c and applies compute under op's instrumentation.
func aggregate[T any](ctx context.Context, s *Service, op string, c models.FilterCriteria, compute func(compliance.Dataset) T) (T, error) {
	return observe(ctx, s, op, c.TenantID, func(ctx context.Context) (T, error) {
		d, err := s.loadDataset(ctx, c)
		if err != nil {
			var zero T
			return zero, err
		}
		return compute(d), nil
	})
}

// Summary returns headline KPIs and the riskiest processes.
func (s *Service) Summary(ctx context.Context, c models.FilterCriteria) (models.Summary, error) {
	return aggregate(ctx, s, opSummary, c, s.engine.Summary)
}

// Funnel returns stage counts and conversion rates.
func (s *Service) Funnel(ctx context.Context, c models.FilterCriteria) (models.Funnel, error) {
	return aggregate(ctx, s, opFunnel, c, s.engine.Funnel)
}

// Scores returns penalty-adjusted process scores, worst first.
func (s *Service) Scores(ctx context.Context, c models.FilterCriteria) ([]models.ProcessScore, error) {
	return aggregate(ctx, s, opScores, c, s.engine.Scores)
}

// Radar returns the seven dimension scores.
func (s *Service) Radar(ctx context.Context, c models.FilterCriteria) (models.Radar, error) {
	return aggregate(ctx, s, opRadar, c, s.engine.Radar)
}

// Heatmap returns the process by criticality finding matrix.
func (s *Service) Heatmap(ctx context.Context, c models.FilterCriteria) (models.Heatmap, error) {
	return aggregate(ctx, s, opHeatmap, c, s.engine.Heatmap)
}

// Suggestions returns remediation suggestions for the worst processes.
func (s *Service) Suggestions(ctx context.Context, c models.FilterCriteria) ([]models.Suggestion, error) {
	return aggregate(ctx, s, opSuggestions, c, s.engine.Suggestions)
}

// Timeseries returns month or week buckets. Without a period filter the
// trailing twelve months ending at the request time are used.
func (s *Service) Timeseries(ctx context.Context, req models.TimeseriesRequest) (models.Timeseries, error) {
	return observe(ctx, s, opTimeseries, req.Filter.TenantID, func(ctx context.Context) (models.Timeseries, error) {
		granularity, ok, err := filter.Enum("granularity", string(req.Granularity), models.Granularity.IsValid)
		if err != nil {
			return models.Timeseries{}, err
		}
		if !ok {
			granularity = models.GranularityMonth
		}

		c := req.Filter
		if c.Period == nil {
			window := compliance.DefaultWindow(requestcontext.Now(ctx))
			c.Period = &window
		}

		d, err := s.loadDataset(ctx, c)
		if err != nil {
			return models.Timeseries{}, err
		}
		return s.engine.Timeseries(d, granularity), nil
	})
}
