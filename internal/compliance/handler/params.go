package handler

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/requestcontext"
)

// parseCriteria reads the common filter query parameters. Enum values are
// passed through untouched; the service validates them.
func parseCriteria(ctx context.Context, q url.Values) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		TenantID:     requestcontext.TenantID(ctx),
		AuditStatus:  q.Get("auditStatus"),
		Criticality:  q.Get("criticality"),
		EconomicRole: q.Get("economicRole"),
	}

	if raw := q.Get("siteId"); raw != "" && raw != models.FilterAll {
		id, err := parseID("siteId", raw)
		if err != nil {
			return models.FilterCriteria{}, err
		}
		c.SiteID = &id
	}

	start, err := parseDate("start", q.Get("start"))
	if err != nil {
		return models.FilterCriteria{}, err
	}
	end, err := parseDate("end", q.Get("end"))
	if err != nil {
		return models.FilterCriteria{}, err
	}
	if !start.IsZero() || !end.IsZero() {
		c.Period = &models.Period{Start: start, End: end}
	}

	if raw := q.Get("referentialIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID("referentialIds", part)
			if err != nil {
				return models.FilterCriteria{}, err
			}
			c.ReferentialIDs = append(c.ReferentialIDs, id)
		}
	}
	return c, nil
}

func parseDrilldown(q url.Values) (models.DrilldownRequest, error) {
	req := models.DrilldownRequest{
		FindingType: q.Get("findingType"),
		Status:      q.Get("status"),
		Priority:    q.Get("priority"),
		SortBy:      q.Get("sortBy"),
		SortDir:     q.Get("sortDir"),
	}

	var err error
	if req.Page, err = parseInt("page", q.Get("page")); err != nil {
		return models.DrilldownRequest{}, err
	}
	if req.PageSize, err = parseInt("pageSize", q.Get("pageSize")); err != nil {
		return models.DrilldownRequest{}, err
	}
	if raw := q.Get("processId"); raw != "" {
		id, err := parseID("processId", raw)
		if err != nil {
			return models.DrilldownRequest{}, err
		}
		req.ProcessID = &id
	}
	return req, nil
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "%s must be an integer", field)
	}
	return id, nil
}

func parseInt(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "%s must be an integer", field)
	}
	return n, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeBadRequest, "%s must be a date (YYYY-MM-DD)", field)
	}
	return t.UTC(), nil
}
