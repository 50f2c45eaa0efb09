package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"qara/internal/compliance/filter"
	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/requestcontext"
)

// sortSpec maps API sort keys to store fields for one drilldown kind.
type sortSpec struct {
	fields      map[string]string
	defaultKey  string
	defaultDesc bool
}

var sortSpecs = map[models.DrilldownKind]sortSpec{
	models.DrilldownFindings: {
		fields: map[string]string{
			"id":          models.FieldID,
			"createdAt":   models.FieldCreatedAt,
			"criticality": models.FieldCriticality,
			"status":      models.FieldStatus,
			"findingType": models.FieldFindingType,
			"processId":   models.FieldProcessID,
		},
		defaultKey:  "createdAt",
		defaultDesc: true,
	},
	models.DrilldownActions: {
		fields: map[string]string{
			"id":        models.FieldID,
			"dueDate":   models.FieldDueDate,
			"createdAt": models.FieldCreatedAt,
			"status":    models.FieldStatus,
			"priority":  models.FieldPriority,
		},
		defaultKey: "dueDate",
	},
	models.DrilldownAudits: {
		fields: map[string]string{
			"id":             models.FieldID,
			"startDate":      models.FieldStartDate,
			"endDate":        models.FieldEndDate,
			"score":          models.FieldScore,
			"conformityRate": models.FieldConformityRate,
			"status":         models.FieldStatus,
		},
		defaultKey:  "startDate",
		defaultDesc: true,
	},
}

// page is a validated pagination and ordering request.
type page struct {
	number int
	size   int
	order  models.OrderBy
}

func (p page) query(preds []models.Predicate) models.Query {
	return models.Query{
		Predicates: preds,
		OrderBy:    []models.OrderBy{p.order},
		Limit:      p.size,
		Offset:     (p.number - 1) * p.size,
	}
}

func (p page) result(kind models.DrilldownKind, rows []any, total int) *models.DrilldownResult {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.size - 1) / p.size
	}
	return &models.DrilldownResult{
		Kind: kind,
		Page: models.Page[any]{
			Data:       rows,
			Total:      total,
			Page:       p.number,
			PageSize:   p.size,
			TotalPages: totalPages,
		},
	}
}

func validatePage(req models.DrilldownRequest) (page, error) {
	spec, ok := sortSpecs[req.Kind]
	if !ok {
		return page{}, dErrors.Newf(dErrors.CodeValidation, "invalid drilldown kind: %q", req.Kind)
	}

	p := page{number: req.Page, size: req.PageSize}
	if p.number < 0 || p.size < 0 {
		return page{}, dErrors.New(dErrors.CodeValidation, "page and pageSize must not be negative")
	}
	if p.number == 0 {
		p.number = models.DefaultPage
	}
	if p.size == 0 {
		p.size = models.DefaultPageSize
	}
	if p.size > models.MaxPageSize {
		p.size = models.MaxPageSize
	}

	key := strings.TrimSpace(req.SortBy)
	if key == "" {
		key = spec.defaultKey
	}
	field, ok := spec.fields[key]
	if !ok {
		return page{}, dErrors.Newf(dErrors.CodeValidation, "invalid sortBy for %s: %q", req.Kind, req.SortBy)
	}

	desc := spec.defaultDesc
	if req.SortDir != "" {
		dir := models.SortDirection(strings.ToLower(strings.TrimSpace(req.SortDir)))
		if !dir.IsValid() {
			return page{}, dErrors.Newf(dErrors.CodeValidation, "invalid sortDir: %q", req.SortDir)
		}
		desc = dir == models.SortDesc
	}

	p.order = models.OrderBy{Field: field, Desc: desc}
	return p, nil
}

// Drilldown lists one page of findings, actions or audits with display names.
// Findings and actions are reached only through the tenant's audits.
func (s *Service) Drilldown(ctx context.Context, req models.DrilldownRequest) (*models.DrilldownResult, error) {
	return observe(ctx, s, opDrilldown, req.Filter.TenantID, func(ctx context.Context) (*models.DrilldownResult, error) {
		p, err := validatePage(req)
		if err != nil {
			return nil, err
		}
		refinements, err := refine(req)
		if err != nil {
			return nil, err
		}
		preds, err := filter.Normalize(req.Filter)
		if err != nil {
			return nil, err
		}

		switch req.Kind {
		case models.DrilldownAudits:
			return s.drillAudits(ctx, req, preds, refinements, p)
		case models.DrilldownFindings:
			return s.drillFindings(ctx, req, preds, refinements, p)
		default:
			return s.drillActions(ctx, req, preds, refinements, p)
		}
	})
}

// refine validates the kind-specific refinements and returns them as
// predicates on the listed entity. Refinements that do not apply to the kind
// are rejected.
func refine(req models.DrilldownRequest) ([]models.Predicate, error) {
	var preds []models.Predicate
	add := func(entity models.Entity, field string, value string, ok bool) {
		if ok {
			preds = append(preds, models.Eq(entity, field, value))
		}
	}

	switch req.Kind {
	case models.DrilldownAudits:
		if req.ProcessID != nil || req.FindingType != "" || req.Priority != "" {
			return nil, dErrors.New(dErrors.CodeValidation, "audit drilldown only accepts status refinements")
		}
		status, ok, err := filter.Enum("status", req.Status, models.AuditStatus.IsValid)
		if err != nil {
			return nil, err
		}
		add(models.EntityAudit, models.FieldStatus, string(status), ok)

	case models.DrilldownFindings:
		if req.Priority != "" {
			return nil, dErrors.New(dErrors.CodeValidation, "priority does not apply to findings")
		}
		if req.ProcessID != nil {
			if *req.ProcessID <= 0 {
				return nil, dErrors.New(dErrors.CodeValidation, "processId must be a positive integer")
			}
			preds = append(preds, models.Eq(models.EntityFinding, models.FieldProcessID, *req.ProcessID))
		}
		findingType, ok, err := filter.Enum("findingType", req.FindingType, models.FindingType.IsValid)
		if err != nil {
			return nil, err
		}
		add(models.EntityFinding, models.FieldFindingType, string(findingType), ok)
		status, ok, err := filter.Enum("status", req.Status, models.FindingStatus.IsValid)
		if err != nil {
			return nil, err
		}
		add(models.EntityFinding, models.FieldStatus, string(status), ok)

	case models.DrilldownActions:
		if req.ProcessID != nil || req.FindingType != "" {
			return nil, dErrors.New(dErrors.CodeValidation, "action drilldown only accepts status and priority refinements")
		}
		status, ok, err := filter.Enum("status", req.Status, models.ActionStatus.IsValid)
		if err != nil {
			return nil, err
		}
		add(models.EntityAction, models.FieldStatus, string(status), ok)
		priority, ok, err := filter.Enum("priority", req.Priority, models.Criticality.IsValid)
		if err != nil {
			return nil, err
		}
		add(models.EntityAction, models.FieldPriority, string(priority), ok)
	}
	return preds, nil
}

func emptyRows() []any {
	return []any{}
}

func (s *Service) drillAudits(ctx context.Context, req models.DrilldownRequest, preds models.Predicates, refinements []models.Predicate, p page) (*models.DrilldownResult, error) {
	auditPreds := append(preds.For(models.EntityAudit), refinements...)

	total, err := s.audits.CountAudits(ctx, models.Query{Predicates: auditPreds})
	if err != nil {
		return nil, translate(err, "failed to count audits")
	}
	if total == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	audits, err := s.audits.ListAudits(ctx, p.query(auditPreds))
	if err != nil {
		return nil, translate(err, "failed to list audits")
	}

	var processIDs, referentialIDs, siteIDs []int64
	for _, a := range audits {
		processIDs = append(processIDs, a.ProcessIDs...)
		referentialIDs = append(referentialIDs, a.ReferentialIDs...)
		if a.SiteID != nil {
			siteIDs = append(siteIDs, *a.SiteID)
		}
	}

	names, err := s.lookupNames(ctx, req.Filter.TenantID, processIDs, referentialIDs, siteIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]any, 0, len(audits))
	for _, a := range audits {
		row := models.AuditRow{
			Audit:            a,
			ProcessNames:     resolve(names.processes, a.ProcessIDs),
			ReferentialNames: resolve(names.referentials, a.ReferentialIDs),
		}
		if a.SiteID != nil {
			row.SiteName = names.sites[*a.SiteID]
		}
		rows = append(rows, row)
	}
	return p.result(req.Kind, rows, total), nil
}

func (s *Service) drillFindings(ctx context.Context, req models.DrilldownRequest, preds models.Predicates, refinements []models.Predicate, p page) (*models.DrilldownResult, error) {
	audits, err := s.tenantAudits(ctx, preds)
	if err != nil {
		return nil, err
	}
	if len(audits) == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	findingPreds := append([]models.Predicate{
		models.In(models.EntityFinding, models.FieldAuditID, auditIDs(audits)),
	}, preds.For(models.EntityFinding)...)
	findingPreds = append(findingPreds, refinements...)

	total, err := s.audits.CountFindings(ctx, models.Query{Predicates: findingPreds})
	if err != nil {
		return nil, translate(err, "failed to count findings")
	}
	if total == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	findings, err := s.audits.ListFindings(ctx, p.query(findingPreds))
	if err != nil {
		return nil, translate(err, "failed to list findings")
	}

	var processIDs []int64
	for _, f := range findings {
		if f.ProcessID != nil {
			processIDs = append(processIDs, *f.ProcessID)
		}
	}
	processes, err := s.processNames(ctx, processIDs)
	if err != nil {
		return nil, err
	}

	titles := make(map[int64]string, len(audits))
	for _, a := range audits {
		titles[a.ID] = a.Title
	}

	rows := make([]any, 0, len(findings))
	for _, f := range findings {
		row := models.FindingRow{Finding: f, AuditTitle: titles[f.AuditID]}
		if f.ProcessID != nil {
			row.ProcessName = processes[*f.ProcessID]
		}
		rows = append(rows, row)
	}
	return p.result(req.Kind, rows, total), nil
}

func (s *Service) drillActions(ctx context.Context, req models.DrilldownRequest, preds models.Predicates, refinements []models.Predicate, p page) (*models.DrilldownResult, error) {
	audits, err := s.tenantAudits(ctx, preds)
	if err != nil {
		return nil, err
	}
	if len(audits) == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	findings, err := s.findingsOf(ctx, auditIDs(audits), preds.For(models.EntityFinding))
	if err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	findingIDs := make([]int64, 0, len(findings))
	byID := make(map[int64]models.Finding, len(findings))
	for _, f := range findings {
		findingIDs = append(findingIDs, f.ID)
		byID[f.ID] = f
	}

	actionPreds := append([]models.Predicate{models.In(models.EntityAction, models.FieldFindingID, findingIDs)}, refinements...)

	total, err := s.audits.CountActions(ctx, models.Query{Predicates: actionPreds})
	if err != nil {
		return nil, translate(err, "failed to count actions")
	}
	if total == 0 {
		return p.result(req.Kind, emptyRows(), 0), nil
	}

	actions, err := s.audits.ListActions(ctx, p.query(actionPreds))
	if err != nil {
		return nil, translate(err, "failed to list actions")
	}

	var processIDs []int64
	for _, a := range actions {
		if pid := byID[a.FindingID].ProcessID; pid != nil {
			processIDs = append(processIDs, *pid)
		}
	}
	processes, err := s.processNames(ctx, processIDs)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	rows := make([]any, 0, len(actions))
	for _, a := range actions {
		f := byID[a.FindingID]
		row := models.ActionRow{
			Action:       a,
			FindingTitle: f.Title,
			ProcessID:    f.ProcessID,
			Overdue:      a.IsOverdue(now),
		}
		if f.ProcessID != nil {
			row.ProcessName = processes[*f.ProcessID]
		}
		rows = append(rows, row)
	}
	return p.result(req.Kind, rows, total), nil
}

// tenantAudits returns every audit matching the audit predicates, the root
// of transitive tenant scoping for findings and actions.
func (s *Service) tenantAudits(ctx context.Context, preds models.Predicates) ([]models.Audit, error) {
	audits, err := s.audits.ListAudits(ctx, models.Query{
		Predicates: preds.For(models.EntityAudit),
		OrderBy:    []models.OrderBy{{Field: models.FieldID}},
	})
	if err != nil {
		return nil, translate(err, "failed to load audits")
	}
	return audits, nil
}

func auditIDs(audits []models.Audit) []int64 {
	ids := make([]int64, len(audits))
	for i, a := range audits {
		ids[i] = a.ID
	}
	return ids
}

type displayNames struct {
	processes    map[int64]string
	referentials map[int64]string
	sites        map[int64]string
}

// lookupNames resolves the three catalogs concurrently; the lookups are independent.
func (s *Service) lookupNames(ctx context.Context, tenantID int64, processIDs, referentialIDs, siteIDs []int64) (displayNames, error) {
	names := displayNames{
		referentials: map[int64]string{},
		sites:        map[int64]string{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		names.processes, err = s.processNames(gctx, processIDs)
		return err
	})
	g.Go(func() error {
		if len(referentialIDs) == 0 {
			return nil
		}
		refs, err := s.catalog.ReferentialsByIDs(gctx, referentialIDs)
		if err != nil {
			return translate(err, "failed to load referentials")
		}
		for _, r := range refs {
			names.referentials[r.ID] = r.Name
		}
		return nil
	})
	g.Go(func() error {
		if len(siteIDs) == 0 {
			return nil
		}
		sites, err := s.catalog.SitesByIDs(gctx, tenantID, siteIDs)
		if err != nil {
			return translate(err, "failed to load sites")
		}
		for _, site := range sites {
			names.sites[site.ID] = site.Name
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return displayNames{}, err
	}
	return names, nil
}

// resolve maps ids to names, skipping ids missing from the catalog.
func resolve(names map[int64]string, ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}
