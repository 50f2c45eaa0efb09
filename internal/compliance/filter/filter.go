// Package filter turns a caller's loosely specified FilterCriteria into the
// canonical, tenant-scoped predicate set every aggregation reads with.
//
// Normalization is pure: it never touches a store. Invalid enum values are
// rejected here so no store call is ever issued for a bad request.
package filter

import (
	"strings"

	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/platform/collections"
)

// Normalize validates c and returns its predicates. The first predicate is
// always the audit tenant-ownership predicate.
func Normalize(c models.FilterCriteria) (models.Predicates, error) {
	if c.TenantID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "tenant id is required")
	}

	preds := models.Predicates{
		models.Eq(models.EntityAudit, models.FieldUserID, c.TenantID),
	}

	if c.SiteID != nil {
		if *c.SiteID <= 0 {
			return nil, dErrors.New(dErrors.CodeValidation, "siteId must be a positive integer")
		}
		preds = append(preds, models.Eq(models.EntityAudit, models.FieldSiteID, *c.SiteID))
	}

	status, ok, err := Enum("auditStatus", c.AuditStatus, models.AuditStatus.IsValid)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, models.Eq(models.EntityAudit, models.FieldStatus, string(status)))
	}

	if c.Period != nil {
		periodPreds, err := period(*c.Period)
		if err != nil {
			return nil, err
		}
		preds = append(preds, periodPreds...)
	}

	role, ok, err := EconomicRole(c.EconomicRole)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, models.Eq(models.EntityAudit, models.FieldEconomicRole, string(role)))
	}

	if len(c.ReferentialIDs) > 0 {
		ids := collections.Dedupe(c.ReferentialIDs)
		for _, id := range ids {
			if id <= 0 {
				return nil, dErrors.New(dErrors.CodeValidation, "referentialIds must be positive integers")
			}
		}
		preds = append(preds, models.Predicate{
			Entity: models.EntityAudit,
			Field:  models.FieldReferentialIDs,
			Op:     models.OpOverlaps,
			Value:  ids,
		})
	}

	crit, ok, err := Enum("criticality", c.Criticality, models.Criticality.IsValid)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, models.Eq(models.EntityFinding, models.FieldCriticality, string(crit)))
	}

	return preds, nil
}

// Enum normalizes an enum filter value: trimmed, lowercased, and "all" or
// empty meaning unset. ok is false when the filter imposes no restriction.
func Enum[T ~string](field, raw string, valid func(T) bool) (value T, ok bool, err error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == models.FilterAll {
		return "", false, nil
	}
	if !valid(T(v)) {
		return "", false, dErrors.Newf(dErrors.CodeValidation, "invalid %s: %q", field, raw)
	}
	return T(v), true, nil
}

var roleAliases = map[string]models.EconomicRole{
	"fabricant":                 models.RoleManufacturer,
	"mandataire":                models.RoleAuthorizedRepresentative,
	"representant autorise":     models.RoleAuthorizedRepresentative,
	"authorized representative": models.RoleAuthorizedRepresentative,
	"importateur":               models.RoleImporter,
	"distributeur":              models.RoleDistributor,
}

var accentFolder = strings.NewReplacer("é", "e", "è", "e", "ê", "e", "à", "a", "ç", "c")

// EconomicRole normalizes an economic role filter. Besides the canonical
// values it accepts the French labels used in legacy audit titles.
func EconomicRole(raw string) (models.EconomicRole, bool, error) {
	v := accentFolder.Replace(strings.ToLower(strings.TrimSpace(raw)))
	if role, found := roleAliases[v]; found {
		return role, true, nil
	}
	return Enum("economicRole", v, models.EconomicRole.IsValid)
}

func period(p models.Period) ([]models.Predicate, error) {
	if p.Start.IsZero() && p.End.IsZero() {
		return nil, nil
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.Start.After(p.End) {
		return nil, dErrors.Newf(dErrors.CodeValidation, "period start %s is after end %s",
			p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}

	var preds []models.Predicate
	if !p.Start.IsZero() {
		preds = append(preds, models.Predicate{
			Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpGte, Value: p.Start,
		})
	}
	if !p.End.IsZero() {
		preds = append(preds, models.Predicate{
			Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpLte, Value: p.End,
		})
	}
	return preds, nil
}
