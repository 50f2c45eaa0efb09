package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize_TenantPredicateFirst(t *testing.T) {
	preds, err := Normalize(models.FilterCriteria{
		TenantID:    7,
		Criticality: "high",
		AuditStatus: "closed",
	})
	require.NoError(t, err)

	require.NotEmpty(t, preds)
	assert.Equal(t, models.Eq(models.EntityAudit, models.FieldUserID, int64(7)), preds[0])
}

func TestNormalize_AllSentinelIsAbsent(t *testing.T) {
	withAll, err := Normalize(models.FilterCriteria{
		TenantID:     7,
		AuditStatus:  "all",
		Criticality:  "ALL",
		EconomicRole: " all ",
	})
	require.NoError(t, err)

	bare, err := Normalize(models.FilterCriteria{TenantID: 7})
	require.NoError(t, err)

	assert.Equal(t, bare, withAll)
	assert.Len(t, bare, 1)
}

func TestNormalize_Refinements(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	preds, err := Normalize(models.FilterCriteria{
		TenantID:       7,
		SiteID:         ptr(int64(3)),
		AuditStatus:    " In_Progress ",
		Period:         &models.Period{Start: start, End: end},
		Criticality:    " High ",
		EconomicRole:   "Importer",
		ReferentialIDs: []int64{2, 5, 2},
	})
	require.NoError(t, err)

	audit := preds.For(models.EntityAudit)
	require.Len(t, audit, 7)
	assert.Equal(t, models.Eq(models.EntityAudit, models.FieldSiteID, int64(3)), audit[1])
	assert.Equal(t, models.Eq(models.EntityAudit, models.FieldStatus, "in_progress"), audit[2])
	assert.Equal(t, models.OpGte, audit[3].Op)
	assert.Equal(t, start, audit[3].Value)
	assert.Equal(t, models.OpLte, audit[4].Op)
	assert.Equal(t, end, audit[4].Value)
	assert.Equal(t, models.Eq(models.EntityAudit, models.FieldEconomicRole, "importer"), audit[5])
	assert.Equal(t, models.OpOverlaps, audit[6].Op)
	assert.Equal(t, []int64{2, 5}, audit[6].Value)

	finding := preds.For(models.EntityFinding)
	require.Len(t, finding, 1)
	assert.Equal(t, models.Eq(models.EntityFinding, models.FieldCriticality, "high"), finding[0])
}

func TestNormalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.FilterCriteria
	}{
		{name: "missing tenant", criteria: models.FilterCriteria{}},
		{name: "negative tenant", criteria: models.FilterCriteria{TenantID: -1}},
		{name: "unknown audit status", criteria: models.FilterCriteria{TenantID: 1, AuditStatus: "archived"}},
		{name: "unknown criticality", criteria: models.FilterCriteria{TenantID: 1, Criticality: "urgent"}},
		{name: "unknown economic role", criteria: models.FilterCriteria{TenantID: 1, EconomicRole: "reseller"}},
		{name: "zero site", criteria: models.FilterCriteria{TenantID: 1, SiteID: ptr(int64(0))}},
		{name: "negative referential", criteria: models.FilterCriteria{TenantID: 1, ReferentialIDs: []int64{3, -2}}},
		{
			name: "inverted period",
			criteria: models.FilterCriteria{TenantID: 1, Period: &models.Period{
				Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds, err := Normalize(tt.criteria)
			require.Error(t, err)
			assert.Nil(t, preds)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestNormalize_OpenEndedPeriod(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	preds, err := Normalize(models.FilterCriteria{TenantID: 1, Period: &models.Period{Start: start}})
	require.NoError(t, err)

	audit := preds.For(models.EntityAudit)
	require.Len(t, audit, 2)
	assert.Equal(t, models.OpGte, audit[1].Op)
}

func TestEconomicRole_LegacyLabels(t *testing.T) {
	testutil.Given(t, "a French economic role label", func(t *testing.T) {
		testutil.When(t, "it carries accents and odd casing", func(t *testing.T) {
			role, ok, err := EconomicRole("  Représentant Autorisé ")

			testutil.Then(t, "it maps to the canonical role", func(t *testing.T) {
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, models.RoleAuthorizedRepresentative, role)
			})
		})
	})

	for raw, want := range map[string]models.EconomicRole{
		"fabricant":    models.RoleManufacturer,
		"Mandataire":   models.RoleAuthorizedRepresentative,
		"importateur":  models.RoleImporter,
		"DISTRIBUTEUR": models.RoleDistributor,
		"manufacturer": models.RoleManufacturer,
	} {
		role, ok, err := EconomicRole(raw)
		require.NoError(t, err, raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, role, raw)
	}
}
