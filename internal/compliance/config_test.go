package compliance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qara/internal/compliance/models"
)

func TestDefaultScoringConfig_IsValid(t *testing.T) {
	cfg := DefaultScoringConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.Weights.Of(models.CriticalityCritical))
	assert.Equal(t, 50, cfg.Weights.Of(models.CriticalityHigh))
	assert.Equal(t, 25, cfg.Weights.Of(models.CriticalityMedium))
	assert.Equal(t, 10, cfg.Weights.Of(models.CriticalityLow))
	assert.Equal(t, 0, cfg.Weights.Of(models.Criticality("unknown")))
	assert.Len(t, cfg.Dimensions, RadarDimensionCount)
}

func TestParseScoringConfig_Overrides(t *testing.T) {
	cfg, err := ParseScoringConfig([]byte(`
penalties:
  nc_major: 30
  nc_minor: 10
  overdue_action: 2
top_risk_limit: 10
`))
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Penalties.NCMajor)
	assert.Equal(t, 2.0, cfg.Penalties.Overdue)
	assert.Equal(t, 10, cfg.TopRiskLimit)
	// untouched keys keep their defaults
	assert.Equal(t, 100, cfg.Weights.Critical)
	assert.Equal(t, 3, cfg.SuggestionLimit)
}

func TestParseScoringConfig_Empty(t *testing.T) {
	cfg, err := ParseScoringConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultScoringConfig(), cfg)
}

func TestParseScoringConfig_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "bonus: 3\n",
		"negative weight":    "criticality_weights:\n  high: -1\n",
		"negative penalty":   "penalties:\n  nc_minor: -5\n",
		"zero suggestions":   "suggestion_limit: 0\n",
		"six dimensions":     dimensionsYAML(6, false),
		"shared process ids": dimensionsYAML(7, true),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScoringConfig([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadScoringConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadScoringConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultScoringConfig(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yaml")
		require.NoError(t, os.WriteFile(path, []byte(dimensionsYAML(7, false)), 0o600))

		cfg, err := LoadScoringConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "dim0", cfg.Dimensions[0].Key)
		assert.Equal(t, []int64{101}, cfg.Dimensions[0].ProcessIDs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScoringConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func dimensionsYAML(n int, overlap bool) string {
	var b strings.Builder
	b.WriteString("dimensions:\n")
	for i := 0; i < n; i++ {
		id := 101 + i
		if overlap && i == n-1 {
			id = 101
		}
		fmt.Fprintf(&b, "  - key: dim%d\n    label: Dim\n    process_ids: [%d]\n", i, id)
	}
	return b.String()
}
