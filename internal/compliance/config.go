package compliance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"qara/internal/compliance/models"
)

// CriticalityWeights weight findings when ranking risky processes.
type CriticalityWeights struct {
	Critical int `yaml:"critical"`
	High     int `yaml:"high"`
	Medium   int `yaml:"medium"`
	Low      int `yaml:"low"`
}

// Of returns the weight of c; unknown criticalities weigh nothing.
func (w CriticalityWeights) Of(c models.Criticality) int {
	switch c {
	case models.CriticalityCritical:
		return w.Critical
	case models.CriticalityHigh:
		return w.High
	case models.CriticalityMedium:
		return w.Medium
	case models.CriticalityLow:
		return w.Low
	}
	return 0
}

// Penalties are subtracted from base scores per finding or overdue action.
type Penalties struct {
	NCMajor float64 `yaml:"nc_major"`
	NCMinor float64 `yaml:"nc_minor"`
	Overdue float64 `yaml:"overdue_action"`
}

// Dimension is one named radar axis grouping a disjoint set of processes.
type Dimension struct {
	Key        string  `yaml:"key"`
	Label      string  `yaml:"label"`
	ProcessIDs []int64 `yaml:"process_ids"`
}

// Covers reports whether processID belongs to the dimension.
func (d Dimension) Covers(processID int64) bool {
	for _, id := range d.ProcessIDs {
		if id == processID {
			return true
		}
	}
	return false
}

// RadarDimensionCount is the fixed number of radar axes.
const RadarDimensionCount = 7

// ScoringConfig holds every tunable of the scoring engine and radar mapper.
type ScoringConfig struct {
	Weights           CriticalityWeights `yaml:"criticality_weights"`
	Penalties         Penalties          `yaml:"penalties"`
	TopRiskLimit      int                `yaml:"top_risk_limit"`
	SuggestionLimit   int                `yaml:"suggestion_limit"`
	QuestionsPerAudit int                `yaml:"questions_per_audit"`
	Dimensions        []Dimension        `yaml:"dimensions"`
}

// DefaultScoringConfig returns the production weights and radar mapping.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights:           CriticalityWeights{Critical: 100, High: 50, Medium: 25, Low: 10},
		Penalties:         Penalties{NCMajor: 20, NCMinor: 10, Overdue: 5},
		TopRiskLimit:      5,
		SuggestionLimit:   3,
		QuestionsPerAudit: 10,
		Dimensions: []Dimension{
			{Key: "governance", Label: "Governance & Leadership", ProcessIDs: []int64{1, 2}},
			{Key: "risk_management", Label: "Risk Management", ProcessIDs: []int64{3, 4}},
			{Key: "design_development", Label: "Design & Development", ProcessIDs: []int64{5, 6}},
			{Key: "production", Label: "Production & Service Provision", ProcessIDs: []int64{7, 8}},
			{Key: "supplier_management", Label: "Supplier Management", ProcessIDs: []int64{9, 10}},
			{Key: "post_market", Label: "Post-Market Surveillance", ProcessIDs: []int64{11, 12}},
			{Key: "documentation", Label: "Documentation & Records", ProcessIDs: []int64{13, 14}},
		},
	}
}

// LoadScoringConfig reads a YAML override on top of the defaults. Unknown keys are rejected.
func LoadScoringConfig(path string) (ScoringConfig, error) {
	cfg := DefaultScoringConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ScoringConfig{}, fmt.Errorf("read scoring config: %w", err)
	}
	return ParseScoringConfig(raw)
}

// ParseScoringConfig decodes YAML on top of the defaults and validates the result.
func ParseScoringConfig(raw []byte) (ScoringConfig, error) {
	cfg := DefaultScoringConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ScoringConfig{}, fmt.Errorf("decode scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ScoringConfig{}, err
	}
	return cfg, nil
}

// Validate rejects negative weights, missing limits, and radar mappings that are
// not exactly seven disjoint, non-empty dimensions.
func (c ScoringConfig) Validate() error {
	w := c.Weights
	if w.Critical < 0 || w.High < 0 || w.Medium < 0 || w.Low < 0 {
		return errors.New("scoring config: criticality weights must not be negative")
	}
	p := c.Penalties
	if p.NCMajor < 0 || p.NCMinor < 0 || p.Overdue < 0 {
		return errors.New("scoring config: penalties must not be negative")
	}
	if c.TopRiskLimit <= 0 {
		return errors.New("scoring config: top_risk_limit must be positive")
	}
	if c.SuggestionLimit <= 0 {
		return errors.New("scoring config: suggestion_limit must be positive")
	}
	if c.QuestionsPerAudit < 0 {
		return errors.New("scoring config: questions_per_audit must not be negative")
	}
	if len(c.Dimensions) != RadarDimensionCount {
		return fmt.Errorf("scoring config: expected %d radar dimensions, got %d", RadarDimensionCount, len(c.Dimensions))
	}

	keys := make(map[string]struct{}, len(c.Dimensions))
	owner := make(map[int64]string)
	for _, d := range c.Dimensions {
		if d.Key == "" {
			return errors.New("scoring config: radar dimension key is required")
		}
		if _, dup := keys[d.Key]; dup {
			return fmt.Errorf("scoring config: duplicate radar dimension %q", d.Key)
		}
		keys[d.Key] = struct{}{}
		if len(d.ProcessIDs) == 0 {
			return fmt.Errorf("scoring config: radar dimension %q has no processes", d.Key)
		}
		for _, id := range d.ProcessIDs {
			if id <= 0 {
				return fmt.Errorf("scoring config: radar dimension %q has invalid process id %d", d.Key, id)
			}
			if other, taken := owner[id]; taken {
				return fmt.Errorf("scoring config: process %d mapped to both %q and %q", id, other, d.Key)
			}
			owner[id] = d.Key
		}
	}
	return nil
}
