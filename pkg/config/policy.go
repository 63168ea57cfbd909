// pkg/config/policy.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy validation errors.
var (
	ErrInvalidYearBounds = errors.New("min_year cannot exceed max_year")
	ErrYearOutOfRange    = errors.New("year bounds must fall within 1950-2100")
	ErrEmptySentinel     = errors.New("sentinel must not be empty")
)

// Policy fixes the data-cleaning decisions the raw dataset leaves open:
// which release years are plausible, what replaces missing values, and
// whether duplicate (name, platform, year) rows are collapsed.
//
// The defaults reproduce the behavior of the upstream cleaning script:
// years restricted to 1980-2025, "Unknown" for missing categoricals,
// keep-first deduplication.
type Policy struct {
	MinYear       int      `yaml:"min_year"`
	MaxYear       int      `yaml:"max_year"`
	Sentinel      string   `yaml:"sentinel"`
	MissingTokens []string `yaml:"missing_tokens"`
	Deduplicate   bool     `yaml:"deduplicate"`
}

// DefaultPolicy returns the policy used when no policy file is configured.
func DefaultPolicy() *Policy {
	return &Policy{
		MinYear:       1980,
		MaxYear:       2025,
		Sentinel:      "Unknown",
		MissingTokens: []string{"", "n/a", "na", "nan", "null", "-"},
		Deduplicate:   true,
	}
}

// LoadPolicy loads a cleaning policy from a YAML file. Fields omitted in
// the file keep their default values.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}

	return policy, nil
}

// Validate validates the policy.
func (p *Policy) Validate() error {
	if p.MinYear > p.MaxYear {
		return ErrInvalidYearBounds
	}

	if p.MinYear < 1950 || p.MaxYear > 2100 {
		return ErrYearOutOfRange
	}

	if strings.TrimSpace(p.Sentinel) == "" {
		return ErrEmptySentinel
	}

	return nil
}

// IsMissing reports whether a raw cell value counts as missing under the
// policy. Comparison is case-insensitive and ignores surrounding space.
func (p *Policy) IsMissing(value string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, token := range p.MissingTokens {
		if normalized == token {
			return true
		}
	}
	return false
}
