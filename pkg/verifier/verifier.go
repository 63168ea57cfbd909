// pkg/verifier/verifier.go
package verifier

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"vgclean/pkg/config"
	"vgclean/pkg/dataset"
	"vgclean/pkg/model"
)

// Issue represents a single invariant violation found in a cleaned artifact
type Issue struct {
	Line        int
	Column      string
	Description string
}

// String returns a formatted description of the issue
func (i Issue) String() string {
	if i.Column != "" {
		return fmt.Sprintf("line %d, column %s: %s", i.Line, i.Column, i.Description)
	}
	return fmt.Sprintf("line %d: %s", i.Line, i.Description)
}

// Report contains the results of verifying a cleaned artifact
type Report struct {
	Path             string
	VerificationTime time.Time
	Duration         time.Duration
	Rows             int
	Issues           []Issue
}

// OK reports whether the artifact satisfies every invariant
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Verifier checks a cleaned artifact against the invariants the
// presentation layer relies on. It never repairs anything: a violation
// means the artifact must be regenerated.
type Verifier struct {
	policy    *config.Policy
	logger    *zap.Logger
	tolerance float64
}

// NewVerifier creates a new verifier
func NewVerifier(policy *config.Policy, logger *zap.Logger) (*Verifier, error) {
	if policy == nil {
		return nil, errors.New("cleaning policy cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Verifier{
		policy:    policy,
		logger:    logger,
		tolerance: 1e-6,
	}, nil
}

// WithTolerance sets a custom floating-point tolerance for the
// cross-field total check
func (v *Verifier) WithTolerance(tolerance float64) *Verifier {
	v.tolerance = tolerance
	return v
}

// VerifyFile verifies the cleaned artifact at path. Schema problems and
// unreadable files are returned as errors; row-level violations are
// collected in the report.
func (v *Verifier) VerifyFile(path string) (*Report, error) {
	start := time.Now()

	v.logger.Info("Verifying cleaned artifact", zap.String("path", path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cleaned artifact not readable: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("cleaned artifact %s is empty", path)
	}

	raws, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Path:             path,
		VerificationTime: start,
		Rows:             len(raws),
	}

	seen := make(map[model.Key]int, len(raws))
	for _, raw := range raws {
		record, err := raw.Strict()
		if err != nil {
			report.Issues = append(report.Issues, Issue{
				Line:        raw.Line,
				Description: err.Error(),
			})
			continue
		}

		v.checkRecord(report, raw.Line, record)

		key := record.Key()
		if firstLine, dup := seen[key]; dup {
			report.Issues = append(report.Issues, Issue{
				Line: raw.Line,
				Description: fmt.Sprintf(
					"duplicate (name, platform, year) key %q/%q/%d, first seen on line %d",
					key.Name, key.Platform, key.Year, firstLine),
			})
		} else {
			seen[key] = raw.Line
		}
	}

	report.Duration = time.Since(start)

	v.logger.Info("Verification complete",
		zap.String("path", path),
		zap.Int("rows", report.Rows),
		zap.Int("issues", len(report.Issues)),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// checkRecord applies the per-row invariants.
func (v *Verifier) checkRecord(report *Report, line int, record model.Record) {
	if record.Year < v.policy.MinYear || record.Year > v.policy.MaxYear {
		report.Issues = append(report.Issues, Issue{
			Line:   line,
			Column: model.ColYear,
			Description: fmt.Sprintf("year %d outside bounds [%d, %d]",
				record.Year, v.policy.MinYear, v.policy.MaxYear),
		})
	}

	categoricals := []struct {
		column string
		value  string
	}{
		{model.ColName, record.Name},
		{model.ColPlatform, record.Platform},
		{model.ColGenre, record.Genre},
		{model.ColPublisher, record.Publisher},
	}
	for _, cat := range categoricals {
		if cat.value == "" {
			report.Issues = append(report.Issues, Issue{
				Line:        line,
				Column:      cat.column,
				Description: "empty categorical value",
			})
		}
	}

	sales := []struct {
		column string
		value  float64
	}{
		{model.ColNASales, record.NASales},
		{model.ColEUSales, record.EUSales},
		{model.ColJPSales, record.JPSales},
		{model.ColOtherSales, record.OtherSales},
	}
	for _, s := range sales {
		if s.value < 0 || math.IsNaN(s.value) {
			report.Issues = append(report.Issues, Issue{
				Line:        line,
				Column:      s.column,
				Description: fmt.Sprintf("invalid sales figure %v", s.value),
			})
		}
	}

	if diff := math.Abs(record.GlobalSales - record.RegionalTotal()); diff > v.tolerance {
		report.Issues = append(report.Issues, Issue{
			Line:   line,
			Column: model.ColGlobalSales,
			Description: fmt.Sprintf(
				"global total %v does not match regional sum %v (diff %v)",
				record.GlobalSales, record.RegionalTotal(), diff),
		})
	}
}
