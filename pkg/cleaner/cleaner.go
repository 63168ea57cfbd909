// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vgclean/pkg/config"
	"vgclean/pkg/dataset"
	"vgclean/pkg/model"
)

// Cleaner transforms the raw dataset into its cleaned form. The
// transformation is a single deterministic pass: identical input and
// policy always produce identical output.
type Cleaner struct {
	policy *config.Policy
	logger *zap.Logger
}

// NewCleaner creates a new Cleaner instance
func NewCleaner(policy *config.Policy, logger *zap.Logger) (*Cleaner, error) {
	if policy == nil {
		return nil, errors.New("cleaning policy cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cleaning policy: %w", err)
	}

	return &Cleaner{
		policy: policy,
		logger: logger,
	}, nil
}

// Result summarizes a single pipeline run.
type Result struct {
	RunID                string
	StartTime            time.Time
	EndTime              time.Time
	RowsRead             int
	RowsKept             int
	RowsDroppedYear      int
	RowsDroppedDuplicate int
	ParseFailures        int
	CellsDefaulted       int
	TotalsRecomputed     int
	Operations           []model.CleaningOperation
}

// Duration returns the total duration of the run
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// RowsDropped returns the total number of rows removed during cleaning
func (r *Result) RowsDropped() int {
	return r.RowsDroppedYear + r.RowsDroppedDuplicate
}

// Clean runs the normalization pipeline over the raw rows and returns the
// cleaned records together with the run result. Row order of survivors
// matches input order; duplicates keep the first occurrence.
func (c *Cleaner) Clean(raws []dataset.RawRecord) ([]model.Record, *Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		RowsRead:  len(raws),
	}

	logger := c.logger.With(zap.String("run_id", result.RunID))
	logger.Info("Starting cleaning run",
		zap.Int("rows_read", len(raws)),
		zap.Int("min_year", c.policy.MinYear),
		zap.Int("max_year", c.policy.MaxYear))

	cleaned := make([]model.Record, 0, len(raws))
	seen := make(map[model.Key]struct{}, len(raws))

	for i, raw := range raws {
		record, operations, keep := c.cleanSingleRow(raw, i+1, result.RunID)
		result.Operations = append(result.Operations, operations...)
		countOperations(result, operations)

		if !keep {
			result.RowsDroppedYear++
			continue
		}

		if c.policy.Deduplicate {
			key := record.Key()
			if _, dup := seen[key]; dup {
				result.RowsDroppedDuplicate++
				result.Operations = append(result.Operations, model.CleaningOperation{
					RunID:             result.RunID,
					RowKey:            rowKey(raw),
					ColumnName:        model.ColName,
					OriginalValue:     raw.Name,
					CleaningOperation: model.OpRowDropped,
					CleaningReason:    "duplicate_name_platform_year",
				})
				continue
			}
			seen[key] = struct{}{}
		}

		cleaned = append(cleaned, record)
	}

	result.RowsKept = len(cleaned)
	result.EndTime = time.Now()

	logger.Info("Cleaning run complete",
		zap.Int("rows_kept", result.RowsKept),
		zap.Int("rows_dropped_year", result.RowsDroppedYear),
		zap.Int("rows_dropped_duplicate", result.RowsDroppedDuplicate),
		zap.Int("parse_failures", result.ParseFailures),
		zap.Int("cells_defaulted", result.CellsDefaulted),
		zap.Int("totals_recomputed", result.TotalsRecomputed),
		zap.Duration("duration", result.Duration()))

	return cleaned, result, nil
}

// cleanSingleRow validates and cleans a single raw row. keep is false when
// the row must be dropped because no usable release year survives the
// policy bounds.
func (c *Cleaner) cleanSingleRow(
	raw dataset.RawRecord,
	position int,
	runID string,
) (model.Record, []model.CleaningOperation, bool) {
	var operations []model.CleaningOperation
	key := rowKey(raw)

	// Release year is load-bearing for the time-series views downstream:
	// rows without a usable year are dropped rather than imputed.
	year, ok := parseYear(raw.Year)
	if !ok || year < c.policy.MinYear || year > c.policy.MaxYear {
		reason := "unparseable_year"
		if ok {
			reason = "year_out_of_bounds"
		}
		operations = append(operations, model.CleaningOperation{
			RunID:             runID,
			RowKey:            key,
			ColumnName:        model.ColYear,
			OriginalValue:     raw.Year,
			CleaningOperation: model.OpRowDropped,
			CleaningReason:    reason,
		})
		return model.Record{}, operations, false
	}

	record := model.Record{Year: year}

	// Rank is carried through when the raw file provides it; otherwise the
	// row position stands in so the output schema stays stable.
	record.Rank = parseRank(raw.Rank, position)

	categoricals := []struct {
		column string
		raw    string
		target *string
	}{
		{model.ColName, raw.Name, &record.Name},
		{model.ColPlatform, raw.Platform, &record.Platform},
		{model.ColGenre, raw.Genre, &record.Genre},
		{model.ColPublisher, raw.Publisher, &record.Publisher},
	}
	for _, cat := range categoricals {
		value, op := cleanCategorical(cat.raw, cat.column, key, runID, c.policy)
		*cat.target = value
		if op != nil {
			operations = append(operations, *op)
		}
	}

	sales := []struct {
		column string
		raw    string
		target *float64
	}{
		{model.ColNASales, raw.NASales, &record.NASales},
		{model.ColEUSales, raw.EUSales, &record.EUSales},
		{model.ColJPSales, raw.JPSales, &record.JPSales},
		{model.ColOtherSales, raw.OtherSales, &record.OtherSales},
	}
	for _, s := range sales {
		value, op := cleanSales(s.raw, s.column, key, runID, c.policy)
		*s.target = value
		if op != nil {
			operations = append(operations, *op)
		}
	}

	// The global total is always derived from the regional figures; the
	// raw total is only consulted to decide whether to record the fix.
	if op := recomputeTotal(&record, raw.GlobalSales, key, runID); op != nil {
		operations = append(operations, *op)
	}

	return record, operations, true
}

// rowKey builds a stable identifier for a raw row used in audit records.
func rowKey(raw dataset.RawRecord) string {
	return fmt.Sprintf("line:%d", raw.Line)
}

// countOperations updates the run counters from a batch of operations.
func countOperations(result *Result, operations []model.CleaningOperation) {
	for _, op := range operations {
		switch op.CleaningOperation {
		case model.OpSentinelSubstitution, model.OpDefaultSubstitution:
			result.CellsDefaulted++
			if op.CleaningReason == reasonUnparseable {
				result.ParseFailures++
			}
		case model.OpTotalRecomputed:
			result.TotalsRecomputed++
		}
	}
}
