// pkg/cleaner/operations.go
package cleaner

import (
	"math"
	"strconv"
	"strings"

	"vgclean/pkg/config"
	"vgclean/pkg/dataset"
	"vgclean/pkg/model"
)

// Cleaning reasons recorded on audit operations.
const (
	reasonMissing     = "missing_value"
	reasonUnparseable = "unparseable_value"
	reasonNegative    = "negative_value"
	reasonNaN         = "not_a_number"
	reasonMismatch    = "total_mismatch"
)

// Raw totals further than this from the recomputed regional sum are
// recorded as corrections. Matches the two-decimal precision of the data.
const totalTolerance = 0.005

// parseYear parses a release year cell. Raw exports store years both as
// plain integers and as float-formatted values like "2006.0"; both are
// accepted as long as the value is integral.
func parseYear(value string) (int, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, false
	}

	if year, err := strconv.Atoi(cleaned); err == nil {
		return year, true
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseRank parses the optional rank cell, falling back to the row
// position when the cell is absent or malformed.
func parseRank(value string, position int) int {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return position
	}
	rank, err := strconv.Atoi(cleaned)
	if err != nil || rank <= 0 {
		return position
	}
	return rank
}

// cleanCategorical resolves a categorical cell. Missing values become the
// policy sentinel so downstream grouping never silently drops rows.
func cleanCategorical(
	value, column, rowKey, runID string,
	policy *config.Policy,
) (string, *model.CleaningOperation) {
	cleaned := strings.TrimSpace(value)
	if cleaned != "" && !policy.IsMissing(cleaned) {
		return cleaned, nil
	}

	return policy.Sentinel, &model.CleaningOperation{
		RunID:             runID,
		RowKey:            rowKey,
		ColumnName:        column,
		OriginalValue:     value,
		NewValue:          policy.Sentinel,
		CleaningOperation: model.OpSentinelSubstitution,
		CleaningReason:    reasonMissing,
	}
}

// cleanSales resolves a regional sales cell. Missing values mean no
// recorded sales and become zero; unparseable or negative values are
// clamped to zero as well, with the failure recorded.
func cleanSales(
	value, column, rowKey, runID string,
	policy *config.Policy,
) (float64, *model.CleaningOperation) {
	substitution := func(reason string) *model.CleaningOperation {
		return &model.CleaningOperation{
			RunID:             runID,
			RowKey:            rowKey,
			ColumnName:        column,
			OriginalValue:     value,
			NewValue:          "0",
			CleaningOperation: model.OpDefaultSubstitution,
			CleaningReason:    reason,
		}
	}

	cleaned := strings.TrimSpace(value)
	if cleaned == "" || policy.IsMissing(cleaned) {
		return 0, substitution(reasonMissing)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, substitution(reasonUnparseable)
	}
	if math.IsNaN(f) {
		return 0, substitution(reasonNaN)
	}
	if f < 0 {
		return 0, substitution(reasonNegative)
	}

	return f, nil
}

// recomputeTotal derives the global total from the four regional figures
// and stores it on the record. An operation is returned when the raw total
// was missing or disagreed with the recomputed sum.
func recomputeTotal(
	record *model.Record,
	rawTotal, rowKey, runID string,
) *model.CleaningOperation {
	total := record.RegionalTotal()
	record.GlobalSales = total

	op := &model.CleaningOperation{
		RunID:             runID,
		RowKey:            rowKey,
		ColumnName:        model.ColGlobalSales,
		OriginalValue:     rawTotal,
		NewValue:          dataset.FormatSales(total),
		CleaningOperation: model.OpTotalRecomputed,
	}

	cleaned := strings.TrimSpace(rawTotal)
	if cleaned == "" {
		op.CleaningReason = reasonMissing
		return op
	}

	previous, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(previous) {
		op.CleaningReason = reasonUnparseable
		return op
	}
	if math.Abs(previous-total) > totalTolerance {
		op.CleaningReason = reasonMismatch
		return op
	}

	// Raw total already agreed; nothing worth recording.
	return nil
}
