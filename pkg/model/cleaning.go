// pkg/model/cleaning.go
package model

// CleaningOperation represents a single data cleaning operation
type CleaningOperation struct {
	RunID             string // Pipeline run that performed the cleaning
	RowKey            string // Identifies the raw row (name/platform, or line number)
	ColumnName        string // Column that was cleaned
	OriginalValue     string // Original raw cell value (may be empty)
	NewValue          string // New value after cleaning
	CleaningOperation string // Type of cleaning performed (e.g., "sentinel_substitution")
	CleaningReason    string // Reason for cleaning (e.g., "missing_publisher")
}

// Cleaning operation types.
const (
	OpSentinelSubstitution = "sentinel_substitution"
	OpDefaultSubstitution  = "default_substitution"
	OpTotalRecomputed      = "total_recomputed"
	OpRowDropped           = "row_dropped"
)
