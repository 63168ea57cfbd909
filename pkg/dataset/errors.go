// pkg/dataset/errors.go
package dataset

import (
	"fmt"
	"strings"
)

// SchemaError indicates the raw input is missing required columns.
// It is fatal and raised before any output is written.
type SchemaError struct {
	Path    string
	Missing []string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: missing required columns: %s",
		e.Path, strings.Join(e.Missing, ", "))
}

// WriteError indicates the cleaned output could not be persisted.
// No partial output file is left behind when it is raised.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return fmt.Sprintf("write error for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *WriteError) Unwrap() error {
	return e.Err
}
