// pkg/dataset/writer.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vgclean/pkg/model"
)

// Write persists the cleaned dataset to path. The file is written to a
// temporary file in the destination directory and renamed into place, so a
// concurrent reader of the previous artifact never observes a partial
// write. Any I/O failure returns a WriteError and leaves no temp file
// behind.
func Write(path string, records []model.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: cause}
	}

	writer := csv.NewWriter(tmp)
	if err := writer.Write(model.Columns()); err != nil {
		return cleanup(err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Rank),
			record.Name,
			record.Platform,
			strconv.Itoa(record.Year),
			record.Genre,
			record.Publisher,
			FormatSales(record.NASales),
			FormatSales(record.EUSales),
			FormatSales(record.JPSales),
			FormatSales(record.OtherSales),
			FormatSales(record.GlobalSales),
		}
		if err := writer.Write(row); err != nil {
			return cleanup(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return cleanup(err)
	}

	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// FormatSales renders a sales figure the way the downstream pandas reader
// expects: integral values keep a trailing ".0" (1.0, not 1), everything
// else uses the shortest exact representation.
func FormatSales(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		return s + ".0"
	}
	return s
}

// ParseSales is the strict inverse of FormatSales.
func ParseSales(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sales figure %q: %w", s, err)
	}
	return v, nil
}
