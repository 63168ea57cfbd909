// pkg/dataset/reader.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"vgclean/pkg/model"
)

// RawRecord holds one unparsed row of the raw dataset. All cells are kept
// as strings; type coercion is the cleaner's job, so that a malformed cell
// never makes loading fail.
type RawRecord struct {
	Line        int // 1-based line number in the source file, header included
	Rank        string
	Name        string
	Platform    string
	Year        string
	Genre       string
	Publisher   string
	NASales     string
	EUSales     string
	JPSales     string
	OtherSales  string
	GlobalSales string
}

// Load reads the raw dataset from a CSV file. The header row is mandatory
// and column order is taken from it. A missing required column aborts with
// a SchemaError before any row is read.
func Load(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Raw exports occasionally carry ragged rows; short rows are padded
	// with empty cells rather than rejected.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Path: path, Missing: model.RequiredColumns()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[model.NormalizeColumnName(name)] = i
	}

	var missing []string
	for _, required := range model.RequiredColumns() {
		if _, ok := index[model.NormalizeColumnName(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	cell := func(row []string, column string) string {
		pos, ok := index[model.NormalizeColumnName(column)]
		if !ok || pos >= len(row) {
			return ""
		}
		return row[pos]
	}

	var records []RawRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row after line %d: %w", line, err)
		}
		line++

		records = append(records, RawRecord{
			Line:        line,
			Rank:        cell(row, model.ColRank),
			Name:        cell(row, model.ColName),
			Platform:    cell(row, model.ColPlatform),
			Year:        cell(row, model.ColYear),
			Genre:       cell(row, model.ColGenre),
			Publisher:   cell(row, model.ColPublisher),
			NASales:     cell(row, model.ColNASales),
			EUSales:     cell(row, model.ColEUSales),
			JPSales:     cell(row, model.ColJPSales),
			OtherSales:  cell(row, model.ColOtherSales),
			GlobalSales: cell(row, model.ColGlobalSales),
		})
	}

	return records, nil
}

// LoadCleaned reads a cleaned dataset back into records. It is used by the
// verifier and the reporting/export commands, which treat the cleaned file
// as a trusted artifact: any cell that fails strict parsing is an error.
func LoadCleaned(path string) ([]model.Record, error) {
	raws, err := Load(path)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		record, err := raw.Strict()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", raw.Line, err)
		}
		records = append(records, record)
	}

	return records, nil
}
