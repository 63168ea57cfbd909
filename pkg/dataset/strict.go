// pkg/dataset/strict.go
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"vgclean/pkg/model"
)

// Strict parses the raw record into a typed one without applying any
// cleaning policy. Used for artifacts the pipeline itself produced, where
// every cell is expected to already be well-formed.
func (r RawRecord) Strict() (model.Record, error) {
	var record model.Record

	if rank := strings.TrimSpace(r.Rank); rank != "" {
		v, err := strconv.Atoi(rank)
		if err != nil {
			return record, fmt.Errorf("invalid rank %q: %w", r.Rank, err)
		}
		record.Rank = v
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.Year))
	if err != nil {
		return record, fmt.Errorf("invalid year %q: %w", r.Year, err)
	}
	record.Year = year

	record.Name = r.Name
	record.Platform = r.Platform
	record.Genre = r.Genre
	record.Publisher = r.Publisher

	sales := []struct {
		column string
		raw    string
		target *float64
	}{
		{model.ColNASales, r.NASales, &record.NASales},
		{model.ColEUSales, r.EUSales, &record.EUSales},
		{model.ColJPSales, r.JPSales, &record.JPSales},
		{model.ColOtherSales, r.OtherSales, &record.OtherSales},
		{model.ColGlobalSales, r.GlobalSales, &record.GlobalSales},
	}
	for _, s := range sales {
		v, err := ParseSales(s.raw)
		if err != nil {
			return record, fmt.Errorf("column %s: %w", s.column, err)
		}
		*s.target = v
	}

	return record, nil
}
