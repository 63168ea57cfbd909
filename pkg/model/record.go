// pkg/model/record.go
package model

import "math"

// Record represents one cleaned game/platform release row.
// Sales figures are in millions of units.
type Record struct {
	Rank        int     `db:"rank"`
	Name        string  `db:"name"`
	Platform    string  `db:"platform"`
	Year        int     `db:"year"`
	Genre       string  `db:"genre"`
	Publisher   string  `db:"publisher"`
	NASales     float64 `db:"na_sales"`
	EUSales     float64 `db:"eu_sales"`
	JPSales     float64 `db:"jp_sales"`
	OtherSales  float64 `db:"other_sales"`
	GlobalSales float64 `db:"global_sales"`
}

// Key identifies a record for deduplication purposes.
// Two rows describing the same game on the same platform in the same
// year are considered duplicates.
type Key struct {
	Name     string
	Platform string
	Year     int
}

// Key returns the deduplication key for the record.
func (r *Record) Key() Key {
	return Key{Name: r.Name, Platform: r.Platform, Year: r.Year}
}

// RegionalTotal returns the sum of the four regional sales figures,
// rounded to two decimals to match the precision of the source data.
func (r *Record) RegionalTotal() float64 {
	return Round2(r.NASales + r.EUSales + r.JPSales + r.OtherSales)
}

// Round2 rounds a sales figure to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
