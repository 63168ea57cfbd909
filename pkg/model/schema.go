// pkg/model/schema.go
package model

import "strings"

// Column names of the tabular dataset, as they appear in the CSV header.
const (
	ColRank        = "Rank"
	ColName        = "Name"
	ColPlatform    = "Platform"
	ColYear        = "Year"
	ColGenre       = "Genre"
	ColPublisher   = "Publisher"
	ColNASales     = "NA_Sales"
	ColEUSales     = "EU_Sales"
	ColJPSales     = "JP_Sales"
	ColOtherSales  = "Other_Sales"
	ColGlobalSales = "Global_Sales"
)

// Columns returns the full column schema in canonical output order.
func Columns() []string {
	return []string{
		ColRank,
		ColName,
		ColPlatform,
		ColYear,
		ColGenre,
		ColPublisher,
		ColNASales,
		ColEUSales,
		ColJPSales,
		ColOtherSales,
		ColGlobalSales,
	}
}

// RequiredColumns returns the columns that must be present in the raw
// input for the pipeline to run. Rank is optional: when absent, row
// positions are used instead.
func RequiredColumns() []string {
	return []string{
		ColName,
		ColPlatform,
		ColYear,
		ColGenre,
		ColPublisher,
		ColNASales,
		ColEUSales,
		ColJPSales,
		ColOtherSales,
		ColGlobalSales,
	}
}

// SalesColumns returns the four regional sales columns, in output order.
func SalesColumns() []string {
	return []string{ColNASales, ColEUSales, ColJPSales, ColOtherSales}
}

// NormalizeColumnName lowercases and trims a header cell so that lookups
// tolerate casing and stray whitespace in hand-edited CSV files.
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
