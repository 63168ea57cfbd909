// pkg/report/report.go
package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vgclean/pkg/cleaner"
	"vgclean/pkg/model"
)

// Generator renders a markdown profile of a cleaned dataset: the headline
// numbers the dashboard surfaces (regional totals, top genres, publishers
// and platforms, sales over time), plus an optional run summary.
type Generator struct {
	logger *zap.Logger
	topN   int
}

// NewGenerator creates a new report generator
func NewGenerator(logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Generator{
		logger: logger,
		topN:   10,
	}, nil
}

// Generate renders the profile. result may be nil when profiling an
// existing artifact outside a cleaning run.
func (g *Generator) Generate(records []model.Record, result *cleaner.Result) string {
	g.logger.Info("Generating dataset profile", zap.Int("rows", len(records)))

	var sb strings.Builder
	sb.WriteString("# Video game sales — cleaned dataset profile\n\n")

	g.writeShape(&sb, records)
	g.writeRegionalTotals(&sb, records)
	g.writeTopSection(&sb, "Top genres", records, func(r model.Record) string { return r.Genre })
	g.writeTopSection(&sb, "Top publishers", records, func(r model.Record) string { return r.Publisher })
	g.writeTopSection(&sb, "Top platforms", records, func(r model.Record) string { return r.Platform })
	g.writeSalesByYear(&sb, records)

	if result != nil {
		g.writeRunSummary(&sb, result)
	}

	return sb.String()
}

func (g *Generator) writeShape(sb *strings.Builder, records []model.Record) {
	sb.WriteString("## Dataset shape\n\n")
	fmt.Fprintf(sb, "- Rows: %d\n", len(records))
	fmt.Fprintf(sb, "- Columns: %d\n", len(model.Columns()))

	if len(records) > 0 {
		minYear, maxYear := records[0].Year, records[0].Year
		for _, record := range records[1:] {
			if record.Year < minYear {
				minYear = record.Year
			}
			if record.Year > maxYear {
				maxYear = record.Year
			}
		}
		fmt.Fprintf(sb, "- Year span: %d-%d\n", minYear, maxYear)
	}
	sb.WriteString("\n")
}

// writeRegionalTotals renders the regional KPI sums. Decimal arithmetic
// keeps the totals exact; float accumulation over ~16k rows drifts.
func (g *Generator) writeRegionalTotals(sb *strings.Builder, records []model.Record) {
	regions := []struct {
		label string
		value func(model.Record) float64
	}{
		{"North America", func(r model.Record) float64 { return r.NASales }},
		{"Europe", func(r model.Record) float64 { return r.EUSales }},
		{"Japan", func(r model.Record) float64 { return r.JPSales }},
		{"Other", func(r model.Record) float64 { return r.OtherSales }},
		{"Global", func(r model.Record) float64 { return r.GlobalSales }},
	}

	rows := make([][]string, 0, len(regions))
	for _, region := range regions {
		total := decimal.Zero
		for _, record := range records {
			total = total.Add(decimal.NewFromFloat(region.value(record)))
		}
		rows = append(rows, []string{region.label, total.StringFixed(2)})
	}

	sb.WriteString("## Regional sales totals (millions)\n\n")
	writeTable(sb, []string{"Region", "Total"}, rows)
	sb.WriteString("\n")
}

func (g *Generator) writeTopSection(
	sb *strings.Builder,
	title string,
	records []model.Record,
	key func(model.Record) string,
) {
	type entry struct {
		name  string
		total decimal.Decimal
		count int
	}

	totals := make(map[string]*entry)
	for _, record := range records {
		k := key(record)
		e, ok := totals[k]
		if !ok {
			e = &entry{name: k}
			totals[k] = e
		}
		e.total = e.total.Add(decimal.NewFromFloat(record.GlobalSales))
		e.count++
	}

	entries := make([]*entry, 0, len(totals))
	for _, e := range totals {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].total.Cmp(entries[j].total); cmp != 0 {
			return cmp > 0
		}
		return entries[i].name < entries[j].name
	})

	limit := g.topN
	if len(entries) < limit {
		limit = len(entries)
	}

	rows := make([][]string, 0, limit)
	for i := 0; i < limit; i++ {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entries[i].name,
			entries[i].total.StringFixed(2),
			strconv.Itoa(entries[i].count),
		})
	}

	fmt.Fprintf(sb, "## %s by global sales\n\n", title)
	writeTable(sb, []string{"#", "Name", "Global sales", "Releases"}, rows)
	sb.WriteString("\n")
}

func (g *Generator) writeSalesByYear(sb *strings.Builder, records []model.Record) {
	type yearEntry struct {
		releases int
		total    decimal.Decimal
	}

	byYear := make(map[int]*yearEntry)
	for _, record := range records {
		e, ok := byYear[record.Year]
		if !ok {
			e = &yearEntry{}
			byYear[record.Year] = e
		}
		e.releases++
		e.total = e.total.Add(decimal.NewFromFloat(record.GlobalSales))
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	rows := make([][]string, 0, len(years))
	for _, year := range years {
		rows = append(rows, []string{
			strconv.Itoa(year),
			strconv.Itoa(byYear[year].releases),
			byYear[year].total.StringFixed(2),
		})
	}

	sb.WriteString("## Global sales by year\n\n")
	writeTable(sb, []string{"Year", "Releases", "Global sales"}, rows)
	sb.WriteString("\n")
}

func (g *Generator) writeRunSummary(sb *strings.Builder, result *cleaner.Result) {
	sb.WriteString("## Cleaning run summary\n\n")
	fmt.Fprintf(sb, "- Run ID: %s\n", result.RunID)
	fmt.Fprintf(sb, "- Rows read: %d\n", result.RowsRead)
	fmt.Fprintf(sb, "- Rows kept: %d\n", result.RowsKept)
	fmt.Fprintf(sb, "- Rows dropped (year policy): %d\n", result.RowsDroppedYear)
	fmt.Fprintf(sb, "- Rows dropped (duplicates): %d\n", result.RowsDroppedDuplicate)
	fmt.Fprintf(sb, "- Cells defaulted: %d\n", result.CellsDefaulted)
	fmt.Fprintf(sb, "- Parse failures recovered: %d\n", result.ParseFailures)
	fmt.Fprintf(sb, "- Totals recomputed: %d\n", result.TotalsRecomputed)
	fmt.Fprintf(sb, "- Duration: %s\n", result.Duration())
}
