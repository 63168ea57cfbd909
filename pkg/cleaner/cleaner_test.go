package cleaner

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"vgclean/pkg/config"
	"vgclean/pkg/dataset"
)

func newTestCleaner(t *testing.T) *Cleaner {
	t.Helper()

	c, err := NewCleaner(config.DefaultPolicy(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewCleaner returned unexpected error: %v", err)
	}
	return c
}

func rawRow(line int, name, platform, year, genre, publisher, na, eu, jp, other, global string) dataset.RawRecord {
	return dataset.RawRecord{
		Line:        line,
		Name:        name,
		Platform:    platform,
		Year:        year,
		Genre:       genre,
		Publisher:   publisher,
		NASales:     na,
		EUSales:     eu,
		JPSales:     jp,
		OtherSales:  other,
		GlobalSales: global,
	}
}

func TestNewCleaner_Validation(t *testing.T) {
	if _, err := NewCleaner(nil, zap.NewNop()); err == nil {
		t.Error("expected error for nil policy")
	}

	if _, err := NewCleaner(config.DefaultPolicy(), nil); err == nil {
		t.Error("expected error for nil logger")
	}

	bad := config.DefaultPolicy()
	bad.MinYear = 2030
	bad.MaxYear = 1980
	if _, err := NewCleaner(bad, zap.NewNop()); err == nil {
		t.Error("expected error for invalid policy")
	}
}

func TestClean_InvalidYearDropsRow(t *testing.T) {
	c := newTestCleaner(t)

	// The year cell "202x" fails coercion; the row cannot participate in
	// time-series analysis and must be dropped, not imputed.
	raws := []dataset.RawRecord{
		rawRow(2, "Foo Game", "XYZ", "202x", "Action", "", "1.5", "0.5", "NaN", "0.2", "2.0"),
		rawRow(3, "Bar Game", "PS2", "2004", "Sports", "Sega", "1.0", "0.0", "0.0", "0.0", "1.0"),
	}

	records, result, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(records))
	}
	if records[0].Name != "Bar Game" {
		t.Errorf("wrong survivor: %q", records[0].Name)
	}
	if result.RowsDroppedYear != 1 {
		t.Errorf("RowsDroppedYear = %d, want 1", result.RowsDroppedYear)
	}
}

func TestClean_MissingValuesAndTotalRecompute(t *testing.T) {
	c := newTestCleaner(t)

	// Same scenario with a usable year: the NaN region becomes 0, the
	// missing publisher becomes the sentinel, and the stale total 2.0 is
	// recomputed as 1.5+0.5+0.0+0.2.
	raws := []dataset.RawRecord{
		rawRow(2, "Foo Game", "XYZ", "2010", "Action", "", "1.5", "0.5", "NaN", "0.2", "2.0"),
	}

	records, result, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.Publisher != "Unknown" {
		t.Errorf("Publisher = %q, want Unknown", got.Publisher)
	}
	if got.JPSales != 0 {
		t.Errorf("JPSales = %v, want 0", got.JPSales)
	}
	if got.GlobalSales != 2.2 {
		t.Errorf("GlobalSales = %v, want 2.2", got.GlobalSales)
	}
	if result.TotalsRecomputed != 1 {
		t.Errorf("TotalsRecomputed = %d, want 1", result.TotalsRecomputed)
	}
	if result.CellsDefaulted != 2 {
		t.Errorf("CellsDefaulted = %d, want 2 (publisher + JP sales)", result.CellsDefaulted)
	}
}

func TestClean_AgreeingTotalNotRecorded(t *testing.T) {
	c := newTestCleaner(t)

	raws := []dataset.RawRecord{
		rawRow(2, "Baz", "Wii", "2008", "Misc", "Nintendo", "1.0", "0.5", "0.25", "0.25", "2.0"),
	}

	records, result, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}
	if records[0].GlobalSales != 2.0 {
		t.Errorf("GlobalSales = %v, want 2.0", records[0].GlobalSales)
	}
	if result.TotalsRecomputed != 0 {
		t.Errorf("TotalsRecomputed = %d, want 0", result.TotalsRecomputed)
	}
}

func TestClean_DeduplicateKeepsFirst(t *testing.T) {
	c := newTestCleaner(t)

	raws := []dataset.RawRecord{
		rawRow(2, "Tetris", "GB", "1989", "Puzzle", "Nintendo", "23.2", "2.26", "4.22", "0.58", "30.26"),
		rawRow(3, "Tetris", "GB", "1989", "Puzzle", "Acme", "1.0", "1.0", "1.0", "1.0", "4.0"),
		rawRow(4, "Tetris", "NES", "1989", "Puzzle", "Nintendo", "2.0", "0.5", "1.0", "0.2", "3.7"),
	}

	records, result, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records after dedupe, got %d", len(records))
	}
	// First occurrence wins: the conflicting Acme row is dropped.
	if records[0].Publisher != "Nintendo" || records[0].NASales != 23.2 {
		t.Errorf("dedupe did not keep the first occurrence: %+v", records[0])
	}
	if records[1].Platform != "NES" {
		t.Errorf("different platform must survive, got %+v", records[1])
	}
	if result.RowsDroppedDuplicate != 1 {
		t.Errorf("RowsDroppedDuplicate = %d, want 1", result.RowsDroppedDuplicate)
	}
}

func TestClean_YearBounds(t *testing.T) {
	c := newTestCleaner(t)

	tests := []struct {
		name string
		year string
		kept bool
	}{
		{"below lower bound", "1979", false},
		{"at lower bound", "1980", true},
		{"at upper bound", "2025", true},
		{"above upper bound", "2026", false},
		{"float-form year", "2006.0", true},
		{"empty year", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raws := []dataset.RawRecord{
				rawRow(2, "Game", "PC", tt.year, "Action", "Valve", "1.0", "0", "0", "0", "1.0"),
			}
			records, _, err := c.Clean(raws)
			if err != nil {
				t.Fatalf("Clean returned unexpected error: %v", err)
			}
			if kept := len(records) == 1; kept != tt.kept {
				t.Errorf("year %q: kept = %v, want %v", tt.year, kept, tt.kept)
			}
		})
	}
}

func TestClean_Idempotence(t *testing.T) {
	c := newTestCleaner(t)

	raws := []dataset.RawRecord{
		rawRow(2, "Foo Game", "XYZ", "2010", "Action", "", "1.5", "0.5", "NaN", "0.2", "2.0"),
		rawRow(3, "Tetris", "GB", "1989", "Puzzle", "Nintendo", "23.2", "2.26", "4.22", "0.58", "30.26"),
		rawRow(4, "Tetris", "GB", "1989", "Puzzle", "Acme", "1.0", "1.0", "1.0", "1.0", "4.0"),
	}

	first, _, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("first Clean returned unexpected error: %v", err)
	}
	second, _, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("second Clean returned unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over the same input produced different records")
	}

	// Byte-for-byte idempotence of the persisted artifact.
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	if err := dataset.Write(pathA, first); err != nil {
		t.Fatalf("Write A failed: %v", err)
	}
	if err := dataset.Write(pathB, second); err != nil {
		t.Fatalf("Write B failed: %v", err)
	}

	a, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatalf("ReadFile A failed: %v", err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		t.Fatalf("ReadFile B failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("persisted artifacts are not byte-identical")
	}
}

func TestClean_OperationsCarryRunID(t *testing.T) {
	c := newTestCleaner(t)

	raws := []dataset.RawRecord{
		rawRow(2, "Foo", "PC", "2001", "Action", "", "1.0", "0", "0", "0", "1.0"),
	}

	_, result, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("result has no run ID")
	}
	if len(result.Operations) == 0 {
		t.Fatal("expected at least one recorded operation")
	}
	for _, op := range result.Operations {
		if op.RunID != result.RunID {
			t.Errorf("operation run ID %q does not match result run ID %q", op.RunID, result.RunID)
		}
	}
}

func TestClean_SentinelNeverEmpty(t *testing.T) {
	c := newTestCleaner(t)

	raws := []dataset.RawRecord{
		rawRow(2, "", "", "1995", "", "N/A", "0", "0", "0", "0", "0"),
	}

	records, _, err := c.Clean(raws)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}
	got := records[0]
	for _, value := range []string{got.Name, got.Platform, got.Genre, got.Publisher} {
		if value != "Unknown" {
			t.Errorf("categorical = %q, want Unknown", value)
		}
	}
}
