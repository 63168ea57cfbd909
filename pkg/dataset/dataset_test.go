package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"vgclean/pkg/model"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_FullSchema(t *testing.T) {
	path := writeFixture(t,
		"Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n"+
			"1,Wii Sports,Wii,2006,Sports,Nintendo,41.49,29.02,3.77,8.46,82.74\n")

	raws, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 row, got %d", len(raws))
	}

	got := raws[0]
	if got.Name != "Wii Sports" || got.Platform != "Wii" || got.Year != "2006" {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.Line != 2 {
		t.Errorf("Line = %d, want 2", got.Line)
	}
}

func TestLoad_HeaderCaseInsensitive(t *testing.T) {
	path := writeFixture(t,
		"name,platform,YEAR,genre,publisher,na_sales,eu_sales,jp_sales,other_sales,global_sales\n"+
			"Tetris,GB,1989,Puzzle,Nintendo,23.2,2.26,4.22,0.58,30.26\n")

	raws, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if raws[0].Name != "Tetris" {
		t.Errorf("Name = %q, want Tetris", raws[0].Name)
	}
	// Rank column absent: cell stays empty, cleaner assigns positions.
	if raws[0].Rank != "" {
		t.Errorf("Rank = %q, want empty", raws[0].Rank)
	}
}

func TestLoad_MissingPlatformColumn(t *testing.T) {
	path := writeFixture(t,
		"Name,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n"+
			"Tetris,1989,Puzzle,Nintendo,23.2,2.26,4.22,0.58,30.26\n")

	_, err := Load(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != model.ColPlatform {
		t.Errorf("Missing = %v, want [Platform]", schemaErr.Missing)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFixture(t, "")

	_, err := Load(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError for empty file, got %v", err)
	}
}

func TestLoad_ShortRowsPadded(t *testing.T) {
	path := writeFixture(t,
		"Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n"+
			"Tetris,GB,1989\n")

	raws, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if raws[0].Publisher != "" || raws[0].GlobalSales != "" {
		t.Errorf("short row not padded: %+v", raws[0])
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	records := []model.Record{
		{Rank: 1, Name: "Wii Sports", Platform: "Wii", Year: 2006, Genre: "Sports",
			Publisher: "Nintendo", NASales: 41.49, EUSales: 29.02, JPSales: 3.77,
			OtherSales: 8.46, GlobalSales: 82.74},
		{Rank: 2, Name: "Foo, The \"Game\"", Platform: "PS2", Year: 2004, Genre: "Action",
			Publisher: "Unknown", NASales: 1.5, EUSales: 0.5, JPSales: 0,
			OtherSales: 0.2, GlobalSales: 2.2},
	}

	path := filepath.Join(t.TempDir(), "clean.csv")
	if err := Write(path, records); err != nil {
		t.Fatalf("Write returned unexpected error: %v", err)
	}

	loaded, err := LoadCleaned(path)
	if err != nil {
		t.Fatalf("LoadCleaned returned unexpected error: %v", err)
	}
	if !reflect.DeepEqual(records, loaded) {
		t.Errorf("round trip mismatch:\nwrote %+v\nread  %+v", records, loaded)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.csv")
	records := []model.Record{
		{Rank: 1, Name: "Tetris", Platform: "GB", Year: 1989, Genre: "Puzzle",
			Publisher: "Nintendo", NASales: 23.2, EUSales: 2.26, JPSales: 4.22,
			OtherSales: 0.58, GlobalSales: 30.26},
	}

	// Two writes: the second atomically replaces the first.
	if err := Write(path, records); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := Write(path, records); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the artifact in %s, found %d entries", dir, len(entries))
	}
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "clean.csv")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestWrite_Error(t *testing.T) {
	// Destination directory path occupied by a regular file.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}

	err := Write(filepath.Join(blocker, "clean.csv"), nil)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}

func TestFormatSales(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{82.74, "82.74"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		if got := FormatSales(tt.input); got != tt.want {
			t.Errorf("FormatSales(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
