package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `LOCATION,MAIN,HOLL,KENT
MAIN,0,12.3,4.1
HOLL,12.3,0,
KENT,4.1,,0
`

func TestReadCSV(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d, _ := c.Distance("MAIN", "HOLL"); d != 12.3 {
		t.Errorf("MAIN->HOLL got %v", d)
	}
	if d, _ := c.Distance("HOLL", "KENT"); d != 0 {
		t.Errorf("empty cell must read as zero, got %v", d)
	}
	if c.Len() != 3 {
		t.Errorf("got %d rows", c.Len())
	}
}

func TestReadCSV_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong index header", "CODE,MAIN\nMAIN,0\n"},
		{"not a number", "LOCATION,MAIN\nMAIN,far\n"},
		{"too many cells", "LOCATION,MAIN\nMAIN,0,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); !errors.Is(err, types.ErrInvalidChart) {
				t.Fatalf("got %v, want ErrInvalidChart", err)
			}
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatal(err)
	}

	again, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	if d, _ := again.Distance("KENT", "MAIN"); d != 4.1 {
		t.Fatalf("KENT->MAIN got %v", d)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"LOCATION", "MAIN", "HOLL"},
		{"MAIN", 0, 12.3},
		{"HOLL", 12.3},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	c, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d, _ := c.Distance("HOLL", "MAIN"); d != 12.3 {
		t.Errorf("HOLL->MAIN got %v", d)
	}
	if d, _ := c.Distance("HOLL", "HOLL"); d != 0 {
		t.Errorf("missing trailing cell must read as zero, got %v", d)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "mileage-chart.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(csvPath); err != nil {
		t.Fatalf("csv: %v", err)
	}

	odsPath := filepath.Join(dir, "mileage-chart.ods")
	if err := os.WriteFile(odsPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(odsPath); !errors.Is(err, types.ErrInvalidChart) {
		t.Fatalf("ods: got %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "absent.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing: got %v", err)
	}
}

func TestLoadBranches_Default(t *testing.T) {
	dir, err := LoadBranches("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.Len() != 23 {
		t.Fatalf("got %d branches, want 23", dir.Len())
	}

	for name, want := range map[string]string{
		"Main Library":           "MAIN",
		"Cherry Street Mission":  "MAIN",
		"Mobile Services":        "KINGRD",
		"Friends of the Library": "WAREHOUSE",
	} {
		if got, err := dir.Code(name); err != nil || got != want {
			t.Errorf("%s: got %q, %v; want %q", name, got, err, want)
		}
	}
}

func TestParseBranches_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not yaml", "branches: [\n"},
		{"empty list", "branches: []\n"},
		{"missing code", "branches:\n  - name: Main Library\n"},
		{"lowercase code", "branches:\n  - name: Main Library\n    code: main\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBranches([]byte(tt.in)); !errors.Is(err, types.ErrInvalidBranches) {
				t.Fatalf("got %v, want ErrInvalidBranches", err)
			}
		})
	}
}
