// Package export renders trips and raw entries as downloadable files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

const (
	// ReportPrefix names trip report downloads.
	ReportPrefix = "final-mileage"
	// EntriesPrefix names raw entry downloads.
	EntriesPrefix = "raw-entries"
)

var (
	TripFormats  = []types.ExportFormat{types.FormatJSON, types.FormatXLSX, types.FormatCSV, types.FormatPDF}
	EntryFormats = []types.ExportFormat{types.FormatJSON, types.FormatXLSX, types.FormatCSV}
)

// ParseFormat resolves a format name against the allowed set. An empty name
// selects def.
func ParseFormat(name string, def types.ExportFormat, allowed []types.ExportFormat) (types.ExportFormat, error) {
	if name == "" {
		return def, nil
	}

	f := types.ExportFormat(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(allowed, f) {
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Filename builds the download name, e.g. final-mileage-2024-01-05.xlsx.
func Filename(prefix string, f types.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("2006-01-02"), f)
}

// ContentType returns the media type of a format.
func ContentType(f types.ExportFormat) string {
	switch f {
	case types.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case types.FormatCSV:
		return "text/csv; charset=utf-8"
	case types.FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// WriteTrips renders trips in the requested format.
func WriteTrips(w io.Writer, f types.ExportFormat, trips []models.Trip) error {
	rows := make([][]any, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []any{t.Date, t.From, t.To, t.Distance})
	}

	switch f {
	case types.FormatJSON:
		return writeJSON(w, nonNil(trips))
	case types.FormatXLSX:
		return writeXLSX(w, models.TripColumns, rows)
	case types.FormatCSV:
		return writeCSV(w, models.TripColumns, rows)
	case types.FormatPDF:
		return writePDF(w, trips)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, f)
	}
}

// WriteEntries renders raw entries in the requested format. PDF is not offered
// for raw entries.
func WriteEntries(w io.Writer, f types.ExportFormat, entries []models.Entry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		row := make([]any, 0, models.EntryFieldCount)
		for _, field := range e.Fields() {
			row = append(row, field)
		}
		rows = append(rows, row)
	}

	switch f {
	case types.FormatJSON:
		return writeJSON(w, nonNil(entries))
	case types.FormatXLSX:
		return writeXLSX(w, models.EntryColumns, rows)
	case types.FormatCSV:
		return writeCSV(w, models.EntryColumns, rows)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, f)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatDistance(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
