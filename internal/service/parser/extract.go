package parser

import (
	"strings"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
)

// entryTerminator marks the last line of every entry in the export.
const entryTerminator = "miles"

// Extraction is the result of splitting timesheet text into entries.
type Extraction struct {
	Entries []models.Entry
	// Discarded counts groups that reached a terminal line with the wrong number of lines.
	Discarded int
}

// Extract groups the lines of a timesheet export into entries.
//
// Noise lines ("", "CST", "-") are skipped. Every other line is buffered until
// a line containing "miles" closes the group; a group of exactly seven lines
// becomes an Entry, any other size is dropped. Lines after the last terminal
// line never form an entry.
func Extract(text string) Extraction {
	var (
		out     Extraction
		pending = make([]string, 0, models.EntryFieldCount)
	)

	for _, line := range splitLines(text) {
		line = cleanLine(line)
		if isNoise(line) {
			continue
		}

		pending = append(pending, line)
		if !strings.Contains(line, entryTerminator) {
			continue
		}

		if len(pending) == models.EntryFieldCount {
			out.Entries = append(out.Entries, models.NewEntry(pending))
		} else {
			out.Discarded++
		}
		pending = pending[:0]
	}

	return out
}

// splitLines splits on CRLF when the text contains any, otherwise on LF.
func splitLines(text string) []string {
	if strings.Contains(text, "\r\n") {
		return strings.Split(text, "\r\n")
	}
	return strings.Split(text, "\n")
}

var lineCleaner = strings.NewReplacer("\t", "", "\n", "")

func cleanLine(line string) string {
	return lineCleaner.Replace(line)
}

func isNoise(line string) bool {
	switch line {
	case "", "CST", "-":
		return true
	}
	return false
}
