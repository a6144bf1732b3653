package models

import "time"

// EntryFieldCount is the number of non-noise lines that make up one check-in/out record.
const EntryFieldCount = 7

// Entry is one raw check-in/out record exactly as it appears in the timesheet export.
type Entry struct {
	Branch   string `json:"branch"`
	TimeIn   string `json:"time_in"`
	DateIn   string `json:"date_in"`
	TimeOut  string `json:"time_out"`
	DateOut  string `json:"date_out"`
	Duration string `json:"duration"`
	Length   string `json:"length"`
}

// NewEntry builds an Entry from an ordered group of lines.
// The caller guarantees len(fields) == EntryFieldCount.
func NewEntry(fields []string) Entry {
	return Entry{
		Branch:   fields[0],
		TimeIn:   fields[1],
		DateIn:   fields[2],
		TimeOut:  fields[3],
		DateOut:  fields[4],
		Duration: fields[5],
		Length:   fields[6],
	}
}

// Fields returns the entry in export column order.
func (e Entry) Fields() []string {
	return []string{e.Branch, e.TimeIn, e.DateIn, e.TimeOut, e.DateOut, e.Duration, e.Length}
}

// EntryColumns are the column headers for raw entry exports.
var EntryColumns = []string{"branch", "time_in", "date_in", "time_out", "date_out", "duration", "length"}

// Record is an Entry with its date and time fields normalized.
type Record struct {
	Branch      string    `json:"branch"`
	TimeIn      string    `json:"time_in"`  // 03:04 PM
	DateIn      string    `json:"date_in"`  // 2006-01-02
	TimeOut     string    `json:"time_out"` // 03:04 PM
	DateOut     string    `json:"date_out"` // 2006-01-02
	Duration    string    `json:"duration"`
	Length      string    `json:"length"`
	DateTimeIn  time.Time `json:"-"`
	DateTimeOut time.Time `json:"-"`
}
