package parser

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

const (
	exportDateLayout = "Jan 2, 2006"
	exportTimeLayout = "3:04 PM"

	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"

	// zeroDuration is what the export shows for an automatic check-in/out with no time spent.
	zeroDuration = "0:00"
)

// Normalization is the result of normalizing extracted entries.
type Normalization struct {
	Records []models.Record
	// Dropped counts zero-duration entries removed from the result.
	Dropped int
}

// Normalize parses the date and time fields of every entry, drops zero-duration
// entries and sorts the rest by check-in time. Entries with equal check-in times
// keep their input order. Any unparsable field fails the whole batch.
func Normalize(entries []models.Entry) (Normalization, error) {
	records := make([]models.Record, 0, len(entries))

	for i, e := range entries {
		rec, err := normalizeEntry(e)
		if err != nil {
			return Normalization{}, fmt.Errorf("entry %d (%s): %w", i+1, e.Branch, err)
		}
		records = append(records, rec)
	}

	kept := records[:0]
	dropped := 0
	for _, rec := range records {
		if rec.Duration == zeroDuration {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}

	slices.SortStableFunc(kept, func(a, b models.Record) int {
		return a.DateTimeIn.Compare(b.DateTimeIn)
	})

	return Normalization{Records: kept, Dropped: dropped}, nil
}

func normalizeEntry(e models.Entry) (models.Record, error) {
	dateIn, err := parseDate(e.DateIn)
	if err != nil {
		return models.Record{}, err
	}
	dateOut, err := parseDate(e.DateOut)
	if err != nil {
		return models.Record{}, err
	}
	timeIn, err := parseClock(e.TimeIn)
	if err != nil {
		return models.Record{}, err
	}
	timeOut, err := parseClock(e.TimeOut)
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{
		Branch:      e.Branch,
		TimeIn:      timeIn.Format(TimeLayout),
		DateIn:      dateIn.Format(DateLayout),
		TimeOut:     timeOut.Format(TimeLayout),
		DateOut:     dateOut.Format(DateLayout),
		Duration:    e.Duration,
		Length:      e.Length,
		DateTimeIn:  combine(dateIn, timeIn),
		DateTimeOut: combine(dateOut, timeOut),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(exportDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", types.ErrInvalidFormat, s)
	}
	return t, nil
}

// parseClock reads a 12-hour clock time. The hour must be 1-12 and the
// AM/PM marker is matched case-insensitively.
func parseClock(s string) (time.Time, error) {
	hour, _, _ := strings.Cut(s, ":")
	if h, err := strconv.Atoi(hour); err != nil || h < 1 || h > 12 {
		return time.Time{}, fmt.Errorf("%w: time %q", types.ErrInvalidFormat, s)
	}

	t, err := time.Parse(exportTimeLayout, strings.ToUpper(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", types.ErrInvalidFormat, s)
	}
	return t, nil
}

func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
