package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

func entry(branch, timeIn, date, timeOut, duration string) models.Entry {
	return models.Entry{
		Branch:   branch,
		TimeIn:   timeIn,
		DateIn:   date,
		TimeOut:  timeOut,
		DateOut:  date,
		Duration: duration,
		Length:   "1.0 miles",
	}
}

func TestNormalize_FormatsFields(t *testing.T) {
	got, err := Normalize([]models.Entry{entry("Main Library", "9:05 AM", "Jan 5, 2024", "1:30 PM", "4:25")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Records) != 1 {
		t.Fatalf("got %d records", len(got.Records))
	}

	rec := got.Records[0]
	if rec.DateIn != "2024-01-05" || rec.DateOut != "2024-01-05" {
		t.Errorf("unexpected dates %q %q", rec.DateIn, rec.DateOut)
	}
	if rec.TimeIn != "09:05 AM" || rec.TimeOut != "01:30 PM" {
		t.Errorf("unexpected times %q %q", rec.TimeIn, rec.TimeOut)
	}
	if want := time.Date(2024, 1, 5, 9, 5, 0, 0, time.UTC); !rec.DateTimeIn.Equal(want) {
		t.Errorf("got datetime_in %v, want %v", rec.DateTimeIn, want)
	}
	if want := time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC); !rec.DateTimeOut.Equal(want) {
		t.Errorf("got datetime_out %v, want %v", rec.DateTimeOut, want)
	}
	if rec.Duration != "4:25" || rec.Length != "1.0 miles" {
		t.Errorf("duration/length must be kept verbatim: %+v", rec)
	}
}

func TestNormalize_DropsZeroDuration(t *testing.T) {
	got, err := Normalize([]models.Entry{
		entry("Main Library", "9:00 AM", "Jan 5, 2024", "10:00 AM", "1:00"),
		entry("Kent Branch", "10:10 AM", "Jan 5, 2024", "10:10 AM", "0:00"),
		entry("Holland Branch", "11:00 AM", "Jan 5, 2024", "12:00 PM", "1:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Dropped != 1 || len(got.Records) != 2 {
		t.Fatalf("got %d records, %d dropped", len(got.Records), got.Dropped)
	}
	for _, r := range got.Records {
		if r.Branch == "Kent Branch" {
			t.Fatalf("zero-duration record survived")
		}
	}
}

func TestNormalize_ClockMarkerCase(t *testing.T) {
	got, err := Normalize([]models.Entry{entry("Main Library", "9:00 am", "Jan 5, 2024", "12:15 pm", "3:15")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := got.Records[0]
	if rec.TimeIn != "09:00 AM" || rec.TimeOut != "12:15 PM" {
		t.Fatalf("unexpected times %q %q", rec.TimeIn, rec.TimeOut)
	}
	if rec.DateTimeOut.Hour() != 12 {
		t.Fatalf("12:15 pm must be noon, got %v", rec.DateTimeOut)
	}
}

func TestNormalize_SortsStably(t *testing.T) {
	got, err := Normalize([]models.Entry{
		entry("Late", "3:00 PM", "Jan 5, 2024", "4:00 PM", "1:00"),
		entry("Tie A", "9:00 AM", "Jan 5, 2024", "10:00 AM", "1:00"),
		entry("Yesterday", "11:00 PM", "Jan 4, 2024", "11:30 PM", "0:30"),
		entry("Tie B", "9:00 AM", "Jan 5, 2024", "9:30 AM", "0:30"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Yesterday", "Tie A", "Tie B", "Late"}
	for i, r := range got.Records {
		if r.Branch != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, r.Branch, want[i])
		}
	}
}

func TestNormalize_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		entry models.Entry
	}{
		{"bad date", entry("Main Library", "9:00 AM", "2024-01-05", "10:00 AM", "1:00")},
		{"bad time", entry("Main Library", "09:00", "Jan 5, 2024", "10:00 AM", "1:00")},
		{"hour zero", entry("Main Library", "0:30 AM", "Jan 5, 2024", "10:00 AM", "1:00")},
		{"hour thirteen", entry("Main Library", "9:00 AM", "Jan 5, 2024", "13:00 PM", "1:00")},
		{"bad date on dropped record", entry("Main Library", "9:00 AM", "Janu 5 2024", "9:00 AM", "0:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]models.Entry{
				entry("Kent Branch", "8:00 AM", "Jan 5, 2024", "8:30 AM", "0:30"),
				tt.entry,
			})
			if !errors.Is(err, types.ErrInvalidFormat) {
				t.Fatalf("got %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize(nil)
	if err != nil || len(got.Records) != 0 {
		t.Fatalf("got %+v, %v", got, err)
	}
}
