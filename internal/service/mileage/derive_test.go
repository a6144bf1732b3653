package mileage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

func testDeriver(t *testing.T) *Deriver {
	t.Helper()

	dir, err := models.NewBranchDirectory([]models.Branch{
		{Name: "A", Code: "AA"},
		{Name: "B", Code: "BB"},
		{Name: "C", Code: "CC"},
		{Name: "Main Library", Code: "MAIN"},
		{Name: "Holland Branch", Code: "HOLL"},
		{Name: "Cherry Street Mission", Code: "MAIN"},
		{Name: "Ghost Branch", Code: "GHOST"},
	})
	if err != nil {
		t.Fatal(err)
	}

	codes := []string{"AA", "BB", "CC", "MAIN", "HOLL"}
	chart, err := models.NewDistanceChart(codes, []models.ChartRow{
		{Code: "AA", Distances: []float64{0, 5, 0, 1, 1}},
		{Code: "BB", Distances: []float64{5, 0, 7, 1, 1}},
		{Code: "CC", Distances: []float64{0, 7, 0, 1, 1}},
		{Code: "MAIN", Distances: []float64{1, 1, 1, 0, 12.3}},
		{Code: "HOLL", Distances: []float64{1, 1, 1, 12.3, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}

	return NewDeriver(dir, chart)
}

func rec(branch, date string, hour int) models.Record {
	d, _ := time.Parse("2006-01-02", date)
	return models.Record{
		Branch:     branch,
		DateIn:     date,
		DateOut:    date,
		DateTimeIn: d.Add(time.Duration(hour) * time.Hour),
	}
}

func TestDerive_SingleRecordDateYieldsNothing(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{rec("A", "2024-01-05", 9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("got %d trips, want 0", len(trips))
	}
}

func TestDerive_SkipsRepeatedBranch(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("A", "2024-01-05", 8),
		rec("B", "2024-01-05", 9),
		rec("B", "2024-01-05", 10),
		rec("C", "2024-01-05", 11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Trip{
		{Date: "2024-01-05", From: "A", To: "B", Distance: 5},
		{Date: "2024-01-05", From: "B", To: "C", Distance: 7},
	}
	if !reflect.DeepEqual(trips, want) {
		t.Fatalf("got %+v\nwant %+v", trips, want)
	}
}

func TestDerive_ZeroDistanceOmitted(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("A", "2024-01-05", 8),
		rec("C", "2024-01-05", 9),
		rec("B", "2024-01-05", 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A->C is zero in the chart; the walk still continues from C.
	want := []models.Trip{{Date: "2024-01-05", From: "C", To: "B", Distance: 7}}
	if !reflect.DeepEqual(trips, want) {
		t.Fatalf("got %+v\nwant %+v", trips, want)
	}
}

func TestDerive_SameCodeDifferentNames(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("Main Library", "2024-01-05", 8),
		rec("Cherry Street Mission", "2024-01-05", 9),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("MAIN->MAIN is zero miles and must be omitted, got %+v", trips)
	}
}

func TestDerive_DatesInFirstSeenOrder(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("A", "2024-01-06", 8),
		rec("B", "2024-01-06", 9),
		rec("B", "2024-01-05", 8),
		rec("A", "2024-01-06", 10),
		rec("C", "2024-01-05", 9),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Trip{
		{Date: "2024-01-06", From: "A", To: "B", Distance: 5},
		{Date: "2024-01-06", From: "B", To: "A", Distance: 5},
		{Date: "2024-01-05", From: "B", To: "C", Distance: 7},
	}
	if !reflect.DeepEqual(trips, want) {
		t.Fatalf("got %+v\nwant %+v", trips, want)
	}
}

func TestDerive_EndToEndPair(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("Main Library", "2024-01-05", 9),
		rec("Holland Branch", "2024-01-05", 11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Trip{{Date: "2024-01-05", From: "Main Library", To: "Holland Branch", Distance: 12.3}}
	if !reflect.DeepEqual(trips, want) {
		t.Fatalf("got %+v\nwant %+v", trips, want)
	}
}

func TestDerive_Errors(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    error
	}{
		{
			name:    "unmapped branch",
			records: []models.Record{rec("A", "2024-01-05", 8), rec("Nowhere", "2024-01-05", 9)},
			want:    types.ErrUnmappedLocation,
		},
		{
			name:    "code missing from chart",
			records: []models.Record{rec("A", "2024-01-05", 8), rec("Ghost Branch", "2024-01-05", 9)},
			want:    types.ErrDistanceLookup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trips, err := testDeriver(t).Derive(tt.records)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if trips != nil {
				t.Fatalf("no partial output expected, got %+v", trips)
			}
		})
	}
}

func TestDerive_UnmappedSameBranchIsNotLookedUp(t *testing.T) {
	trips, err := testDeriver(t).Derive([]models.Record{
		rec("Nowhere", "2024-01-05", 8),
		rec("Nowhere", "2024-01-05", 9),
	})
	if err != nil {
		t.Fatalf("same-branch pair must not hit the directory: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("got %+v", trips)
	}
}
