package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a movement between two different branches on one date.
type Trip struct {
	Date     string  `json:"date"`
	From     string  `json:"from_branch"`
	To       string  `json:"to_branch"`
	Distance float64 `json:"distance"`
}

// TripColumns are the column headers of the final mileage report.
var TripColumns = []string{"Date", "From Branch", "To Branch", "Distance"}

// Report is the result of one timesheet submission.
type Report struct {
	ID            uuid.UUID `json:"id"`
	GeneratedAt   time.Time `json:"generated_at"`
	InputHash     string    `json:"input_hash"`
	Trips         []Trip    `json:"trips"`
	TotalDistance float64   `json:"total_distance"`
	EntryCount    int       `json:"entry_count"`
	Discarded     int       `json:"discarded_groups"`
	Dropped       int       `json:"zero_duration_dropped"`
}

// TotalDistance sums the distance of every trip.
func TotalDistance(trips []Trip) float64 {
	var total float64
	for _, t := range trips {
		total += t.Distance
	}
	return total
}

// ReportSummary is a Report without its trips, used for listings and live feeds.
type ReportSummary struct {
	ID            uuid.UUID `json:"id"`
	GeneratedAt   time.Time `json:"generated_at"`
	TripCount     int       `json:"trip_count"`
	TotalDistance float64   `json:"total_distance"`
	EntryCount    int       `json:"entry_count"`
}

func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:            r.ID,
		GeneratedAt:   r.GeneratedAt,
		TripCount:     len(r.Trips),
		TotalDistance: r.TotalDistance,
		EntryCount:    r.EntryCount,
	}
}
