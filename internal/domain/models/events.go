package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportGeneratedMessage is published on the report exchange after a successful report.
type ReportGeneratedMessage struct {
	ReportID      uuid.UUID `json:"report_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	InputHash     string    `json:"input_hash"`
	Trips         []Trip    `json:"trips"`
	TotalDistance float64   `json:"total_distance"`
	EntryCount    int       `json:"entry_count"`
	Discarded     int       `json:"discarded_groups"`
	Dropped       int       `json:"zero_duration_dropped"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

func NewReportGeneratedMessage(r *Report, correlationID string) ReportGeneratedMessage {
	return ReportGeneratedMessage{
		ReportID:      r.ID,
		GeneratedAt:   r.GeneratedAt,
		InputHash:     r.InputHash,
		Trips:         r.Trips,
		TotalDistance: r.TotalDistance,
		EntryCount:    r.EntryCount,
		Discarded:     r.Discarded,
		Dropped:       r.Dropped,
		CorrelationID: correlationID,
	}
}

// Report converts the message back into the report it describes.
func (m ReportGeneratedMessage) Report() *Report {
	return &Report{
		ID:            m.ReportID,
		GeneratedAt:   m.GeneratedAt,
		InputHash:     m.InputHash,
		Trips:         m.Trips,
		TotalDistance: m.TotalDistance,
		EntryCount:    m.EntryCount,
		Discarded:     m.Discarded,
		Dropped:       m.Dropped,
	}
}

// ReportFeedMessage is pushed to websocket subscribers.
type ReportFeedMessage struct {
	Type   string        `json:"type"`
	Report ReportSummary `json:"report"`
}

const FeedReportGenerated = "report_generated"
