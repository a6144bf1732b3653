package report

import (
	"context"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
)

type Deriver interface {
	Derive(records []models.Record) ([]models.Trip, error)
}

// Cache keeps finished reports keyed by input hash. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, inputHash string) (*models.Report, error)
	Set(ctx context.Context, report *models.Report) error
}

type Publisher interface {
	PublishReportGenerated(ctx context.Context, msg models.ReportGeneratedMessage) error
}

// Feed pushes messages to live subscribers.
type Feed interface {
	Broadcast(ctx context.Context, msg any) int
}
