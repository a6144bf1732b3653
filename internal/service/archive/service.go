// Package archive stores generated reports delivered over the event bus and
// serves the report history.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

// SortSafelist lists the accepted sort keys for the report history.
var SortSafelist = []string{"-generated_at", "generated_at", "total_distance", "-total_distance"}

type ReportRepo interface {
	Save(ctx context.Context, report *models.Report) error
	List(ctx context.Context, filters models.Filters) ([]models.ReportSummary, models.Metadata, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
}

type Service struct {
	repo ReportRepo
	log  logger.Logger
}

func NewService(repo ReportRepo, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Archive stores a report received from the event bus. Redelivery of a report
// that is already stored is not an error.
func (s *Service) Archive(ctx context.Context, msg models.ReportGeneratedMessage) error {
	ctx = wrap.WithReportID(wrap.WithAction(ctx, types.ActionArchiveReport), msg.ReportID.String())

	if msg.ReportID == uuid.Nil {
		return wrap.Error(ctx, errors.New("report id is missing"))
	}

	report := msg.Report()
	report.TotalDistance = models.TotalDistance(report.Trips)

	if err := s.repo.Save(ctx, report); err != nil {
		if errors.Is(err, types.ErrReportExists) {
			s.log.Debug(ctx, "report already archived")
			return nil
		}
		return wrap.Error(ctx, fmt.Errorf("archive report: %w", err))
	}

	s.log.Info(ctx, "report archived", "trips", len(report.Trips), "total_distance", report.TotalDistance)
	return nil
}

// List returns one page of archived report summaries.
func (s *Service) List(ctx context.Context, filters models.Filters) (*models.ReportList, error) {
	ctx = wrap.WithAction(ctx, "list_reports")

	reports, meta, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return &models.ReportList{Reports: reports, Metadata: meta}, nil
}

// Get returns an archived report with its trips.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	ctx = wrap.WithReportID(wrap.WithAction(ctx, "get_report"), id.String())

	report, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	return report, nil
}
