// Package report runs the timesheet-to-mileage pipeline and fans finished
// reports out to the cache, the event bus and live subscribers.
package report

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/internal/service/parser"
	"github.com/Temutjin2k/mileage-report/pkg/hasher"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/metrics"
)

const publishTimeout = 10 * time.Second

type Service struct {
	deriver   Deriver
	cache     Cache
	publisher Publisher
	feed      Feed

	name string
	log  logger.Logger
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewService wires the pipeline. cache, publisher and feed are optional.
func NewService(name string, deriver Deriver, cache Cache, publisher Publisher, feed Feed, log logger.Logger) *Service {
	return &Service{
		deriver:   deriver,
		cache:     cache,
		publisher: publisher,
		feed:      feed,
		name:      name,
		log:       log,
		now:       time.Now,
	}
}

// Generate turns timesheet text into a mileage report. Identical input is
// served from the cache when one is configured.
func (s *Service) Generate(ctx context.Context, text string) (report *models.Report, err error) {
	ctx = wrap.WithAction(ctx, types.ActionGenerateReport)

	start := time.Now()
	defer func() {
		trips := 0
		if report != nil {
			trips = len(report.Trips)
		}
		metrics.RecordReport(s.name, trips, err, time.Since(start))
	}()

	if strings.TrimSpace(text) == "" {
		return nil, wrap.Error(ctx, types.ErrEmptyInput)
	}

	inputHash := hasher.Hash(text)
	if cached := s.cached(ctx, inputHash); cached != nil {
		return cached, nil
	}

	extraction := s.extract(ctx, text)

	norm, err := parser.Normalize(extraction.Entries)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("normalize entries: %w", err))
	}
	metrics.RecordEntries(s.name, len(norm.Records), extraction.Discarded, norm.Dropped)

	trips, err := s.deriver.Derive(norm.Records)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("derive trips: %w", err))
	}

	report = &models.Report{
		ID:            uuid.New(),
		GeneratedAt:   s.now().UTC(),
		InputHash:     inputHash,
		Trips:         trips,
		TotalDistance: models.TotalDistance(trips),
		EntryCount:    len(extraction.Entries),
		Discarded:     extraction.Discarded,
		Dropped:       norm.Dropped,
	}

	ctx = wrap.WithReportID(ctx, report.ID.String())
	s.log.Info(ctx, "report generated",
		"trips", len(report.Trips),
		"total_distance", report.TotalDistance,
		"entries", report.EntryCount,
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.log.Warn(wrap.WithAction(ctx, types.ActionCacheFailed), "failed to cache report", "error", err.Error())
		}
	}

	s.announce(ctx, report)

	return report, nil
}

// Entries returns the raw entries of a timesheet export without deriving trips.
func (s *Service) Entries(ctx context.Context, text string) ([]models.Entry, error) {
	ctx = wrap.WithAction(ctx, types.ActionExtractEntries)

	if strings.TrimSpace(text) == "" {
		return nil, wrap.Error(ctx, types.ErrEmptyInput)
	}

	extraction := s.extract(ctx, text)
	metrics.RecordEntries(s.name, len(extraction.Entries), extraction.Discarded, 0)

	return extraction.Entries, nil
}

// Wait blocks until background publishing has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) extract(ctx context.Context, text string) parser.Extraction {
	extraction := parser.Extract(text)
	if extraction.Discarded > 0 {
		s.log.Warn(ctx, types.ErrMalformedEntry.Error(), "discarded_groups", extraction.Discarded)
	}
	return extraction
}

func (s *Service) cached(ctx context.Context, inputHash string) *models.Report {
	if s.cache == nil {
		return nil
	}

	report, err := s.cache.Get(ctx, inputHash)
	if err != nil {
		s.log.Warn(wrap.WithAction(ctx, types.ActionCacheFailed), "report cache lookup failed", "error", err.Error())
		return nil
	}

	metrics.RecordCache(s.name, report != nil)
	if report != nil {
		s.log.Debug(wrap.WithReportID(ctx, report.ID.String()), "report served from cache")
	}
	return report
}

// announce publishes the report and pushes its summary to live subscribers in
// the background. Failures are logged and never reach the caller.
func (s *Service) announce(ctx context.Context, report *models.Report) {
	if s.publisher == nil && s.feed == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	correlationID := wrap.FromContext(ctx).RequestID

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.publisher != nil {
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := s.publisher.PublishReportGenerated(pubCtx, models.NewReportGeneratedMessage(report, correlationID))
			cancel()
			if err != nil {
				s.log.Error(wrap.ErrorCtx(ctx, err), "failed to publish generated report", err)
			}
		}

		if s.feed != nil {
			n := s.feed.Broadcast(ctx, models.ReportFeedMessage{
				Type:   models.FeedReportGenerated,
				Report: report.Summary(),
			})
			s.log.Debug(ctx, "report broadcast", "subscribers", n)
		}
	}()
}
