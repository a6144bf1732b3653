package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/postgres"
	"github.com/Temutjin2k/mileage-report/pkg/trm"
)

type ReportRepo struct {
	db      *pgxpool.Pool
	trm     *trm.Manager
	service string
}

func NewReportRepo(db *pgxpool.Pool, service string) *ReportRepo {
	return &ReportRepo{
		db:      db,
		trm:     trm.New(db),
		service: service,
	}
}

// Save stores a report and its trips in one transaction. A report that is
// already stored yields types.ErrReportExists.
func (r *ReportRepo) Save(ctx context.Context, report *models.Report) (err error) {
	const op = "ReportRepo.Save"
	defer track(r.service, "save_report")(&err)

	err = r.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, r.db)

		_, err := q.Exec(ctx, `
			INSERT INTO reports (id, generated_at, input_hash, total_distance, entry_count, discarded_groups, dropped_entries)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			report.ID, report.GeneratedAt, report.InputHash, report.TotalDistance,
			report.EntryCount, report.Discarded, report.Dropped,
		)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return types.ErrReportExists
			}
			return fmt.Errorf("insert report: %w", err)
		}

		if len(report.Trips) == 0 {
			return nil
		}

		rows := make([][]any, 0, len(report.Trips))
		for i, t := range report.Trips {
			date, err := time.Parse(time.DateOnly, t.Date)
			if err != nil {
				return fmt.Errorf("trip %d date: %w", i+1, err)
			}
			rows = append(rows, []any{report.ID, i + 1, date, t.From, t.To, t.Distance})
		}
		if _, err := q.CopyFrom(ctx,
			pgx.Identifier{"report_trips"},
			[]string{"report_id", "position", "trip_date", "from_branch", "to_branch", "distance"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert trips: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrReportExists) {
			return err
		}
		return fmt.Errorf("%s: %w: %w", op, types.ErrDatabaseFailed, err)
	}
	return nil
}

// List returns one page of report summaries ordered by the filter's sort key.
func (r *ReportRepo) List(ctx context.Context, filters models.Filters) (_ []models.ReportSummary, _ models.Metadata, err error) {
	const op = "ReportRepo.List"
	defer track(r.service, "list_reports")(&err)

	// sort columns come from the safelist only
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), r.id, r.generated_at, r.total_distance, r.entry_count,
		       (SELECT count(*) FROM report_trips t WHERE t.report_id = r.id)
		FROM reports r
		ORDER BY r.%s %s, r.id ASC
		LIMIT $1 OFFSET $2;`, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	totalRecords := 0
	summaries := make([]models.ReportSummary, 0, filters.Limit())
	for rows.Next() {
		var s models.ReportSummary
		if err := rows.Scan(&totalRecords, &s.ID, &s.GeneratedAt, &s.TotalDistance, &s.EntryCount, &s.TripCount); err != nil {
			return nil, models.Metadata{}, fmt.Errorf("%s: scan: %w", op, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, fmt.Errorf("%s: %w", op, err)
	}

	return summaries, models.CalculateMetadata(totalRecords, filters.Page, filters.PageSize), nil
}

// Get returns a stored report with its trips in their original order.
func (r *ReportRepo) Get(ctx context.Context, id uuid.UUID) (report *models.Report, err error) {
	const op = "ReportRepo.Get"
	defer track(r.service, "get_report")(&err)

	report = &models.Report{ID: id}
	err = r.trm.DoReadOnly(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, r.db)

		err := q.QueryRow(ctx, `
			SELECT generated_at, input_hash, total_distance, entry_count, discarded_groups, dropped_entries
			FROM reports WHERE id = $1;`, id,
		).Scan(&report.GeneratedAt, &report.InputHash, &report.TotalDistance,
			&report.EntryCount, &report.Discarded, &report.Dropped)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return types.ErrReportNotFound
			}
			return err
		}

		rows, err := q.Query(ctx, `
			SELECT to_char(trip_date, 'YYYY-MM-DD'), from_branch, to_branch, distance
			FROM report_trips WHERE report_id = $1
			ORDER BY position;`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		report.Trips = make([]models.Trip, 0)
		for rows.Next() {
			var t models.Trip
			if err := rows.Scan(&t.Date, &t.From, &t.To, &t.Distance); err != nil {
				return err
			}
			report.Trips = append(report.Trips, t)
		}
		return rows.Err()
	})
	if err != nil {
		if errors.Is(err, types.ErrReportNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}
