package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/trm"
)

// ChartRepo keeps the mileage chart in the mileage_chart table, one row per
// origin and destination pair. Positions preserve the chart's row and column order.
type ChartRepo struct {
	db      *pgxpool.Pool
	trm     *trm.Manager
	service string
}

func NewChartRepo(db *pgxpool.Pool, service string) *ChartRepo {
	return &ChartRepo{
		db:      db,
		trm:     trm.New(db),
		service: service,
	}
}

// Load reads the whole chart.
func (r *ChartRepo) Load(ctx context.Context) (_ *models.DistanceChart, err error) {
	const op = "ChartRepo.Load"
	defer track(r.service, "load_chart")(&err)

	rows, err := TxorDB(ctx, r.db).Query(ctx, `
		SELECT origin, destination, origin_pos, destination_pos, distance
		FROM mileage_chart
		ORDER BY origin_pos, destination_pos;`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	type cell struct {
		origin, destination string
		originPos, destPos  int
		distance            float64
	}

	var cells []cell
	columnCount := 0
	for rows.Next() {
		var c cell
		if err := rows.Scan(&c.origin, &c.destination, &c.originPos, &c.destPos, &c.distance); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		columnCount = max(columnCount, c.destPos+1)
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%s: %w: mileage_chart is empty", op, types.ErrInvalidChart)
	}

	columns := make([]string, columnCount)
	var chartRows []models.ChartRow
	for _, c := range cells {
		columns[c.destPos] = c.destination
		if c.originPos >= len(chartRows) {
			chartRows = append(chartRows, make([]models.ChartRow, c.originPos-len(chartRows)+1)...)
		}
		row := &chartRows[c.originPos]
		if row.Distances == nil {
			row.Code = c.origin
			row.Distances = make([]float64, columnCount)
		}
		row.Distances[c.destPos] = c.distance
	}

	chart, err := models.NewDistanceChart(columns, chartRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return chart, nil
}

// Replace swaps the stored chart for c atomically.
func (r *ChartRepo) Replace(ctx context.Context, c *models.DistanceChart) (err error) {
	const op = "ChartRepo.Replace"
	defer track(r.service, "replace_chart")(&err)

	columns := c.Columns()
	rows := make([][]any, 0, c.Len()*len(columns))
	for i, row := range c.Rows() {
		for j, d := range row.Distances {
			rows = append(rows, []any{row.Code, columns[j], i, j, d})
		}
	}

	err = r.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM mileage_chart;`); err != nil {
			return fmt.Errorf("clear chart: %w", err)
		}
		if _, err := q.CopyFrom(ctx,
			pgx.Identifier{"mileage_chart"},
			[]string{"origin", "destination", "origin_pos", "destination_pos", "distance"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy chart: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, types.ErrDatabaseFailed, err)
	}
	return nil
}
