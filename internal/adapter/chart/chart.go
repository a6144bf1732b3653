// Package chart loads the mileage reference data: the branch directory and the
// branch-to-branch distance chart.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

// IndexHeader is the header of the first chart column, which holds the origin codes.
const IndexHeader = "LOCATION"

// LoadFile reads a chart from a .csv or .xlsx file.
func LoadFile(path string) (*models.DistanceChart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mileage chart: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("%w: unsupported chart file %q", types.ErrInvalidChart, path)
	}
}

// fromTable builds a chart from raw cells. The first row is the header: the
// index header followed by the destination codes. Missing trailing cells and
// empty cells read as zero.
func fromTable(table [][]string) (*models.DistanceChart, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: chart is empty", types.ErrInvalidChart)
	}

	header := trimAll(table[0])
	if len(header) < 2 || header[0] != IndexHeader {
		return nil, fmt.Errorf("%w: first header cell must be %s", types.ErrInvalidChart, IndexHeader)
	}
	columns := header[1:]

	rows := make([]models.ChartRow, 0, len(table)-1)
	for i, raw := range table[1:] {
		cells := trimAll(raw)
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		if len(cells)-1 > len(columns) {
			return nil, fmt.Errorf("%w: row %d has more cells than the header", types.ErrInvalidChart, i+2)
		}

		distances := make([]float64, len(columns))
		for j, cell := range cells[1:] {
			if cell == "" {
				continue
			}
			d, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %s column %s: %q is not a number",
					types.ErrInvalidChart, cells[0], columns[j], cell)
			}
			distances[j] = d
		}

		rows = append(rows, models.ChartRow{Code: cells[0], Distances: distances})
	}

	return models.NewDistanceChart(columns, rows)
}

// toTable renders a chart back into header + rows, the inverse of fromTable.
func toTable(c *models.DistanceChart) [][]string {
	table := [][]string{append([]string{IndexHeader}, c.Columns()...)}
	for _, row := range c.Rows() {
		line := make([]string, 0, len(row.Distances)+1)
		line = append(line, row.Code)
		for _, d := range row.Distances {
			line = append(line, strconv.FormatFloat(d, 'f', -1, 64))
		}
		table = append(table, line)
	}
	return table
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
