package models

import (
	"fmt"

	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

// ChartRow is one row of the mileage chart: the origin code and a distance per column.
type ChartRow struct {
	Code      string
	Distances []float64
}

// DistanceChart is the branch-to-branch mileage reference. A zero cell means
// there is no applicable distance. It is immutable once built and safe for
// concurrent reads.
type DistanceChart struct {
	columns  []string
	rows     []string
	colIndex map[string]int
	rowIndex map[string]int
	cells    [][]float64
}

// NewDistanceChart builds a chart from column codes and rows. Every row must
// carry exactly one distance per column and codes must be unique on each axis.
func NewDistanceChart(columns []string, rows []ChartRow) (*DistanceChart, error) {
	c := &DistanceChart{
		columns:  append([]string(nil), columns...),
		rows:     make([]string, 0, len(rows)),
		colIndex: make(map[string]int, len(columns)),
		rowIndex: make(map[string]int, len(rows)),
		cells:    make([][]float64, 0, len(rows)),
	}

	for i, code := range columns {
		if code == "" {
			return nil, fmt.Errorf("%w: empty column code at position %d", types.ErrInvalidChart, i+1)
		}
		if _, dup := c.colIndex[code]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", types.ErrInvalidChart, code)
		}
		c.colIndex[code] = i
	}

	for _, row := range rows {
		if row.Code == "" {
			return nil, fmt.Errorf("%w: empty row code", types.ErrInvalidChart)
		}
		if _, dup := c.rowIndex[row.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate row %q", types.ErrInvalidChart, row.Code)
		}
		if len(row.Distances) != len(columns) {
			return nil, fmt.Errorf("%w: row %q has %d distances, want %d",
				types.ErrInvalidChart, row.Code, len(row.Distances), len(columns))
		}
		c.rowIndex[row.Code] = len(c.rows)
		c.rows = append(c.rows, row.Code)
		c.cells = append(c.cells, append([]float64(nil), row.Distances...))
	}

	return c, nil
}

// Distance returns the mileage from one code to another.
func (c *DistanceChart) Distance(from, to string) (float64, error) {
	r, ok := c.rowIndex[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrDistanceLookup, from)
	}
	col, ok := c.colIndex[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrDistanceLookup, to)
	}
	return c.cells[r][col], nil
}

// Columns returns the column codes in chart order.
func (c *DistanceChart) Columns() []string {
	return append([]string(nil), c.columns...)
}

// Rows returns every chart row in chart order.
func (c *DistanceChart) Rows() []ChartRow {
	out := make([]ChartRow, len(c.rows))
	for i, code := range c.rows {
		out[i] = ChartRow{Code: code, Distances: append([]float64(nil), c.cells[i]...)}
	}
	return out
}

// Len reports the number of rows.
func (c *DistanceChart) Len() int {
	return len(c.rows)
}

// Branch maps a display name from the timesheet export to a chart code.
type Branch struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Code string `yaml:"code" json:"code" validate:"required,uppercase"`
}

// BranchDirectory resolves branch display names to chart codes.
// Several names may share one code.
type BranchDirectory struct {
	codes map[string]string
}

func NewBranchDirectory(branches []Branch) (*BranchDirectory, error) {
	d := &BranchDirectory{codes: make(map[string]string, len(branches))}
	for _, b := range branches {
		if b.Name == "" || b.Code == "" {
			return nil, fmt.Errorf("%w: branch name and code are required", types.ErrInvalidBranches)
		}
		if existing, dup := d.codes[b.Name]; dup && existing != b.Code {
			return nil, fmt.Errorf("%w: %q mapped to both %q and %q", types.ErrInvalidBranches, b.Name, existing, b.Code)
		}
		d.codes[b.Name] = b.Code
	}
	return d, nil
}

// Code returns the chart code for a branch display name.
func (d *BranchDirectory) Code(name string) (string, error) {
	code, ok := d.codes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrUnmappedLocation, name)
	}
	return code, nil
}

func (d *BranchDirectory) Len() int {
	return len(d.codes)
}
