package chart

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
)

// ReadCSV reads a chart exported as CSV.
func ReadCSV(r io.Reader) (*models.DistanceChart, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	table, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidChart, err)
	}

	return fromTable(table)
}

// WriteCSV writes a chart in the layout ReadCSV expects.
func WriteCSV(w io.Writer, c *models.DistanceChart) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(toTable(c)); err != nil {
		return fmt.Errorf("write chart csv: %w", err)
	}
	return nil
}
