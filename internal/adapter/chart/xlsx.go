package chart

import (
	"fmt"
	"io"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a chart from the first worksheet of a workbook.
func ReadXLSX(r io.Reader) (*models.DistanceChart, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidChart, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", types.ErrInvalidChart)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidChart, err)
	}

	return fromTable(rows)
}
