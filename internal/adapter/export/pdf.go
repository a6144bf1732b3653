package export

import (
	"fmt"
	"io"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/phpdave11/gofpdf"
)

var pdfColumnWidths = []float64{35, 60, 60, 35}

func writePDF(w io.Writer, trips []models.Trip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Mileage Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Mileage Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range models.TripColumns {
		pdf.CellFormat(pdfColumnWidths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, t := range trips {
		pdf.CellFormat(pdfColumnWidths[0], 7, t.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColumnWidths[1], 7, t.From, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColumnWidths[2], 7, t.To, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColumnWidths[3], 7, formatDistance(t.Distance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pdfColumnWidths[0]+pdfColumnWidths[1]+pdfColumnWidths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfColumnWidths[3], 8, fmt.Sprintf("%.2f", models.TotalDistance(trips)), "1", 0, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
