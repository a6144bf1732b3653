package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/adapter/export"
	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

type ReportService interface {
	Generate(ctx context.Context, text string) (*models.Report, error)
	Entries(ctx context.Context, text string) ([]models.Entry, error)
}

type Report struct {
	service      ReportService
	maxBodyBytes int64
	now          func() time.Time
	l            logger.Logger
}

func NewReport(service ReportService, maxBodyBytes int64, l logger.Logger) *Report {
	return &Report{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		now:          time.Now,
		l:            l,
	}
}

// Generate godoc
// @Summary      Generate a mileage report
// @Description  Turns a timesheet export into trips between branches. The export is sent as the user_input form field or as a text/plain body.
// @Tags         Reports
// @Accept       plain
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Produce      application/pdf
// @Param        format      query     string  false  "json, xlsx, csv or pdf"  default(xlsx)
// @Param        user_input  formData  string  false  "timesheet export text"
// @Success      200  {object}  models.Report
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reports [post]
func (h *Report) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionGenerateReport)

	format, err := export.ParseFormat(r.URL.Query().Get("format"), types.FormatXLSX, export.TripFormats)
	if err != nil {
		h.l.Warn(ctx, "unsupported report format", "format", r.URL.Query().Get("format"))
		serviceErrorResponse(w, err)
		return
	}

	text, err := readTimesheet(w, r, h.maxBodyBytes)
	if err != nil {
		h.l.Warn(ctx, "failed to read timesheet", "error", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	report, err := h.service.Generate(ctx, text)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate report", err)
		serviceErrorResponse(w, err)
		return
	}
	ctx = wrap.WithReportID(ctx, report.ID.String())

	if format == types.FormatJSON {
		if err := writeJSON(w, http.StatusOK, envelope{"report": report}, nil); err != nil {
			h.l.Error(ctx, "failed to write response", err)
			internalErrorResponse(w)
		}
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTrips(&buf, format, report.Trips); err != nil {
		h.l.Error(ctx, "failed to render report", err, "format", format.String())
		internalErrorResponse(w)
		return
	}

	h.writeFile(ctx, w, export.ReportPrefix, format, buf.Bytes())
}

// Entries godoc
// @Summary      Extract raw timesheet entries
// @Description  Returns the check-in/out entries found in a timesheet export without deriving trips.
// @Tags         Reports
// @Accept       plain
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format      query     string  false  "json, xlsx or csv"  default(json)
// @Param        user_input  formData  string  false  "timesheet export text"
// @Success      200  {array}   models.Entry
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Router       /entries [post]
func (h *Report) Entries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionExtractEntries)

	format, err := export.ParseFormat(r.URL.Query().Get("format"), types.FormatJSON, export.EntryFormats)
	if err != nil {
		h.l.Warn(ctx, "unsupported entries format", "format", r.URL.Query().Get("format"))
		serviceErrorResponse(w, err)
		return
	}

	text, err := readTimesheet(w, r, h.maxBodyBytes)
	if err != nil {
		h.l.Warn(ctx, "failed to read timesheet", "error", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	entries, err := h.service.Entries(ctx, text)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to extract entries", err)
		serviceErrorResponse(w, err)
		return
	}

	if format == types.FormatJSON {
		if entries == nil {
			entries = []models.Entry{}
		}
		if err := writeJSON(w, http.StatusOK, envelope{"entries": entries}, nil); err != nil {
			h.l.Error(ctx, "failed to write response", err)
			internalErrorResponse(w)
		}
		return
	}

	var buf bytes.Buffer
	if err := export.WriteEntries(&buf, format, entries); err != nil {
		h.l.Error(ctx, "failed to render entries", err, "format", format.String())
		internalErrorResponse(w)
		return
	}

	h.writeFile(ctx, w, export.EntriesPrefix, format, buf.Bytes())
}

func (h *Report) writeFile(ctx context.Context, w http.ResponseWriter, prefix string, format types.ExportFormat, body []byte) {
	filename := export.Filename(prefix, format, h.now())

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", attachment(filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		h.l.Warn(ctx, "failed to write file response", "error", err.Error())
		return
	}

	h.l.Info(ctx, "file sent", "filename", filename, "bytes", len(body))
}
