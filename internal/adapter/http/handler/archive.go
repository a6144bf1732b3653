package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/validator"
)

type ArchiveService interface {
	List(ctx context.Context, filters models.Filters) (*models.ReportList, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
}

type Archive struct {
	service      ArchiveService
	sortSafelist []string
	l            logger.Logger
}

func NewArchive(service ArchiveService, sortSafelist []string, l logger.Logger) *Archive {
	return &Archive{
		service:      service,
		sortSafelist: sortSafelist,
		l:            l,
	}
}

// ListReports godoc
// @Summary      List archived reports
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "page number"  default(1)
// @Param        page_size  query  int     false  "page size"    default(20)
// @Param        sort       query  string  false  "generated_at, total_distance, -generated_at or -total_distance"  default(-generated_at)
// @Success      200  {object}  models.ReportList
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /reports [get]
func (h *Archive) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_reports")

	v := validator.New()
	qs := r.URL.Query()

	var defaultSort string
	if len(h.sortSafelist) > 0 {
		defaultSort = h.sortSafelist[0]
	}

	filters, err := models.NewFilters(
		readInt(qs, "page", 1, v),
		readInt(qs, "page_size", 20, v),
		readString(qs, "sort", defaultSort),
		h.sortSafelist,
	)
	if err != nil {
		h.l.Error(ctx, "failed to build filters", err)
		internalErrorResponse(w)
		return
	}

	if filters.Validate(v); !v.Valid() {
		h.l.Warn(ctx, "invalid list parameters")
		failedValidationResponse(w, v.Errors)
		return
	}

	list, err := h.service.List(ctx, filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list reports", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"reports": list.Reports, "metadata": list.Metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		internalErrorResponse(w)
	}
}

// GetReport godoc
// @Summary      Get an archived report
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        report_id  path  string  true  "report id"
// @Success      200  {object}  models.Report
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reports/{report_id} [get]
func (h *Archive) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_report")

	reportID, err := uuid.Parse(r.PathValue("report_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid report uuid format")
		badRequestResponse(w, "invalid report uuid format")
		return
	}
	ctx = wrap.WithReportID(ctx, reportID.String())

	report, err := h.service.Get(ctx, reportID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get report", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"report": report}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		internalErrorResponse(w)
	}
}
