package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/mileage-report/internal/adapter/http/middleware"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware, mode types.ServiceMode, log logger.Logger) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux, mode, log)
	setupMetricsRoute(mux)

	switch mode {
	case types.ReportService:
		setupReportRoutes(mux, routes)
	case types.ArchiveService:
		setupArchiveRoutes(mux, routes, m)
	}
}

// setupReportRoutes setups routes for report service
func setupReportRoutes(mux *http.ServeMux, routes *handlers) {
	mux.HandleFunc("POST /reports", routes.report.Generate) // Generate a mileage report
	mux.HandleFunc("POST /entries", routes.report.Entries)  // Extract raw entries
	mux.HandleFunc("GET /ws/reports", routes.feed.Reports)  // Live feed of generated reports
}

// setupArchiveRoutes setups routes for archive service
func setupArchiveRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.Handle("GET /reports", m.Auth(m.RequireRoles(routes.archive.ListReports, types.RoleAdmin)))           // Paginated report history
	mux.Handle("GET /reports/{report_id}", m.Auth(m.RequireRoles(routes.archive.GetReport, types.RoleAdmin))) // One report with trips
}

// setupSwaggerRoutes configures Swagger UI endpoints based on service mode
func setupSwaggerRoutes(mux *http.ServeMux, mode types.ServiceMode, log logger.Logger) {
	var instanceName string

	switch mode {
	case types.ReportService:
		instanceName = "report"
	case types.ArchiveService:
		instanceName = "archive"
	default:
		log.Warn(wrap.WithAction(context.Background(), "setup swagger routes"), "unknown service mode for swagger setup", "mode", mode)
		return
	}

	// Swagger UI endpoint
	swaggerURL := httpSwagger.InstanceName(instanceName)
	mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}
