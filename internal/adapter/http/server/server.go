package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/mileage-report/config"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/handler"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/middleware"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

const serverIPAddress = "%s:%s"

type API struct {
	mode   types.ServiceMode
	mux    *http.ServeMux
	server *http.Server
	routes *handlers // routes/handlers
	m      *middleware.Middleware

	addr            string
	shutdownTimeout time.Duration
	log             logger.Logger
}

type handlers struct {
	health  *handler.Health
	report  *handler.Report
	feed    *handler.Feed
	archive *handler.Archive
}

// Deps are the services behind the routes of one mode. Fields the mode does
// not use stay nil.
type Deps struct {
	Reports      handler.ReportService
	Feed         *handler.Feed
	Archive      handler.ArchiveService
	SortSafelist []string
	Tokens       middleware.TokenValidator
	Checks       map[string]handler.Pinger
}

func New(cfg config.Config, deps Deps, logger logger.Logger) (*API, error) {
	routes := &handlers{
		health: handler.NewHealth(string(cfg.Mode), deps.Checks, logger),
	}

	switch cfg.Mode {
	case types.ReportService:
		if deps.Reports == nil || deps.Feed == nil {
			return nil, errors.New("report service and feed are required")
		}
		routes.report = handler.NewReport(deps.Reports, cfg.Server.MaxBodyBytes, logger)
		routes.feed = deps.Feed
	case types.ArchiveService:
		if deps.Archive == nil || deps.Tokens == nil {
			return nil, errors.New("archive service and token validator are required")
		}
		routes.archive = handler.NewArchive(deps.Archive, deps.SortSafelist, logger)
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	api := &API{
		mode:            cfg.Mode,
		mux:             http.NewServeMux(),
		routes:          routes,
		m:               middleware.NewMiddleware(deps.Tokens, string(cfg.Mode), logger),
		addr:            fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Port()),
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		log:             logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	return api, nil
}

func (a *API) setupRoutes() {
	setupRoutes(a.mux, a.routes, a.m, a.mode, a.log)
}

func (a *API) Stop(ctx context.Context) error {
	timeout := a.shutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// Handler returns the mux with every middleware applied.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}
