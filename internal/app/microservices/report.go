package microservices

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/mileage-report/config"
	"github.com/Temutjin2k/mileage-report/internal/adapter/chart"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/handler"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/server"
	repo "github.com/Temutjin2k/mileage-report/internal/adapter/postgres"
	"github.com/Temutjin2k/mileage-report/internal/adapter/rabbit"
	cache "github.com/Temutjin2k/mileage-report/internal/adapter/redis"
	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/internal/service/mileage"
	"github.com/Temutjin2k/mileage-report/internal/service/report"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/postgres"
	rabbitmq "github.com/Temutjin2k/mileage-report/pkg/rabbit"
	"github.com/Temutjin2k/mileage-report/pkg/redis"
	ws "github.com/Temutjin2k/mileage-report/pkg/wsHub"

	redigo "github.com/gomodule/redigo/redis"
)

type ReportService struct {
	postgresDB *postgres.PostgreDB // only with the postgres chart source
	rabbit     *rabbitmq.RabbitMQ
	redisPool  *redigo.Pool // nil when the cache is disabled
	hub        *ws.ConnectionHub
	reports    *report.Service
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewReport(ctx context.Context, cfg config.Config, log logger.Logger) (_ *ReportService, err error) {
	ctx = wrap.WithAction(ctx, "report_service_init")
	name := string(cfg.Mode)

	svc := &ReportService{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			svc.close(ctx)
		}
	}()

	distances, err := svc.loadChart(ctx)
	if err != nil {
		log.Error(ctx, "Failed to load mileage chart", err)
		return nil, err
	}

	directory, err := chart.LoadBranches(cfg.Chart.BranchesFile)
	if err != nil {
		log.Error(ctx, "Failed to load branch directory", err)
		return nil, err
	}
	log.Info(ctx, "reference data loaded", "chart_codes", distances.Len(), "branches", directory.Len())

	checks := map[string]handler.Pinger{}

	svc.rabbit, err = rabbitmq.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "Failed to connect to rabbitmq", err)
		return nil, err
	}
	checks["rabbitmq"] = rabbitCheck(svc.rabbit)

	var reportCache report.Cache
	if cfg.Redis.Enabled {
		svc.redisPool = redis.NewPool(
			redis.PoolDial(redis.AddrDialer(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)),
			redis.PoolMaxIdle(cfg.Redis.MaxIdle),
			redis.PoolMaxActive(cfg.Redis.MaxActive),
			redis.PoolIdleTimeout(cfg.Redis.IdleTimeout),
			redis.PoolTestOnBorrow(cfg.Redis.IdleTimeout/2),
		)
		if err := redis.Ping(ctx, svc.redisPool); err != nil {
			// the cache is optional; reports are still generated without it
			log.Warn(ctx, "redis unavailable at startup", "error", err.Error())
		}
		reportCache = cache.NewReportCache(svc.redisPool, cfg.Redis.TTL)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, svc.redisPool) }
	}
	if svc.postgresDB != nil {
		checks["postgres"] = svc.postgresDB.Pool.Ping
	}

	svc.hub = ws.NewConnHub(log)
	producer := rabbit.NewReportProducer(svc.rabbit, name, log)
	deriver := mileage.NewDeriver(directory, distances)

	svc.reports = report.NewService(name, deriver, reportCache, producer, svc.hub, log)

	svc.httpServer, err = server.New(cfg, server.Deps{
		Reports: svc.reports,
		Feed:    handler.NewFeed(svc.hub, name, log),
		Checks:  checks,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, err
	}

	return svc, nil
}

// loadChart reads the chart from a file or from the mileage_chart table.
func (s *ReportService) loadChart(ctx context.Context) (*models.DistanceChart, error) {
	ctx = wrap.WithAction(ctx, types.ActionLoadChart)

	switch s.cfg.Chart.Source {
	case types.ChartFromPostgres:
		db, err := postgres.New(ctx, s.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect chart database: %w", err)
		}
		s.postgresDB = db

		c, err := repo.NewChartRepo(db.Pool, string(s.cfg.Mode)).Load(ctx)
		if err != nil {
			return nil, err
		}
		s.log.Info(ctx, "mileage chart loaded from postgres")
		return c, nil

	default:
		c, err := chart.LoadFile(s.cfg.Chart.Path)
		if err != nil {
			return nil, err
		}
		s.log.Info(ctx, "mileage chart loaded from file", "path", s.cfg.Chart.Path)
		return c, nil
	}
}

func (s *ReportService) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "report service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Report service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *ReportService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	// wait for background publishing before the broker goes away
	if s.reports != nil {
		s.reports.Wait()
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if s.rabbit != nil {
		if err := s.rabbit.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close rabbitmq", "error", err.Error())
		}
	}

	if s.redisPool != nil {
		if err := s.redisPool.Close(); err != nil {
			s.log.Warn(ctx, "Failed to close redis pool", "error", err.Error())
		}
	}

	s.postgresDB.Close()
}

func rabbitCheck(r *rabbitmq.RabbitMQ) handler.Pinger {
	return func(ctx context.Context) error {
		if r.IsConnectionClosed() {
			return rabbitmq.ErrClosed
		}
		return nil
	}
}
