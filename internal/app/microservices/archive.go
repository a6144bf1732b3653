package microservices

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Temutjin2k/mileage-report/config"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/handler"
	"github.com/Temutjin2k/mileage-report/internal/adapter/http/server"
	repo "github.com/Temutjin2k/mileage-report/internal/adapter/postgres"
	"github.com/Temutjin2k/mileage-report/internal/adapter/rabbit"
	"github.com/Temutjin2k/mileage-report/internal/service/archive"
	"github.com/Temutjin2k/mileage-report/internal/service/auth"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/postgres"
	rabbitmq "github.com/Temutjin2k/mileage-report/pkg/rabbit"
)

type ArchiveService struct {
	postgresDB *postgres.PostgreDB
	rabbit     *rabbitmq.RabbitMQ
	consumer   *rabbit.ReportConsumer
	archive    *archive.Service
	httpServer *server.API

	consumeCancel context.CancelFunc
	consumeWg     sync.WaitGroup

	cfg config.Config
	log logger.Logger
}

func NewArchive(ctx context.Context, cfg config.Config, log logger.Logger) (_ *ArchiveService, err error) {
	ctx = wrap.WithAction(ctx, "archive_service_init")
	name := string(cfg.Mode)

	svc := &ArchiveService{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			svc.close(ctx)
		}
	}()

	svc.postgresDB, err = postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "Failed to setup database", err)
		return nil, err
	}

	svc.rabbit, err = rabbitmq.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "Failed to connect to rabbitmq", err)
		return nil, err
	}

	reportRepo := repo.NewReportRepo(svc.postgresDB.Pool, name)
	svc.archive = archive.NewService(reportRepo, log)
	svc.consumer = rabbit.NewReportConsumer(svc.rabbit, name, log)

	svc.httpServer, err = server.New(cfg, server.Deps{
		Archive:      svc.archive,
		SortSafelist: archive.SortSafelist,
		Tokens:       auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
		Checks: map[string]handler.Pinger{
			"postgres": svc.postgresDB.Pool.Ping,
			"rabbitmq": rabbitCheck(svc.rabbit),
		},
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, err
	}

	return svc, nil
}

func (s *ArchiveService) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)

	consumeCtx, cancel := context.WithCancel(ctx)
	s.consumeCancel = cancel
	s.consumeWg.Add(1)
	go func() {
		defer s.consumeWg.Done()
		if err := s.consumer.ConsumeReportGenerated(consumeCtx, s.archive.Archive); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "archive service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Archive service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *ArchiveService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.consumeCancel != nil {
		s.consumeCancel()
		s.consumeWg.Wait()
	}

	if s.rabbit != nil {
		if err := s.rabbit.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close rabbitmq", "error", err.Error())
		}
	}

	s.postgresDB.Close()
}
