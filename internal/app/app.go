package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/coachlens/grading-server/api/v1"
	"github.com/coachlens/grading-server/internal/config"
	handler "github.com/coachlens/grading-server/internal/grpc"
	"github.com/coachlens/grading-server/internal/repository"
	"github.com/coachlens/grading-server/internal/scorer"
	"github.com/coachlens/grading-server/internal/service"
	"github.com/coachlens/grading-server/pkg/cache"
	dbbuilder "github.com/coachlens/grading-server/pkg/database"
	grpcsrv "github.com/coachlens/grading-server/pkg/grpc/server"
)

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	grpcServer *grpcsrv.Server
	poller     *cron.Cron
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	if err := repository.EnsureSchema(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("schema init failed: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	callRepo := repository.NewCallRepository(dbPool)
	queueRepo := repository.NewQueueRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)
	scoreRepo := repository.NewScoreRepository(dbPool)
	templateRepo := repository.NewTemplateRepository(dbPool)

	scorerClient, err := scorer.New(
		scorer.WithBaseURL(cfg.ScorerBaseURL),
		scorer.WithAPIKey(cfg.ScorerAPIKey),
		scorer.WithModel(cfg.ScorerModel),
		scorer.WithTimeout(cfg.ScorerTimeout),
		scorer.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scorer client init failed: %w", err)
	}

	gradingService := service.NewGradingService(scoreRepo, scorerClient, logger)
	sessionService := service.NewSessionService(sessionRepo, templateRepo, scoreRepo, queueRepo, logger)
	// The session service provisions a session at enqueue time so jobs never
	// reach a worker without one.
	queueService := service.NewQueueService(queueRepo, callRepo, sessionRepo, sessionService, gradingService, logger, cfg.QueueMaxAttempts, cfg.QueueConcurrency)

	grpcHandlers := handler.NewGRPCHandlers(queueService, sessionService, cacheClient, logger, cfg.CacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth("grading.v1.GradingPipeline", func(s *grpc.Server) {
		pb.RegisterGradingPipelineServer(s, grpcHandlers)
	})

	poller := cron.New()
	pollLogger := logger.Named("poller")
	_, err = poller.AddFunc(cfg.QueuePollSchedule, func() {
		pollCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		processed, err := queueService.ProcessBatch(pollCtx, cfg.QueueBatchSize)
		if err != nil {
			pollLogger.Error("queue batch failed", zap.Error(err))
			return
		}
		if processed > 0 {
			pollLogger.Info("queue batch processed", zap.Int("items", processed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid queue poll schedule %q: %w", cfg.QueuePollSchedule, err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		poller:     poller,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()
	a.poller.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the poller first so no new batches start, then wait for any
	// in-flight batch to finish before the server and pools go away.
	pollerCtx := a.poller.Stop()
	select {
	case <-pollerCtx.Done():
	case <-ctx.Done():
		a.logger.Warn("poller jobs still running at shutdown deadline")
	}

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("gRPC shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")
	_ = a.logger.Sync()
	return nil
}
