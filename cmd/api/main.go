package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bloodconnect/internal/api/http"
	"github.com/spec-kit/bloodconnect/internal/api/http/handlers"
	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/config"
	"github.com/spec-kit/bloodconnect/internal/events"
	"github.com/spec-kit/bloodconnect/internal/observability"
	"github.com/spec-kit/bloodconnect/internal/persistence"
	"github.com/spec-kit/bloodconnect/internal/repository"
	"github.com/spec-kit/bloodconnect/internal/service"
	"github.com/spec-kit/bloodconnect/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	donorRepo := repository.NewDonorProfileRepository(pool)
	requestRepo := repository.NewBloodRequestRepository(pool)
	revocations := auth.NewRedisRevocationStore(redis.Client)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))
	worker.StartMetricsWorker(dispatcher, metrics)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		UserRepo:         userRepo,
		DonorProfileRepo: donorRepo,
		BloodRequestRepo: requestRepo,
	})
	donorService := service.NewDonorService(donorRepo)
	requestService := service.NewBloodRequestService(service.BloodRequestDependencies{
		BloodRequestRepo: requestRepo,
		DonorProfileRepo: donorRepo,
		Dispatcher:       dispatcher,
		Listing:          cfg.Listing,
	})
	dashboardService := service.NewDashboardService(donorRepo, requestRepo, cfg.Listing)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocations)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, Immutable: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:          handlers.NewUsersHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		Donors:         handlers.NewDonorsHandler(donorService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
