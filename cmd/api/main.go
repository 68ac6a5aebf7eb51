package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fixlane/repair-service/internal/api/http"
	"github.com/fixlane/repair-service/internal/api/http/handlers"
	"github.com/fixlane/repair-service/internal/auth"
	"github.com/fixlane/repair-service/internal/config"
	"github.com/fixlane/repair-service/internal/engine"
	"github.com/fixlane/repair-service/internal/events"
	"github.com/fixlane/repair-service/internal/observability"
	"github.com/fixlane/repair-service/internal/persistence"
	"github.com/fixlane/repair-service/internal/repository"
	"github.com/fixlane/repair-service/internal/service"
	"github.com/fixlane/repair-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	policy := engine.DefaultPolicy()
	policy.DiscountCap = cfg.Pricing.DiscountCap
	policy.MaxFactor = cfg.Pricing.MaxTotalFactor
	catalog := engine.DefaultCatalog()
	estimator := engine.NewEstimator(catalog, policy)
	tracker := engine.NewTracker(catalog)

	dispatcher := events.NewInMemoryDispatcher()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		Estimator:    estimator,
		Tracker:      tracker,
		Dispatcher:   dispatcher,
		Cache:        redis,
		Logger:       logger,
		SummaryTTL:   cfg.Redis.SummaryTTL(),
		OpenCountTTL: cfg.Redis.OpenCountTTL(),
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:         staffRepo,
		PasswordResetRepo: resetRepo,
	})
	staffService := service.NewStaffService(*cfg, staffRepo, logger)
	if pool != nil {
		if err := staffService.EnsureBootstrapAdmin(ctx); err != nil {
			logger.Fatal("failed to seed bootstrap admin", zap.Error(err))
		}
	}
	reviewService := service.NewReviewService(reviewRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)
	worker.StartSummaryWarmer(ctx, ticketService, cfg.Redis.SummaryTTL(), logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Admin:          handlers.NewAdminHandler(ticketService),
		Staff:          handlers.NewStaffHandler(authService, staffService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
