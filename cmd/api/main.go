package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/petmatch-service/internal/api/http"
	"github.com/spec-kit/petmatch-service/internal/api/http/handlers"
	"github.com/spec-kit/petmatch-service/internal/auth"
	"github.com/spec-kit/petmatch-service/internal/config"
	"github.com/spec-kit/petmatch-service/internal/events"
	"github.com/spec-kit/petmatch-service/internal/observability"
	"github.com/spec-kit/petmatch-service/internal/persistence"
	"github.com/spec-kit/petmatch-service/internal/repository"
	"github.com/spec-kit/petmatch-service/internal/service"
	"github.com/spec-kit/petmatch-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	petRepo := repository.NewPetRepository(pool)
	requestRepo := repository.NewAdoptionRequestRepository(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	petService := service.NewPetService(petRepo, userRepo, redis)
	adoptionService := service.NewAdoptionService(service.AdoptionDependencies{
		RequestRepo: requestRepo,
		PetRepo:     petRepo,
		UserRepo:    userRepo,
		TxManager:   txManager,
		Dispatcher:  dispatcher,
		Cache:       redis,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Users:          handlers.NewUsersHandler(authService, petService),
		Pets:           handlers.NewPetsHandler(petService),
		Adoptions:      handlers.NewAdoptionsHandler(adoptionService),
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
