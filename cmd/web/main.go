package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/config"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/observability"
	"github.com/spec-kit/bcard-portal/internal/persistence"
	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web"
	"github.com/spec-kit/bcard-portal/internal/web/handlers"
	"github.com/spec-kit/bcard-portal/internal/worker"
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

	metrics := observability.NewMetrics()

	var store persistence.Store
	if cfg.Redis.Addr != "" {
		redisStore := persistence.NewRedisStore(cfg.Redis, logger)
		defer redisStore.Close()
		store = redisStore
	} else {
		logger.Warn("no REDIS_ADDR configured, browser state will not survive restarts")
		store = persistence.NewMemoryStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	activityService := service.NewActivityService(dispatcher, logger, metrics)
	worker.StartActivityWorker(activityService)

	apiClient := bcard.NewClient(cfg.Remote, logger, metrics)
	cardService := service.NewCardService(apiClient, dispatcher, logger)
	likeService := service.NewLikeService(apiClient, dispatcher, logger)
	authService := service.NewAuthService(apiClient, dispatcher, logger)

	sessionMiddleware := session.NewMiddleware(store, cfg.App.SessionCookieName, cfg.App.SessionTTLDays, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	web.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	web.RegisterRoutes(app, web.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Cards:   handlers.NewCardsHandler(cardService, likeService, logger),
		Likes:   handlers.NewLikesHandler(likeService, logger),
		Auth:    handlers.NewAuthHandler(authService, logger),
		Prefs:   handlers.NewPrefsHandler(),
		Session: sessionMiddleware,
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
