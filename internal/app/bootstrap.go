package app

import (
	"time"

	"backend/internal/app/exchange"
	"backend/internal/app/health"
	"backend/internal/app/message"
	"backend/internal/app/notification"
	"backend/internal/app/plan"
	"backend/internal/app/transaction"
	"backend/internal/app/user"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/db/seeder"
	"backend/internal/gateways/websocket"
	"backend/internal/middleware"
	"backend/internal/providers/redis"
	"backend/internal/router"
	"backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()

	userRepo := user.NewRepository(dbConn)
	messageRepo := message.NewRepository(dbConn)
	notificationRepo := notification.NewRepository(dbConn)
	planRepo := plan.NewRepository(dbConn)
	transactionRepo := transaction.NewRepository(dbConn)
	exchangeRepo := exchange.NewRepository(dbConn)

	userService := user.NewService(userRepo, redisProvider, logger, cfg.JWTSecret, cfg.TokenTTL)
	messageService := message.NewService(messageRepo, userService, redisProvider, eventBus, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	planService := plan.NewService(planRepo, logger)
	transactionService := transaction.NewService(transactionRepo, logger)
	exchangeService := exchange.NewService(
		exchangeRepo,
		exchange.NewRateClient(cfg.ExchangeAPIURL),
		redisProvider,
		logger,
		cfg.RateCacheTTL,
	)

	feed := message.NewFeed(eventBus, messageService.ListConversation, logger)
	hub := websocket.NewHub(logger, feed, messageService, cfg.JWTSecret)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	userHandler := user.NewHandler(userService)
	messageHandler := message.NewHandler(messageService)
	notificationHandler := notification.NewHandler(notificationService)
	planHandler := plan.NewHandler(planService)
	transactionHandler := transaction.NewHandler(transactionService)
	exchangeHandler := exchange.NewHandler(exchangeService)

	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(user.RoleAdmin)
	rateLimit := middleware.RateLimitMiddleware(cfg.AuthRatePerMinute, time.Minute, logger)

	r := router.NewRouter(logger, authRequired, adminOnly, rateLimit)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterUserRoutes(userHandler)
	r.RegisterMessageRoutes(messageHandler)
	r.RegisterNotificationRoutes(notificationHandler)
	r.RegisterPlanRoutes(planHandler)
	r.RegisterTransactionRoutes(transactionHandler)
	r.RegisterExchangeRoutes(exchangeHandler)

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
