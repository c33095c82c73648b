package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bkoseoglu/messageboard/internal/api"
	"github.com/bkoseoglu/messageboard/internal/config"
	"github.com/bkoseoglu/messageboard/internal/database"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
	"github.com/bkoseoglu/messageboard/internal/database/service"
	"github.com/bkoseoglu/messageboard/internal/handler"
	"github.com/bkoseoglu/messageboard/internal/logger"
	"github.com/bkoseoglu/messageboard/internal/middleware"
	"github.com/bkoseoglu/messageboard/internal/notifier"
	"github.com/bkoseoglu/messageboard/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting messageboard API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 5. Initialize Services
	tokenService := service.NewTokenService(userRepo, tokenRepo, cfg, appLogger)
	authService := service.NewAuthService(userRepo, tokenRepo, tokenService, appLogger)
	userService := service.NewUserService(userRepo, tokenRepo, appLogger)
	messageService := service.NewMessageService(messageRepo, appLogger)

	// 6. Outbound notifiers and background worker pool
	mailer := notifier.NewMailer(cfg, appLogger)
	var smsSender notifier.SMSSender
	if twilioSender := notifier.NewTwilioSender(cfg, appLogger); twilioSender != nil {
		smsSender = twilioSender
	}

	pool := worker.NewPool(appLogger)
	defer pool.Shutdown(30 * time.Second)

	// 7. Initialize Rate Limiter
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 8. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, tokenService, userService, mailer, smsSender, pool, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	messageHandler := handler.NewMessageHandler(messageService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, appLogger)

	r := api.SetupRouter(authHandler, userHandler, messageHandler, authMiddleware, rateLimiter, appLogger)

	// 9. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
