package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/messageboard/internal/handler"
	"github.com/bkoseoglu/messageboard/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID())

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public, throttled)
	authGroup := r.Group("/api/v1/auth")
	authGroup.Use(middleware.Throttle(rateLimiter, logger))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/verify-email", authHandler.VerifyEmail)
	}

	// Protected API routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/auth/send-verification-email", authHandler.SendVerificationEmail)

		api.GET("/users/me", userHandler.GetProfile)
		api.PATCH("/users/me", userHandler.UpdateProfile)
		api.DELETE("/users/me", userHandler.DeleteAccount)

		api.POST("/messages", messageHandler.Create)
		api.GET("/messages", messageHandler.List)
		api.GET("/messages/:message_id", messageHandler.Get)
		api.PUT("/messages/:message_id", messageHandler.Update)
		api.PATCH("/messages/:message_id/archive", messageHandler.Archive)
		api.DELETE("/messages/:message_id", messageHandler.Delete)
	}

	return r
}
