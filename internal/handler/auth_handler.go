package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/messageboard/internal/database/repository"
	"github.com/bkoseoglu/messageboard/internal/database/service"
	"github.com/bkoseoglu/messageboard/internal/notifier"
	"github.com/bkoseoglu/messageboard/internal/worker"
)

const notifySendTimeout = 30 * time.Second

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService  service.AuthService
	tokenService service.TokenService
	userService  service.UserService
	email        notifier.EmailSender
	sms          notifier.SMSSender
	pool         *worker.Pool
	logger       *slog.Logger
}

// NewAuthHandler creates a new authentication handler. The sms sender may be
// nil when no SMS provider is configured.
func NewAuthHandler(
	authService service.AuthService,
	tokenService service.TokenService,
	userService service.UserService,
	email notifier.EmailSender,
	sms notifier.SMSSender,
	pool *worker.Pool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		userService:  userService,
		email:        email,
		sms:          sms,
		pool:         pool,
		logger:       logger,
	}
}

// Request/Response DTOs
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,e164"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type TokensResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	TokenType        string    `json:"token_type"`
}

func newTokensResponse(tokens *service.TokenPair) TokensResponse {
	return TokensResponse{
		AccessToken:      tokens.Access.Token,
		AccessExpiresAt:  tokens.Access.ExpiresAt,
		RefreshToken:     tokens.Refresh.Token,
		RefreshExpiresAt: tokens.Refresh.ExpiresAt,
		TokenType:        "Bearer",
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid registration request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Email and password (min 8 chars) required."})
		return
	}

	user, tokens, err := h.authService.Register(req.Email, req.Password, req.Phone)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": newTokensResponse(tokens),
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid login request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Email and password required."})
		return
	}

	user, tokens, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": newTokensResponse(tokens),
	})
}

// Refresh handles refresh token rotation
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid refresh request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": newTokensResponse(tokens)})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid logout request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForgotPassword issues a reset-password token and mails it to the account
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid forgot-password request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	resetToken, err := h.tokenService.GenerateResetPasswordToken(req.Email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	email := req.Email
	h.pool.SubmitWithTimeout(notifySendTimeout, func(ctx context.Context) {
		if err := h.email.SendResetPasswordEmail(email, resetToken); err != nil {
			h.logger.Error("❌ [AuthHandler] Reset email delivery failed", "error", err)
		}
	})

	c.Status(http.StatusNoContent)
}

// ResetPassword consumes a reset-password token presented as a query parameter
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	resetToken := c.Query("token")
	if resetToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token required"})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AuthHandler] Invalid reset-password request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password (min 8 chars) required"})
		return
	}

	user, err := h.authService.ResetPassword(resetToken, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if h.sms != nil && user.Phone != nil {
		phone := *user.Phone
		h.pool.SubmitWithTimeout(notifySendTimeout, func(ctx context.Context) {
			if err := h.sms.Send(phone, "Your messageboard password was just changed. Contact support if this wasn't you."); err != nil {
				h.logger.Error("❌ [AuthHandler] Password-change SMS delivery failed", "error", err)
			}
		})
	}

	c.Status(http.StatusNoContent)
}

// SendVerificationEmail issues a verify-email token for the current user
func (h *AuthHandler) SendVerificationEmail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if user.IsEmailVerified {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already verified"})
		return
	}

	verifyToken, err := h.tokenService.GenerateVerifyEmailToken(user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	email := user.Email
	h.pool.SubmitWithTimeout(notifySendTimeout, func(ctx context.Context) {
		if err := h.email.SendVerificationEmail(email, verifyToken); err != nil {
			h.logger.Error("❌ [AuthHandler] Verification email delivery failed", "error", err)
		}
	})

	c.Status(http.StatusNoContent)
}

// VerifyEmail consumes a verify-email token presented as a query parameter
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	verifyToken := c.Query("token")
	if verifyToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token required"})
		return
	}

	if _, err := h.authService.VerifyEmail(verifyToken); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses. Verification
// failures collapse into a single 401 so callers cannot tell a revoked token
// from a forged one.
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, repository.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found with this email"})
	case errors.Is(err, repository.ErrTokenConflict):
		h.logger.Error("❌ [AuthHandler] Token value collision", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		h.logger.Error("❌ [AuthHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID pulls the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
