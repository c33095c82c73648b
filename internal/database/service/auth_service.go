package service

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(email, password string, phone *string) (*models.User, *TokenPair, error)
	Login(email, password string) (*models.User, *TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
	Logout(refreshToken string) error
	ResetPassword(resetToken, newPassword string) (*models.User, error)
	VerifyEmail(verifyToken string) (*models.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	tokenService TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	tokenService TokenService,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (s *authService) Register(email, password string, phone *string) (*models.User, *TokenPair, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email)

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, nil, ErrEmailAlreadyExists
	}

	// Hashing is an explicit step here, never a persistence hook
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Phone:    phone,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, nil, err
	}

	tokens, err := s.tokenService.GenerateAuthTokens(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*models.User, *TokenPair, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.tokenService.GenerateAuthTokens(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, tokens, nil
}

// Refresh rotates a refresh token: verify, resolve the owner, then delete the
// consumed record and mint a fresh pair. The delete is conditional on exactly
// one row being removed, so of two concurrent calls presenting the same token
// only one can mint; the loser observes zero affected rows and is rejected.
func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	record, err := s.tokenService.Verify(refreshToken, models.TokenKindRefresh)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid refresh token", "error", err)
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		// A deleted account is indistinguishable from a bad token for callers
		s.logger.Warn("⚠️ [AuthService] Refresh token owner missing", "user_id", record.UserID)
		return nil, ErrUnauthenticated
	}

	rows, err := s.tokenRepo.DeleteByValueAndKind(refreshToken, models.TokenKindRefresh)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to delete refresh token", "error", err)
		return nil, err
	}
	if rows != 1 {
		s.logger.Warn("⚠️ [AuthService] Refresh token already consumed", "user_id", user.ID)
		return nil, ErrUnauthenticated
	}

	tokens, err := s.tokenService.GenerateAuthTokens(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate new tokens", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Token refreshed successfully", "user_id", user.ID)
	return tokens, nil
}

func (s *authService) Logout(refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	rows, err := s.tokenRepo.DeleteByValueAndKind(refreshToken, models.TokenKindRefresh)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Warn("⚠️ [AuthService] Token not found for logout")
		return repository.ErrTokenNotFound
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

// ResetPassword consumes a reset-password token, updates the password hash and
// deletes every outstanding reset-password token for the owner, so neither the
// presented token nor any sibling can be replayed
func (s *authService) ResetPassword(resetToken, newPassword string) (*models.User, error) {
	record, err := s.tokenService.Verify(resetToken, models.TokenKindResetPassword)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Password reset failed", "error", err)
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Reset token owner missing", "user_id", record.UserID)
		return nil, ErrUnauthenticated
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash new password", "error", err)
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		s.logger.Error("❌ [AuthService] Failed to update password", "error", err)
		return nil, err
	}

	if err := s.tokenRepo.DeleteByUserAndKind(user.ID, models.TokenKindResetPassword); err != nil {
		s.logger.Error("❌ [AuthService] Failed to delete reset tokens", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Password reset completed", "user_id", user.ID)
	return user, nil
}

// VerifyEmail consumes a verify-email token and flags the owner as verified
func (s *authService) VerifyEmail(verifyToken string) (*models.User, error) {
	record, err := s.tokenService.Verify(verifyToken, models.TokenKindVerifyEmail)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Email verification failed", "error", err)
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Verify token owner missing", "user_id", record.UserID)
		return nil, ErrUnauthenticated
	}

	if err := s.tokenRepo.DeleteByUserAndKind(user.ID, models.TokenKindVerifyEmail); err != nil {
		s.logger.Error("❌ [AuthService] Failed to delete verify tokens", "error", err)
		return nil, err
	}

	if err := s.userRepo.SetEmailVerified(user.ID); err != nil {
		s.logger.Error("❌ [AuthService] Failed to flag email verified", "error", err)
		return nil, err
	}

	user.IsEmailVerified = true
	s.logger.Info("✅ [AuthService] Email verified", "user_id", user.ID)
	return user, nil
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("please authenticate")
)
