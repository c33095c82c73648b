package service

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	GetUser(userID uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateEmail(userID uint, email string) error
	UpdatePassword(userID uint, newPassword string) error
	DeleteUser(userID uint) error
}

type userService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	logger    *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

func (s *userService) GetUser(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

// UpdateEmail changes the address and drops the verified flag until the new
// address passes verification again
func (s *userService) UpdateEmail(userID uint, email string) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil && existing.ID != userID {
		return ErrEmailAlreadyExists
	}

	if err := s.userRepo.UpdateEmail(userID, email); err != nil {
		s.logger.Error("❌ [UserService] Failed to update email", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("✅ [UserService] Email updated", "user_id", userID)
	return nil
}

func (s *userService) UpdatePassword(userID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
		return err
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		s.logger.Error("❌ [UserService] Failed to update password", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("✅ [UserService] Password updated", "user_id", userID)
	return nil
}

// DeleteUser removes the account. Token rows cascade with the user, but the
// revocation pass runs first so soft-deleted users hold no live tokens either.
func (s *userService) DeleteUser(userID uint) error {
	if err := s.tokenRepo.RevokeAllByUser(userID); err != nil {
		s.logger.Error("❌ [UserService] Failed to revoke tokens", "user_id", userID, "error", err)
		return err
	}

	if err := s.userRepo.Delete(userID); err != nil {
		s.logger.Error("❌ [UserService] Failed to delete user", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("✅ [UserService] User deleted", "user_id", userID)
	return nil
}
