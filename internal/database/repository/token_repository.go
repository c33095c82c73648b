package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bkoseoglu/messageboard/internal/database/models"
)

// TokenRepository defines the interface for persisted token operations.
// Only refresh, resetPassword and verifyEmail tokens ever reach this table.
type TokenRepository interface {
	Create(token *models.Token) error
	FindLive(value string, kind models.TokenKind, userID uint) (*models.Token, error)
	DeleteByValueAndKind(value string, kind models.TokenKind) (int64, error)
	DeleteByUserAndKind(userID uint, kinds ...models.TokenKind) error
	RevokeAllByUser(userID uint) error
	DeleteExpired() error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *models.Token) error {
	err := r.db.Create(token).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrTokenConflict
	}
	return err
}

// FindLive returns the persisted record matching value, kind and owner that is
// neither revoked nor past its expiry. Revocation and expiry are re-checked at
// lookup time so callers never act on stale state.
func (r *tokenRepository) FindLive(value string, kind models.TokenKind, userID uint) (*models.Token, error) {
	var token models.Token
	err := r.db.
		Where("token = ? AND kind = ? AND user_id = ? AND revoked = ? AND expires_at > ?",
			value, kind, userID, false, time.Now()).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

// DeleteByValueAndKind removes a single token by exact value match and returns
// the number of rows removed. Concurrent callers contending for the same token
// observe either 1 or 0 affected rows; only the winner may proceed.
func (r *tokenRepository) DeleteByValueAndKind(value string, kind models.TokenKind) (int64, error) {
	result := r.db.
		Where("token = ? AND kind = ? AND revoked = ?", value, kind, false).
		Delete(&models.Token{})

	return result.RowsAffected, result.Error
}

// DeleteByUserAndKind removes every token of the given kinds for a user.
// Used after a single-use token is consumed so sibling tokens die with it.
func (r *tokenRepository) DeleteByUserAndKind(userID uint, kinds ...models.TokenKind) error {
	return r.db.
		Where("user_id = ? AND kind IN ?", userID, kinds).
		Delete(&models.Token{}).Error
}

func (r *tokenRepository) RevokeAllByUser(userID uint) error {
	return r.db.Model(&models.Token{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}

func (r *tokenRepository) DeleteExpired() error {
	return r.db.
		Where("expires_at < ?", time.Now()).
		Delete(&models.Token{}).Error
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenConflict = errors.New("token value already exists")
)
