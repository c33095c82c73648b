package models

import (
	"database/sql/driver"
	"errors"
	"time"
)

// TokenKind discriminates what a token may be used for
type TokenKind string

const (
	TokenKindAccess        TokenKind = "access"
	TokenKindRefresh       TokenKind = "refresh"
	TokenKindResetPassword TokenKind = "resetPassword"
	TokenKindVerifyEmail   TokenKind = "verifyEmail"
)

// Scan implements the sql.Scanner interface for TokenKind
func (k *TokenKind) Scan(value interface{}) error {
	if value == nil {
		return errors.New("token kind cannot be null")
	}
	switch v := value.(type) {
	case []byte:
		*k = TokenKind(v)
	case string:
		*k = TokenKind(v)
	default:
		return errors.New("invalid token kind type")
	}
	return nil
}

// Value implements the driver.Valuer interface for TokenKind
func (k TokenKind) Value() (driver.Value, error) {
	return string(k), nil
}

// Token stores issued bearer tokens for authentication flows.
// Access tokens are stateless and are never written to this table;
// only refresh, resetPassword and verifyEmail tokens are persisted.
type Token struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Kind      TokenKind `gorm:"not null;index" json:"kind"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Token) TableName() string {
	return "tokens"
}

// Live reports whether the token can still be accepted at the given time
func (t *Token) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
