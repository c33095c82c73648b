package service

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bkoseoglu/messageboard/internal/config"
	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
)

// TokenService defines the interface for the token lifecycle: minting,
// persisting, verifying and revoking bearer tokens of every kind
type TokenService interface {
	Issue(userID uint, expiresAt time.Time, kind models.TokenKind) (string, error)
	Save(value string, userID uint, expiresAt time.Time, kind models.TokenKind) (*models.Token, error)
	Verify(value string, kind models.TokenKind) (*models.Token, error)
	ValidateAccessToken(value string) (uint, error)
	GenerateAuthTokens(user *models.User) (*TokenPair, error)
	GenerateResetPasswordToken(email string) (string, error)
	GenerateVerifyEmailToken(user *models.User) (string, error)
}

// TokenDetail is a signed token together with its absolute expiry
type TokenDetail struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenPair represents the access and refresh tokens issued on authentication
type TokenPair struct {
	Access  TokenDetail `json:"access"`
	Refresh TokenDetail `json:"refresh"`
}

// Claims is the JWT payload carried by every issued token
type Claims struct {
	Kind models.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSecret []byte
	cfg       *config.Config
	logger    *slog.Logger
}

// NewTokenService creates a new token service instance
func NewTokenService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	cfg *config.Config,
	logger *slog.Logger,
) TokenService {
	return &tokenService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		cfg:       cfg,
		logger:    logger,
	}
}

// Issue signs a token for the user with the given kind and absolute expiry.
// It performs no I/O; a signing failure is a configuration error.
func (s *tokenService) Issue(userID uint, expiresAt time.Time, kind models.TokenKind) (string, error) {
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Save persists an issued token. The unique index on the token column turns a
// value collision into repository.ErrTokenConflict, propagated unchanged.
func (s *tokenService) Save(value string, userID uint, expiresAt time.Time, kind models.TokenKind) (*models.Token, error) {
	record := &models.Token{
		Token:     value,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: expiresAt,
		Revoked:   false,
	}

	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	return record, nil
}

// Verify checks the signature and expiry of the presented token and then
// cross-checks the persisted record for the expected kind. Signature alone is
// not enough: stored kinds must be revocable before their natural expiry, so a
// live row matching value, kind and owner is mandatory.
func (s *tokenService) Verify(value string, kind models.TokenKind) (*models.Token, error) {
	claims, err := s.parse(value)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	record, err := s.tokenRepo.FindLive(value, kind, uint(userID))
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [TokenService] No live record for presented token", "kind", kind)
		}
		return nil, err
	}

	return record, nil
}

// ValidateAccessToken verifies an access token on the stateless fast path:
// signature, embedded kind tag and expiry only, no store lookup
func (s *tokenService) ValidateAccessToken(value string) (uint, error) {
	claims, err := s.parse(value)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if claims.Kind != models.TokenKindAccess {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

// GenerateAuthTokens mints an access and refresh token pair for the user.
// Both expiries derive from a single clock read. The access token stays
// stateless; only the refresh token is persisted.
func (s *tokenService) GenerateAuthTokens(user *models.User) (*TokenPair, error) {
	now := time.Now()

	accessExpires := now.Add(time.Duration(s.cfg.AccessTokenTTL) * time.Second)
	accessToken, err := s.Issue(user.ID, accessExpires, models.TokenKindAccess)
	if err != nil {
		s.logger.Error("❌ [TokenService] Failed to sign access token", "error", err)
		return nil, err
	}

	refreshExpires := now.Add(time.Duration(s.cfg.RefreshTokenTTL) * time.Second)
	refreshToken, err := s.Issue(user.ID, refreshExpires, models.TokenKindRefresh)
	if err != nil {
		s.logger.Error("❌ [TokenService] Failed to sign refresh token", "error", err)
		return nil, err
	}

	if _, err := s.Save(refreshToken, user.ID, refreshExpires, models.TokenKindRefresh); err != nil {
		s.logger.Error("❌ [TokenService] Failed to store refresh token", "error", err)
		return nil, err
	}

	return &TokenPair{
		Access:  TokenDetail{Token: accessToken, ExpiresAt: accessExpires},
		Refresh: TokenDetail{Token: refreshToken, ExpiresAt: refreshExpires},
	}, nil
}

// GenerateResetPasswordToken issues and persists a reset-password token for
// the account registered under the given email
func (s *tokenService) GenerateResetPasswordToken(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [TokenService] Reset requested for unknown email", "email", email)
		}
		return "", err
	}

	expires := time.Now().Add(time.Duration(s.cfg.ResetPasswordTTL) * time.Second)
	resetToken, err := s.Issue(user.ID, expires, models.TokenKindResetPassword)
	if err != nil {
		return "", err
	}

	if _, err := s.Save(resetToken, user.ID, expires, models.TokenKindResetPassword); err != nil {
		return "", err
	}

	s.logger.Info("✅ [TokenService] Reset-password token issued", "user_id", user.ID)
	return resetToken, nil
}

// GenerateVerifyEmailToken issues and persists an email verification token
func (s *tokenService) GenerateVerifyEmailToken(user *models.User) (string, error) {
	expires := time.Now().Add(time.Duration(s.cfg.VerifyEmailTTL) * time.Second)
	verifyToken, err := s.Issue(user.ID, expires, models.TokenKindVerifyEmail)
	if err != nil {
		return "", err
	}

	if _, err := s.Save(verifyToken, user.ID, expires, models.TokenKindVerifyEmail); err != nil {
		return "", err
	}

	s.logger.Info("✅ [TokenService] Verify-email token issued", "user_id", user.ID)
	return verifyToken, nil
}

// parse verifies the signature and registered claims (including expiry)
func (s *tokenService) parse(value string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Service errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)
