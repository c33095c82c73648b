package service_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bkoseoglu/messageboard/internal/config"
	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
	"github.com/bkoseoglu/messageboard/internal/database/service"
)

type testEnv struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	tokenService service.TokenService
	authService  service.AuthService
	cfg          *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Keep a single connection so every goroutine sees the same :memory: DB
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Message{},
	))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		AccessTokenTTL:   900,
		RefreshTokenTTL:  2592000,
		ResetPasswordTTL: 600,
		VerifyEmailTTL:   3600,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tokenService := service.NewTokenService(userRepo, tokenRepo, cfg, logger)
	authService := service.NewAuthService(userRepo, tokenRepo, tokenService, logger)

	return &testEnv{
		db:           db,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		authService:  authService,
		cfg:          cfg,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	user := &models.User{
		Email:    email,
		Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", // bcrypt("password")
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) tokenCount(t *testing.T) int64 {
	var count int64
	require.NoError(t, e.db.Model(&models.Token{}).Count(&count).Error)
	return count
}

func TestTokenService_GenerateAuthTokens(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.Access.Token)
	assert.NotEmpty(t, pair.Refresh.Token)
	assert.NotEqual(t, pair.Access.Token, pair.Refresh.Token)
	assert.True(t, pair.Refresh.ExpiresAt.After(pair.Access.ExpiresAt))

	// Access tokens are stateless: exactly one row, the refresh token
	assert.Equal(t, int64(1), env.tokenCount(t))

	var stored models.Token
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, models.TokenKindRefresh, stored.Kind)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, pair.Refresh.Token, stored.Token)
}

func TestTokenService_VerifyRefreshToken(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	record, err := env.tokenService.Verify(pair.Refresh.Token, models.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, models.TokenKindRefresh, record.Kind)
}

func TestTokenService_Verify_KindMismatch(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	// An access token presented where a refresh token is expected
	_, err = env.tokenService.Verify(pair.Access.Token, models.TokenKindRefresh)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// A refresh token presented where a reset token is expected
	_, err = env.tokenService.Verify(pair.Refresh.Token, models.TokenKindResetPassword)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	tampered := pair.Refresh.Token[:len(pair.Refresh.Token)-4] + "XXXX"
	_, err = env.tokenService.Verify(tampered, models.TokenKindRefresh)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = env.tokenService.Verify("not-a-jwt", models.TokenKindRefresh)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenService_Verify_ExpiryBoundary(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	tests := []struct {
		name      string
		expiresAt time.Time
		wantErr   error
	}{
		{
			name:      "expired one second ago",
			expiresAt: time.Now().Add(-time.Second),
			wantErr:   service.ErrInvalidToken,
		},
		{
			name:      "expires in one hour",
			expiresAt: time.Now().Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := env.tokenService.Issue(user.ID, tt.expiresAt, models.TokenKindRefresh)
			require.NoError(t, err)
			_, err = env.tokenService.Save(value, user.ID, tt.expiresAt, models.TokenKindRefresh)
			require.NoError(t, err)

			record, err := env.tokenService.Verify(value, models.TokenKindRefresh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, record.UserID)
			}
		})
	}
}

func TestTokenService_Verify_RevokedRecord(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	require.NoError(t, env.tokenRepo.RevokeAllByUser(user.ID))

	// Signature is still valid and unexpired, but no live record remains
	_, err = env.tokenService.Verify(pair.Refresh.Token, models.TokenKindRefresh)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}

func TestTokenService_ValidateAccessToken(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	pair, err := env.tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	userID, err := env.tokenService.ValidateAccessToken(pair.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Refresh tokens must not pass the access gate
	_, err = env.tokenService.ValidateAccessToken(pair.Refresh.Token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenService_GenerateResetPasswordToken(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	value, err := env.tokenService.GenerateResetPasswordToken("test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, value)

	record, err := env.tokenService.Verify(value, models.TokenKindResetPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, models.TokenKindResetPassword, record.Kind)
}

func TestTokenService_GenerateResetPasswordToken_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.tokenService.GenerateResetPasswordToken("missing@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Equal(t, int64(0), env.tokenCount(t))
}

func TestTokenService_GenerateVerifyEmailToken(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "test@example.com")

	value, err := env.tokenService.GenerateVerifyEmailToken(user)
	require.NoError(t, err)

	record, err := env.tokenService.Verify(value, models.TokenKindVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, models.TokenKindVerifyEmail, record.Kind)
}
