package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bkoseoglu/messageboard/internal/config"
	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
	"github.com/bkoseoglu/messageboard/internal/database/service"
	"github.com/bkoseoglu/messageboard/internal/middleware"
)

func setupAuthMiddleware(t *testing.T) (service.TokenService, *gin.Engine, *models.User) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Token{}))

	user := &models.User{Email: "test@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  900,
		RefreshTokenTTL: 2592000,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenService := service.NewTokenService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		cfg,
		logger,
	)

	r := gin.New()
	r.Use(middleware.NewAuthMiddleware(tokenService, logger).RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return tokenService, r, user
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	tokenService, r, user := setupAuthMiddleware(t)

	pair, err := tokenService.GenerateAuthTokens(user)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid access token",
			authHeader: "Bearer " + pair.Access.Token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer " + pair.Access.Token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected on access gate",
			authHeader: "Bearer " + pair.Refresh.Token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
