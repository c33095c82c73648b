package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	JWTSecret          string
	AccessTokenTTL     int64 // Access token lifetime in seconds
	RefreshTokenTTL    int64 // Refresh token lifetime in seconds
	ResetPasswordTTL   int64 // Reset-password token lifetime in seconds
	VerifyEmailTTL     int64 // Verify-email token lifetime in seconds
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDB            int64
	AuthRateLimit      int64 // Max auth attempts per window per client
	AuthRateWindow     int64 // Rate limit window in seconds
	SMTPHost           string
	SMTPPort           int64
	SMTPUser           string
	SMTPPassword       string
	EmailFrom          string
	FrontendURL        string
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFromNumber   string
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                       // Default development
		LogLevel:           getLogLevel(),                                          // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),                     // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                        // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),                 // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "messageboard_user"),         // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "messageboard_password"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "messageboard_db"),       // Default database name
		JWTSecret:          getEnv("JWT_SECRET", "messageboard_secret"),            // Default secret key
		AccessTokenTTL:     getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),          // Default 15 minutes
		RefreshTokenTTL:    getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 2592000),     // Default 30 days
		ResetPasswordTTL:   getEnvAsInt64("RESET_PASSWORD_TOKEN_EXPIRATION", 600),  // Default 10 minutes
		VerifyEmailTTL:     getEnvAsInt64("VERIFY_EMAIL_TOKEN_EXPIRATION", 3600),   // Default 1 hour
		RedisHost:          getEnv("REDIS_HOST", "redis"),                          // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),                      // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),                           // Default empty
		RedisDB:            getEnvAsInt64("REDIS_DATABASE", 0),                     // Default 0
		AuthRateLimit:      getEnvAsInt64("AUTH_RATE_LIMIT", 10),                   // Default 10 attempts
		AuthRateWindow:     getEnvAsInt64("AUTH_RATE_WINDOW", 60),                  // Default 1 minute
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),                       // Default localhost
		SMTPPort:           getEnvAsInt64("SMTP_PORT", 587),                        // Default 587
		SMTPUser:           getEnv("SMTP_USERNAME", ""),                            // Default empty
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),                            // Default empty
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@messageboard.local"),    // Default sender
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),        // Default frontend
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),                       // Empty disables SMS
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),                        // Default empty
		TwilioFromNumber:   getEnv("TWILIO_FROM_NUMBER", ""),                       // Default empty
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
