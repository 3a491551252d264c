package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Access token config
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh token / session config
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration // session TTL without remember-me
	RememberMeExpiryDuration   time.Duration // session TTL with remember-me
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// Single-use temporary tokens (email verification, password reset)
	TempTokenExpiryDuration time.Duration

	// Web client
	ClientURL string // CORS origin and base URL for email links

	// Rate limiting on the auth routes, ulule/limiter formatted rate (e.g. "10-M")
	AuthRateLimit string
	RedisURL      string // optional backing store for the limiter

	// Outbound email (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// IP geolocation
	IPInfoToken string

	// External OAuth providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_ISSUER", "auth-session-app")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("REMEMBER_ME_EXPIRY_DURATION", "720h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("TEMP_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("CLIENT_URL", "http://localhost:5173")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "no-reply@localhost")
	viper.SetDefault("IPINFO_TOKEN", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	// The signing secrets have no usable default; startup fails without them.
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	cfg.JWTExpiryDuration = mustParseDuration("JWT_EXPIRY_DURATION", 15*time.Minute)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		return nil, errors.New("REFRESH_TOKEN_SECRET environment variable is required")
	}
	cfg.RefreshTokenExpiryDuration = mustParseDuration("REFRESH_TOKEN_EXPIRY_DURATION", 24*time.Hour)
	cfg.RememberMeExpiryDuration = mustParseDuration("REMEMBER_ME_EXPIRY_DURATION", 30*24*time.Hour)
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.TempTokenExpiryDuration = mustParseDuration("TEMP_TOKEN_EXPIRY_DURATION", 24*time.Hour)

	cfg.ClientURL = viper.GetString("CLIENT_URL")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.MailFrom = viper.GetString("MAIL_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Outgoing emails will be logged instead of sent.")
	}

	cfg.IPInfoToken = viper.GetString("IPINFO_TOKEN")
	if cfg.IPInfoToken == "" {
		log.Println("Warning: IPINFO_TOKEN not set. Session locations will resolve to a placeholder.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}

func mustParseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
