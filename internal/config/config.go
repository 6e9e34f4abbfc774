package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Issuer       string
}

type AuthConfig struct {
	BcryptCost          int
	RefreshTTLDays      int
	RefreshIdleTimeout  time.Duration
	ResetCodeTTL        time.Duration
	ReservedAdminHandle string
}

type EmailConfig struct {
	Enabled    bool
	Provider   string // "webhook" | "resend"
	WebhookURL string
	APIKey     string
	From       string
	FromName   string
	Timeout    time.Duration
}

func Load() (*Config, error) {
	// Cargar .env si existe (opcional en producción)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "gastometro"),
			Password: getEnv("DB_PASSWORD", "gastometro"),
			DBName:   getEnv("DB_NAME", "gastometro"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", ""),
			AccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", time.Hour),
			Issuer:       getEnv("JWT_ISSUER", "gastometro-backend"),
		},
		Auth: AuthConfig{
			BcryptCost:          getIntEnv("BCRYPT_SALT_ROUNDS", 10),
			RefreshTTLDays:      getIntEnv("JWT_REFRESH_EXPIRES_IN_DAYS", 7),
			RefreshIdleTimeout:  getDurationEnv("REFRESH_IDLE_TIMEOUT", 60*time.Minute),
			ResetCodeTTL:        getDurationEnv("PASSWORD_RESET_TTL", 15*time.Minute),
			ReservedAdminHandle: getEnv("RESERVED_ADMIN_HANDLE", "admin"),
		},
		Email: EmailConfig{
			Enabled:    getBoolEnv("EMAIL_ENABLED", false),
			Provider:   getEnv("EMAIL_PROVIDER", "webhook"),
			WebhookURL: getEnv("EMAIL_WEBHOOK_URL", ""),
			APIKey:     getEnv("EMAIL_WEBHOOK_API_KEY", ""),
			From:       getEnv("EMAIL_FROM", ""),
			FromName:   getEnv("EMAIL_FROM_NAME", "Gastometro"),
			Timeout:    getDurationEnv("EMAIL_TIMEOUT", 10*time.Second),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
