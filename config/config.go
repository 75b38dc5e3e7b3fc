package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "hbnb-dev-secret-change-me"

type Config struct {
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSSLMode  string `validate:"oneof=disable require verify-ca verify-full"`

	ServerPort string `validate:"required,numeric"`

	// RabbitURL may be empty, which turns booking events off.
	RabbitURL string

	JWTSecret string        `validate:"required"`
	JWTTTL    time.Duration `validate:"gt=0"`

	SchedulerInterval time.Duration `validate:"gt=0"`

	AppEnv             string `validate:"oneof=development testing production"`
	CORSAllowedOrigins []string
}

// Load reads the environment, after merging a .env file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file loaded, using environment")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "hbnb"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		RabbitURL:          getEnv("RABBITMQ_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:             getDuration("JWT_TTL", time.Hour),
		SchedulerInterval:  getDuration("SCHEDULER_INTERVAL", 10*time.Minute),
		AppEnv:             getEnv("APP_ENV", "development"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("invalid config: JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
