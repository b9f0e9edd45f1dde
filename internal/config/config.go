package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	ServerPort string
	RedisURL   string
	Env        string
	RedisTTL   time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	ExchangeAPIURL string
	RateCacheTTL   time.Duration

	AuthRatePerMinute int
}

func LoadConfig() Config {
	ttlStr := getEnv("REDIS_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 5 * time.Minute
	}

	tokenTTLStr := getEnv("TOKEN_TTL", "24h")
	tokenTTL, err := time.ParseDuration(tokenTTLStr)
	if err != nil {
		tokenTTL = 24 * time.Hour
	}

	rateTTLStr := getEnv("RATE_CACHE_TTL", "10m")
	rateTTL, err := time.ParseDuration(rateTTLStr)
	if err != nil {
		rateTTL = 10 * time.Minute
	}

	return Config{
		DBHost:            getEnv("DB_HOST", "postgres"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPass:            getEnv("DB_PASSWORD", "password"),
		DBName:            getEnv("DB_NAME", "db_portfolio"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		RedisURL:          getEnv("REDIS_URL", "redis:6379"),
		Env:               getEnv("ENV", "dev"),
		RedisTTL:          ttl,
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:          tokenTTL,
		ExchangeAPIURL:    getEnv("EXCHANGE_API_URL", "https://api.exchangerate-api.com/v4/latest"),
		RateCacheTTL:      rateTTL,
		AuthRatePerMinute: getEnvAsInt("AUTH_RATE_PER_MINUTE", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
