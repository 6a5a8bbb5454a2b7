package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the environment-driven client configuration. The backend base
// URL is selected by run mode, not by the user at runtime.
type Config struct {
	Environment string
	DevBaseURL  string
	ProdBaseURL string
	Store       StoreConfig
	Redis       RedisConfig
	Mock        MockConfig
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Backend    string // file | redis | memory
	FilePath   string
	Passphrase string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MockConfig configures the development stub backend.
type MockConfig struct {
	Port      string
	JWTSecret string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Missing keys fall back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		DevBaseURL:  getEnv("IUSEARCH_DEV_BASE_URL", "http://localhost:3000/api"),
		ProdBaseURL: getEnv("IUSEARCH_PROD_BASE_URL", "https://api.iusearch.example.com/api"),
		Store: StoreConfig{
			Backend:    getEnv("IUSEARCH_STORE_BACKEND", "file"),
			FilePath:   getEnv("IUSEARCH_STORE_PATH", defaultStorePath()),
			Passphrase: getEnv("IUSEARCH_STORE_PASSPHRASE", "iusearch-dev-passphrase"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Mock: MockConfig{
			Port:      getEnv("MOCK_BACKEND_PORT", "3000"),
			JWTSecret: getEnv("MOCK_BACKEND_JWT_SECRET", "mock-backend-secret"),
		},
	}
}

// BaseURL resolves the backend endpoint for the configured run mode.
func (c *Config) BaseURL() string {
	if c.Environment == "production" {
		return c.ProdBaseURL
	}
	return c.DevBaseURL
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.enc"
	}
	return filepath.Join(home, ".iusearch", "credentials.enc")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
