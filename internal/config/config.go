package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal and the CLI.
type Config struct {
	App    AppConfig
	Remote RemoteConfig
	Redis  RedisConfig
	State  StateConfig
	Logger LoggerConfig
}

// AppConfig controls the web portal.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	SessionCookieName     string
	SessionTTLDays        int
}

// RemoteConfig points at the card directory service.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// RedisConfig holds the optional Redis backend for browser client state.
// An empty Addr means the portal falls back to the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StateConfig locates the CLI state file.
type StateConfig struct {
	FilePath string
}

// LoggerConfig configures logging behavior. Env selects the encoder profile:
// "production" emits sampled JSON, anything else a human-readable console.
type LoggerConfig struct {
	Level string
	Env   string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "bcard-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			SessionCookieName:     getEnv("SESSION_COOKIE_NAME", "bcard_session"),
			SessionTTLDays:        getEnvAsInt("SESSION_TTL_DAYS", 180),
		},
		Remote: RemoteConfig{
			BaseURL:        getEnv("BCARD_API_URL", "https://monkfish-app-z9uza.ondigitalocean.app/bcard2"),
			TimeoutSeconds: getEnvAsInt("BCARD_API_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		State: StateConfig{
			FilePath: getEnv("BCARD_STATE_FILE", defaultStateFile()),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Env:   getEnv("APP_ENV", "development"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the remote call timeout duration.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bcardctl/state.json"
	}
	return filepath.Join(home, ".bcardctl", "state.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
