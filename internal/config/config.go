package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the directory client and the
// demo binary.
type Config struct {
	App       AppConfig
	Directory DirectoryConfig
	Stub      StubConfig
	Logger    LoggerConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name               string
	Env                string
	DemoTimeoutSeconds int
}

// DirectoryConfig points the client at the upstream user-directory API.
type DirectoryConfig struct {
	BaseURL string
}

// StubConfig controls the built-in stand-in directory server. The default
// address matches the default base URL so the demo runs self-contained.
type StubConfig struct {
	Enabled bool
	Addr    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := getEnv("DIRECTORY_BASE_URL", "http://127.0.0.1:8980")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_BASE_URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid DIRECTORY_BASE_URL: %q is not an absolute URL", baseURL)
	}

	cfg := &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "user-directory"),
			Env:                getEnv("APP_ENV", "development"),
			DemoTimeoutSeconds: getEnvAsInt("DEMO_TIMEOUT_SECONDS", 30),
		},
		Directory: DirectoryConfig{
			BaseURL: baseURL,
		},
		Stub: StubConfig{
			Enabled: getEnvAsBool("STUB_ENABLED", true),
			Addr:    getEnv("STUB_ADDR", "127.0.0.1:8980"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// DemoTimeout returns the overall deadline for one demo run.
func (a AppConfig) DemoTimeout() time.Duration {
	if a.DemoTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.DemoTimeoutSeconds) * time.Second
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

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
