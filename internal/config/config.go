package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration loaded from environment and file.
// Priority: CLI flags → Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address the host binds to (e.g., ":8080")
	ServerPort string

	// APIURL is the upstream base URL that /api is forwarded to
	APIURL string

	// APIKey is the service credential injected into proxied requests
	APIKey string

	// APIKeyHeader names the header carrying APIKey upstream
	APIKeyHeader string

	// StaticDir serves a built bundle from disk; empty uses the embedded one
	StaticDir string

	// RateLimitPerMinute caps /api requests per client IP (0 = unlimited)
	RateLimitPerMinute int

	// TrustedProxies lists networks whose X-Forwarded-For is believed
	TrustedProxies []string

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// BaseURL is where the CLI reaches the host
	BaseURL string

	// PhoneRegion is the default region for phone number parsing
	PhoneRegion string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, err := LoadFile()
	if err != nil {
		fileConfig = &FileConfig{} // unreadable file, fall back to defaults
	}

	return &Config{
		ServerPort:         normalizePort(getEnvOrFile("PORT", fileConfig.ServerPort, ":8080")),
		APIURL:             strings.TrimRight(getEnvOrFile("API_URL", fileConfig.APIURL, ""), "/"),
		APIKey:             getEnvOrFile("API_KEY", fileConfig.APIKey, ""),
		APIKeyHeader:       getEnvOrFile("API_KEY_HEADER", fileConfig.APIKeyHeader, "client_id"),
		StaticDir:          getEnvOrFile("STATIC_DIR", fileConfig.StaticDir, ""),
		RateLimitPerMinute: getEnvIntOrFile("RATE_LIMIT_PER_MIN", fileConfig.RateLimitPerMinute, 0),
		TrustedProxies:     getEnvListOrFile("TRUSTED_PROXIES", fileConfig.TrustedProxies),
		LogLevel:           getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info"),
		BaseURL:            strings.TrimRight(getEnvOrFile("AUTHDASH_URL", fileConfig.BaseURL, "http://localhost:8080"), "/"),
		PhoneRegion:        strings.ToUpper(getEnvOrFile("PHONE_REGION", fileConfig.PhoneRegion, "BR")),
	}
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// normalizePort accepts both "8080" (as PORT is usually set) and ":8080".
func normalizePort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvListOrFile returns a comma-separated env list or the file list.
func getEnvListOrFile(key string, fileValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var list []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list
	}
	return fileValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}
