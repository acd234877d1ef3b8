package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort         string   `toml:"server_port"`
	APIURL             string   `toml:"api_url"`
	APIKey             string   `toml:"api_key"`
	APIKeyHeader       string   `toml:"api_key_header"`
	StaticDir          string   `toml:"static_dir"`
	RateLimitPerMinute *int     `toml:"rate_limit_per_min"`
	TrustedProxies     []string `toml:"trusted_proxies"`
	LogLevel           string   `toml:"log_level"`
	BaseURL            string   `toml:"base_url"`
	PhoneRegion        string   `toml:"phone_region"`
}

// ConfigPath returns the path to the config file (~/.authdash/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	return LoadFileFrom(ConfigPath())
}

// LoadFileFrom loads configuration from the TOML file at path.
func LoadFileFrom(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# authdash configuration
# Environment variables (PORT, API_URL, API_KEY, ...) override these values.

# Host server
# server_port = ":8080"
# api_url = "https://api.example.com"
# api_key = "service-credential"
# api_key_header = "client_id"
# static_dir = "./dist"
# rate_limit_per_min = 0
# trusted_proxies = ["10.0.0.0/8"]
# log_level = "info"

# CLI client
# base_url = "http://localhost:8080"
# phone_region = "BR"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
