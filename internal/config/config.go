package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the persistent application configuration
type Config struct {
	// DBPath is the SQLite database location
	DBPath string `json:"db_path"`

	// IntervalMinutes between scheduled ingestion passes
	IntervalMinutes int `json:"interval_minutes"`

	// FetchTimeoutSeconds for each outbound request
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`

	// Credentials for credential-gated source kinds
	Credentials Credentials `json:"credentials"`

	// Proxy routing for outbound requests
	Proxy Proxy `json:"proxy"`

	// AI summarization settings (best-effort enrichment)
	AI AI `json:"ai"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level"`
}

// Credentials gate the social-search and video-search adapters.
// A missing credential silently disables the corresponding source kind.
type Credentials struct {
	XBearerToken  string `json:"x_bearer_token,omitempty"`
	YouTubeAPIKey string `json:"youtube_api_key,omitempty"`
}

// Proxy configures optional forward-proxy routing.
// NoProxy is a comma-separated bypass rule list: exact hostnames, ".suffix"
// rules, or "*" to bypass everything.
type Proxy struct {
	URL     string `json:"url,omitempty"`
	NoProxy string `json:"no_proxy,omitempty"`
}

// AI holds settings for the optional summarize/translate collaborator.
type AI struct {
	Enabled  bool   `json:"enabled"`
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Model    string `json:"model,omitempty"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DBPath:              defaultDBPath(),
		IntervalMinutes:     10,
		FetchTimeoutSeconds: 15,
		AI: AI{
			Enabled:  false,
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		LogLevel: "info",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "techpulse.db"
	}
	return filepath.Join(home, ".techpulse", "techpulse.db")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".techpulse", "config.json")
}

// Load reads config from the given path (ConfigPath() when empty), or
// returns defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // restrictive permissions for API keys
}

// ApplyEnv fills in credentials and runtime settings from environment
// variables. Environment values win over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("X_BEARER_TOKEN"); v != "" {
		c.Credentials.XBearerToken = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.Credentials.YouTubeAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if os.Getenv("ENABLE_AI_SUMMARY") == "true" {
		c.AI.Enabled = true
	}
	if v := proxyFromEnv(); v != "" {
		c.Proxy.URL = v
	}
	if v := firstEnv("NO_PROXY", "no_proxy"); v != "" {
		c.Proxy.NoProxy = v
	}
	if v := os.Getenv("TECHPULSE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TECHPULSE_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.IntervalMinutes = n
		}
	}
	if v := os.Getenv("TECHPULSE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func proxyFromEnv() string {
	return firstEnv(
		"HTTPS_PROXY", "https_proxy",
		"HTTP_PROXY", "http_proxy",
		"ALL_PROXY", "all_proxy",
	)
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
