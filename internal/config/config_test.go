package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.IntervalMinutes != 10 {
		t.Errorf("expected default interval 10, got %d", cfg.IntervalMinutes)
	}
	if cfg.FetchTimeoutSeconds != 15 {
		t.Errorf("expected default timeout 15, got %d", cfg.FetchTimeoutSeconds)
	}
	if cfg.AI.Enabled {
		t.Error("AI should be disabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.DBPath = "/tmp/test.db"
	cfg.IntervalMinutes = 30
	cfg.Credentials.XBearerToken = "token-123"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath not round-tripped: %q", loaded.DBPath)
	}
	if loaded.IntervalMinutes != 30 {
		t.Errorf("IntervalMinutes not round-tripped: %d", loaded.IntervalMinutes)
	}
	if loaded.Credentials.XBearerToken != "token-123" {
		t.Errorf("credentials not round-tripped: %q", loaded.Credentials.XBearerToken)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("X_BEARER_TOKEN", "env-token")
	t.Setenv("YOUTUBE_API_KEY", "env-key")
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("ENABLE_AI_SUMMARY", "true")
	t.Setenv("TECHPULSE_DB", "/data/env.db")
	t.Setenv("TECHPULSE_INTERVAL", "5")
	t.Setenv("TECHPULSE_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Credentials.XBearerToken != "env-token" {
		t.Errorf("X token: %q", cfg.Credentials.XBearerToken)
	}
	if cfg.Credentials.YouTubeAPIKey != "env-key" {
		t.Errorf("YouTube key: %q", cfg.Credentials.YouTubeAPIKey)
	}
	if cfg.AI.APIKey != "env-openai" {
		t.Errorf("OpenAI key: %q", cfg.AI.APIKey)
	}
	if !cfg.AI.Enabled {
		t.Error("AI should be enabled via ENABLE_AI_SUMMARY")
	}
	if cfg.DBPath != "/data/env.db" {
		t.Errorf("DBPath: %q", cfg.DBPath)
	}
	if cfg.IntervalMinutes != 5 {
		t.Errorf("IntervalMinutes: %d", cfg.IntervalMinutes)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: %q", cfg.LogLevel)
	}
}

func TestApplyEnvIgnoresBadInterval(t *testing.T) {
	t.Setenv("TECHPULSE_INTERVAL", "not-a-number")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.IntervalMinutes != 10 {
		t.Errorf("bad interval should be ignored, got %d", cfg.IntervalMinutes)
	}
}

func TestProxyFromEnvPrecedence(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://secure:8080")
	t.Setenv("HTTP_PROXY", "http://plain:8080")
	t.Setenv("NO_PROXY", "localhost,.internal")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Proxy.URL != "http://secure:8080" {
		t.Errorf("HTTPS_PROXY should win, got %q", cfg.Proxy.URL)
	}
	if cfg.Proxy.NoProxy != "localhost,.internal" {
		t.Errorf("NoProxy: %q", cfg.Proxy.NoProxy)
	}
}
