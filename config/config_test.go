package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ENV_FILE", "CONFIG_FILE",
		"HTTP_ADDRESS", "HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_DOWNLOAD_WRITE_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "UPLOAD_MAX_BYTES",
		"EXPORT_DIR", "EXPORT_FILENAME",
		"UI_DIR", "VITE_DEV_URL", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HTTP.Address != "127.0.0.1" {
		t.Errorf("Expected HTTP.Address to be 127.0.0.1, got %s", cfg.HTTP.Address)
	}
	if cfg.HTTP.Port != "8000" {
		t.Errorf("Expected HTTP.Port to be 8000, got %s", cfg.HTTP.Port)
	}
	if cfg.HTTP.DownloadWriteTimeout != 10*time.Second {
		t.Errorf("Expected HTTP.DownloadWriteTimeout to be 10s, got %v", cfg.HTTP.DownloadWriteTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("Expected default CORS origin http://localhost:5173, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Upload.MaxBytes != 32*1024*1024 {
		t.Errorf("Expected Upload.MaxBytes to be 32MB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Export.Filename != "selected_channels.m3u" {
		t.Errorf("Expected Export.Filename to be selected_channels.m3u, got %s", cfg.Export.Filename)
	}
	if cfg.Export.Dir != "" || cfg.UI.Dir != "" || cfg.UI.DevURL != "" {
		t.Error("Expected export dir and UI settings to be empty by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(cfg *Config) {}, false},
		{"missing address", func(cfg *Config) { cfg.HTTP.Address = "" }, true},
		{"non-numeric port", func(cfg *Config) { cfg.HTTP.Port = "http" }, true},
		{"port out of range", func(cfg *Config) { cfg.HTTP.Port = "70000" }, true},
		{"zero read timeout", func(cfg *Config) { cfg.HTTP.ReadTimeout = 0 }, true},
		{"negative download timeout", func(cfg *Config) { cfg.HTTP.DownloadWriteTimeout = -time.Second }, true},
		{"zero upload limit", func(cfg *Config) { cfg.Upload.MaxBytes = 0 }, true},
		{"blank export filename", func(cfg *Config) { cfg.Export.Filename = "  " }, true},
		{"dev url without scheme", func(cfg *Config) { cfg.UI.DevURL = "localhost:5173" }, true},
		{"valid dev url", func(cfg *Config) { cfg.UI.DevURL = "http://localhost:5173" }, false},
		{"unknown log level", func(cfg *Config) { cfg.Log.Level = "TRACE" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `http:
  address: "0.0.0.0"
  port: "9090"
  read_timeout: "5s"
  download_write_timeout: "30s"
cors:
  allowed_origins:
    - "http://localhost:5173"
    - "https://editor.example.com"
upload:
  max_bytes: "8MB"
export:
  dir: "/var/tmp/m3u"
  filename: "mine.m3u"
ui:
  dir: "/srv/ui"
log:
  level: "debug"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.HTTP.Address != "0.0.0.0" {
		t.Errorf("Expected HTTP.Address to be 0.0.0.0, got %s", cfg.HTTP.Address)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Errorf("Expected HTTP.ReadTimeout to be 5s, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != 60*time.Second {
		t.Errorf("Expected unset HTTP.WriteTimeout to keep its default, got %v", cfg.HTTP.WriteTimeout)
	}
	if cfg.HTTP.DownloadWriteTimeout != 30*time.Second {
		t.Errorf("Expected HTTP.DownloadWriteTimeout to be 30s, got %v", cfg.HTTP.DownloadWriteTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Upload.MaxBytes != 8*1024*1024 {
		t.Errorf("Expected Upload.MaxBytes to be 8MB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Export.Dir != "/var/tmp/m3u" || cfg.Export.Filename != "mine.m3u" {
		t.Errorf("Unexpected export settings: %+v", cfg.Export)
	}
	if cfg.UI.Dir != "/srv/ui" {
		t.Errorf("Expected UI.Dir to be /srv/ui, got %s", cfg.UI.Dir)
	}
	if cfg.Log.Level != "DEBUG" {
		t.Errorf("Expected log level to be normalized to DEBUG, got %s", cfg.Log.Level)
	}
}

func TestLoadFromFile_InvalidByteSize(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("upload:\n  max_bytes: lots\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("Expected error for invalid max_bytes")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	envVars := map[string]string{
		"HTTP_ADDRESS":                "0.0.0.0",
		"HTTP_PORT":                   "9999",
		"HTTP_READ_TIMEOUT":           "20s",
		"HTTP_WRITE_TIMEOUT":          "2m",
		"HTTP_DOWNLOAD_WRITE_TIMEOUT": "3s",
		"CORS_ALLOWED_ORIGINS":        "http://a.example, http://b.example,",
		"UPLOAD_MAX_BYTES":            "1.5MB",
		"EXPORT_DIR":                  "/tmp/exports",
		"EXPORT_FILENAME":             "picked.m3u",
		"UI_DIR":                      "/srv/ui",
		"VITE_DEV_URL":                "http://localhost:5173",
		"LOG_LEVEL":                   "warn",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.HTTP.Address != "0.0.0.0" || cfg.HTTP.Port != "9999" {
		t.Errorf("Unexpected listen address %s", cfg.ListenAddr())
	}
	if cfg.HTTP.ReadTimeout != 20*time.Second || cfg.HTTP.WriteTimeout != 2*time.Minute || cfg.HTTP.DownloadWriteTimeout != 3*time.Second {
		t.Errorf("Unexpected timeouts %+v", cfg.HTTP)
	}
	if got := strings.Join(cfg.CORS.AllowedOrigins, "|"); got != "http://a.example|http://b.example" {
		t.Errorf("Unexpected CORS origins %q", got)
	}
	if cfg.Upload.MaxBytes != ByteSize(1.5*1024*1024) {
		t.Errorf("Expected Upload.MaxBytes to be 1.5MB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Export.Dir != "/tmp/exports" || cfg.Export.Filename != "picked.m3u" {
		t.Errorf("Unexpected export settings %+v", cfg.Export)
	}
	if cfg.UI.Dir != "/srv/ui" || cfg.UI.DevURL != "http://localhost:5173" {
		t.Errorf("Unexpected UI settings %+v", cfg.UI)
	}
	if cfg.Log.Level != "WARN" || cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("Expected WARN log level, got %s", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid duration", "HTTP_READ_TIMEOUT", "soon"},
		{"negative duration", "HTTP_DOWNLOAD_WRITE_TIMEOUT", "-1s"},
		{"invalid byte size", "UPLOAD_MAX_BYTES", "big"},
		{"zero byte size", "UPLOAD_MAX_BYTES", "0"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"empty origin list", "CORS_ALLOWED_ORIGINS", " , "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			err := applyEnvOverrides(Default())
			if err == nil {
				t.Fatalf("Expected error for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("Expected error to mention %s, got %v", tt.key, err)
			}
		})
	}
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"1024", 1024, false},
		{"512B", 512, false},
		{"2KB", 2048, false},
		{"32MB", 32 * 1024 * 1024, false},
		{"1.5GB", 1536 * 1024 * 1024, false},
		{" 4 mb ", 4 * 1024 * 1024, false},
		{"-1", 0, true},
		{"-2MB", 0, true},
		{"MB", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parseByteSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for input %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input %q: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Expected %d, got %d for input %q", tt.expected, result, tt.input)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing config file uses defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
		t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() should not error when config file is missing: %v", err)
		}
		if cfg.HTTP.Address != "127.0.0.1" {
			t.Errorf("Expected default HTTP.Address, got %s", cfg.HTTP.Address)
		}
	})

	t.Run("env file feeds overrides without replacing real env", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("HTTP_PORT=9100\nEXPORT_FILENAME=from-dotenv.m3u\n"), 0644); err != nil {
			t.Fatalf("Failed to write env file: %v", err)
		}
		t.Setenv("ENV_FILE", envPath)
		t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
		t.Setenv("HTTP_PORT", "9200")
		t.Cleanup(func() { _ = os.Unsetenv("EXPORT_FILENAME") })

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.HTTP.Port != "9200" {
			t.Errorf("Expected real env HTTP_PORT to win, got %s", cfg.HTTP.Port)
		}
		if cfg.Export.Filename != "from-dotenv.m3u" {
			t.Errorf("Expected EXPORT_FILENAME from .env, got %s", cfg.Export.Filename)
		}
	})

	t.Run("file then env", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("http:\n  port: \"7000\"\nlog:\n  level: ERROR\n"), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		t.Setenv("CONFIG_FILE", configPath)
		t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.HTTP.Port != "7000" {
			t.Errorf("Expected port from file, got %s", cfg.HTTP.Port)
		}
		if cfg.Log.Level != "DEBUG" {
			t.Errorf("Expected env to override log level, got %s", cfg.Log.Level)
		}
	})

	t.Run("invalid configuration is rejected", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
		t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
		t.Setenv("VITE_DEV_URL", "not a url")

		if _, err := Load(); err == nil {
			t.Error("Expected validation error")
		}
	})
}
