package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address              string        `yaml:"address"`
		Port                 string        `yaml:"port"`
		ReadTimeout          time.Duration `yaml:"read_timeout"`
		WriteTimeout         time.Duration `yaml:"write_timeout"`
		DownloadWriteTimeout time.Duration `yaml:"download_write_timeout"`
	} `yaml:"http"`

	// CORS settings
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	// Upload settings
	Upload struct {
		MaxBytes ByteSize `yaml:"max_bytes"`
	} `yaml:"upload"`

	// Export settings
	Export struct {
		Dir      string `yaml:"dir"`
		Filename string `yaml:"filename"`
	} `yaml:"export"`

	// UI settings
	UI struct {
		Dir    string `yaml:"dir"`
		DevURL string `yaml:"dev_url"`
	} `yaml:"ui"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

var validLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	// Validate HTTP settings
	if c.HTTP.Address == "" {
		errors = append(errors, "HTTP address is required")
	}
	if port, err := strconv.Atoi(c.HTTP.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("HTTP port must be between 1 and 65535, got %q", c.HTTP.Port))
	}
	if c.HTTP.ReadTimeout <= 0 {
		errors = append(errors, "HTTP read timeout must be positive")
	}
	if c.HTTP.WriteTimeout <= 0 {
		errors = append(errors, "HTTP write timeout must be positive")
	}
	if c.HTTP.DownloadWriteTimeout <= 0 {
		errors = append(errors, "HTTP download write timeout must be positive")
	}

	// Validate upload settings
	if c.Upload.MaxBytes <= 0 {
		errors = append(errors, "Upload max bytes must be positive")
	}

	// Validate export settings
	if strings.TrimSpace(c.Export.Filename) == "" {
		errors = append(errors, "Export filename is required")
	}

	// Validate UI dev server
	if c.UI.DevURL != "" {
		if u, err := url.Parse(c.UI.DevURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errors = append(errors, fmt.Sprintf("UI dev URL must be an http(s) URL, got %q", c.UI.DevURL))
		}
	}

	if !validLogLevels[c.Log.Level] {
		errors = append(errors, "Log level must be one of: DEBUG, INFO, WARN, ERROR")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	// HTTP defaults
	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8000"
	cfg.HTTP.ReadTimeout = 15 * time.Second
	cfg.HTTP.WriteTimeout = 60 * time.Second
	cfg.HTTP.DownloadWriteTimeout = 10 * time.Second

	// The editor's Vite dev server
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	cfg.Upload.MaxBytes = 32 * 1024 * 1024 // 32MB

	cfg.Export.Dir = "" // OS temp dir
	cfg.Export.Filename = "selected_channels.m3u"

	cfg.Log.Level = "INFO"

	return cfg
}

// SlogLevel returns the configured log level for log/slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.HTTP.Address + ":" + c.HTTP.Port
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)

	return cfg, nil
}

// Load loads configuration from a file (if present) and applies environment
// variable overrides. Variables from a .env file (ENV_FILE) are loaded first
// and never replace variables already set in the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	// Try to load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// File doesn't exist, use defaults
		cfg = Default()
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	parser := &envParser{}

	// HTTP settings
	parser.parseString("HTTP_ADDRESS", &cfg.HTTP.Address)
	parser.parseString("HTTP_PORT", &cfg.HTTP.Port)
	parser.parseDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	parser.parseDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	parser.parseDuration("HTTP_DOWNLOAD_WRITE_TIMEOUT", &cfg.HTTP.DownloadWriteTimeout)

	parser.parseList("CORS_ALLOWED_ORIGINS", &cfg.CORS.AllowedOrigins)
	parser.parseByteSize("UPLOAD_MAX_BYTES", &cfg.Upload.MaxBytes)

	parser.parseString("EXPORT_DIR", &cfg.Export.Dir)
	parser.parseString("EXPORT_FILENAME", &cfg.Export.Filename)

	parser.parseString("UI_DIR", &cfg.UI.Dir)
	parser.parseString("VITE_DEV_URL", &cfg.UI.DevURL)

	parser.parseEnum("LOG_LEVEL", &cfg.Log.Level, validLogLevels)

	return parser.err()
}

// Print outputs the configuration to stdout
func (c *Config) Print() {
	fmt.Printf("httpAddress: %v\n", c.HTTP.Address)
	fmt.Printf("httpPort: %v\n", c.HTTP.Port)
	fmt.Printf("httpReadTimeout: %v\n", c.HTTP.ReadTimeout)
	fmt.Printf("httpWriteTimeout: %v\n", c.HTTP.WriteTimeout)
	fmt.Printf("httpDownloadWriteTimeout: %v\n", c.HTTP.DownloadWriteTimeout)
	fmt.Printf("corsAllowedOrigins: %v\n", strings.Join(c.CORS.AllowedOrigins, ","))
	fmt.Printf("uploadMaxBytes: %v bytes\n", int64(c.Upload.MaxBytes))
	fmt.Printf("exportDir: %v\n", c.Export.Dir)
	fmt.Printf("exportFilename: %v\n", c.Export.Filename)
	fmt.Printf("uiDir: %v\n", c.UI.Dir)
	fmt.Printf("uiDevUrl: %v\n", c.UI.DevURL)
	fmt.Printf("logLevel: %v\n", c.Log.Level)
}
