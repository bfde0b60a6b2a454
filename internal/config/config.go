package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the pack service the client talks to out of the box.
	DefaultBaseURL = "https://api.shark.plasam.dev/v1"
	// DefaultEnvFile is read when present; a missing default file is not an error.
	DefaultEnvFile = ".env"
	// DefaultTUILogFile receives logs while the terminal UI owns the screen.
	DefaultTUILogFile = "packshark.log"

	defaultLogLevel = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > .env > Defaults
type Config struct {
	BaseURL             string
	RequestTimeout      time.Duration
	RateLimitRPS        float64
	RateLimitBurst      int
	LogFile             string
	LogLevel            string
	MetricsAddr         string
	ToastDuration       time.Duration
	ShutdownGracePeriod time.Duration
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	BaseURL             string         `yaml:"base_url"`
	RequestTimeout      string         `yaml:"request_timeout"`
	LogFile             string         `yaml:"log_file"`
	LogLevel            string         `yaml:"log_level"`
	MetricsAddr         string         `yaml:"metrics_addr"`
	ToastDuration       string         `yaml:"toast_duration"`
	ShutdownGracePeriod string         `yaml:"shutdown_grace_period"`
	RateLimit           *yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	EnvFile        string
	BaseURL        *string
	RequestTimeout *time.Duration
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogFile        *string
	LogLevel       *string
	MetricsAddr    *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > .env > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	envFile := DefaultEnvFile
	explicitEnvFile := false
	if overrides != nil && overrides.EnvFile != "" {
		envFile = overrides.EnvFile
		explicitEnvFile = true
	}
	if err := loadEnvFile(envFile, explicitEnvFile); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		BaseURL:             DefaultBaseURL,
		LogLevel:            defaultLogLevel,
		ToastDuration:       3 * time.Second,
		ShutdownGracePeriod: 5 * time.Second,
	}
}

// loadEnvFile merges a dotenv file into the process environment without
// overriding variables that are already set.
func loadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.BaseURL != "" {
		cfg.BaseURL = yamlCfg.BaseURL
	}
	if yamlCfg.LogFile != "" {
		cfg.LogFile = yamlCfg.LogFile
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.MetricsAddr != "" {
		cfg.MetricsAddr = yamlCfg.MetricsAddr
	}

	durations := []struct {
		name  string
		raw   string
		field *time.Duration
	}{
		{"request_timeout", yamlCfg.RequestTimeout, &cfg.RequestTimeout},
		{"toast_duration", yamlCfg.ToastDuration, &cfg.ToastDuration},
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.field = value
	}

	if yamlCfg.RateLimit != nil {
		cfg.RateLimitRPS = yamlCfg.RateLimit.RPS
		cfg.RateLimitBurst = yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if baseURL := strings.TrimSpace(os.Getenv("PACKS_BASE_URL")); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if timeout := strings.TrimSpace(os.Getenv("PACKS_REQUEST_TIMEOUT")); timeout != "" {
		value, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("PACKS_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = value
	}

	if rps := strings.TrimSpace(os.Getenv("PACKS_RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("PACKS_RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if logFile := strings.TrimSpace(os.Getenv("PACKS_LOG_FILE")); logFile != "" {
		cfg.LogFile = logFile
	}

	if level := strings.TrimSpace(os.Getenv("PACKS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if addr := strings.TrimSpace(os.Getenv("PACKS_METRICS_ADDR")); addr != "" {
		cfg.MetricsAddr = addr
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.BaseURL != nil && *overrides.BaseURL != "" {
		cfg.BaseURL = *overrides.BaseURL
	}

	if overrides.RequestTimeout != nil && *overrides.RequestTimeout >= 0 {
		cfg.RequestTimeout = *overrides.RequestTimeout
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if overrides.LogFile != nil && *overrides.LogFile != "" {
		cfg.LogFile = *overrides.LogFile
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.MetricsAddr != nil && *overrides.MetricsAddr != "" {
		cfg.MetricsAddr = *overrides.MetricsAddr
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must be >= 0")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("PACKS_RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("PACKS_RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}
