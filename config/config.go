package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/squash/internal/core/domain"
)

// EnvPrefix prefixes every environment override, e.g. SQUASH_LOG_LEVEL.
const EnvPrefix = "SQUASH_"

type Config struct {
	ServiceName string        `yaml:"service_name"` // Logger name
	LogLevel    string        `yaml:"log_level"`    // debug, info, warn, error
	LogFormat   string        `yaml:"log_format"`   // json or console
	Engine      EngineConfig  `yaml:"engine"`
	Generic     GenericConfig `yaml:"generic"`
	Staging     StagingConfig `yaml:"staging"`
	Media       MediaConfig   `yaml:"media"`
}

// Holds dispatch configuration
type EngineConfig struct {
	StrategyTimeout time.Duration `yaml:"strategy_timeout"` // Upper bound for one strategy run
	DefaultLevel    string        `yaml:"default_level"`    // Level used when the caller names none
}

// Holds the generic byte compressor configuration
type GenericConfig struct {
	Algorithm string `yaml:"algorithm"` // gzip, zstd, brotli, lz4, snappy
	Level     int    `yaml:"level"`     // 0 selects the algorithm default
}

// Holds workspace configuration
type StagingConfig struct {
	Mode      string `yaml:"mode"`      // disk or memory
	Directory string `yaml:"directory"` // Parent of disk workspaces, empty for os.TempDir()
}

// Holds transcoder configuration
type MediaConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"` // ffmpeg binary
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		ServiceName: "squash",
		LogLevel:    "info",
		LogFormat:   "json",
		Engine: EngineConfig{
			StrategyTimeout: 10 * time.Minute,
			DefaultLevel:    string(domain.LevelMedium),
		},
		Generic: GenericConfig{Algorithm: "gzip"},
		Staging: StagingConfig{Mode: string(domain.StagingDisk)},
		Media:   MediaConfig{FFmpegPath: "ffmpeg"},
	}
}

// Loads configuration from a YAML file. Fields missing from the file keep
// their defaults, and SQUASH_* environment variables override both. An empty
// filename skips the file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if filename != "" {
		// Read the config file
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() *domain.EngineOptions {
	return &domain.EngineOptions{
		StrategyTimeout: c.Engine.StrategyTimeout,
		DefaultLevel:    domain.CompressionLevel(strings.ToLower(c.Engine.DefaultLevel)),
		GenericOptions: &domain.GenericOptions{
			Algorithm: domain.Algorithm(strings.ToLower(c.Generic.Algorithm)),
			Level:     c.Generic.Level,
		},
		StagingOptions: &domain.StagingOptions{
			Mode:      domain.StagingMode(strings.ToLower(c.Staging.Mode)),
			Directory: c.Staging.Directory,
		},
		MediaOptions: &domain.MediaOptions{FFmpegPath: c.Media.FFmpegPath},
	}
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SERVICE_NAME":      &config.ServiceName,
		"LOG_LEVEL":         &config.LogLevel,
		"LOG_FORMAT":        &config.LogFormat,
		"DEFAULT_LEVEL":     &config.Engine.DefaultLevel,
		"GENERIC_ALGORITHM": &config.Generic.Algorithm,
		"STAGING_MODE":      &config.Staging.Mode,
		"STAGING_DIRECTORY": &config.Staging.Directory,
		"FFMPEG_PATH":       &config.Media.FFmpegPath,
	}
	for key, field := range str {
		if v, ok := lookup(EnvPrefix + key); ok {
			*field = v
		}
	}

	if v, ok := lookup(EnvPrefix + "STRATEGY_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSTRATEGY_TIMEOUT: %w", EnvPrefix, err)
		}
		config.Engine.StrategyTimeout = d
	}

	if v, ok := lookup(EnvPrefix + "GENERIC_LEVEL"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sGENERIC_LEVEL: %w", EnvPrefix, err)
		}
		config.Generic.Level = n
	}

	return nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.ServiceName) == "" {
		return fmt.Errorf("service_name is required")
	}

	switch strings.ToLower(config.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", config.LogFormat)
	}

	if err := validateEngineConfig(&config.Engine); err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}

	if config.Generic.Level < 0 {
		return fmt.Errorf("generic.level must not be negative")
	}

	if mode := domain.StagingMode(strings.ToLower(config.Staging.Mode)); mode != domain.StagingDisk && mode != domain.StagingMemory {
		return fmt.Errorf("staging.mode must be disk or memory, got %q", config.Staging.Mode)
	}

	if strings.TrimSpace(config.Media.FFmpegPath) == "" {
		return fmt.Errorf("media.ffmpeg_path is required")
	}

	return nil
}

func validateEngineConfig(config *EngineConfig) error {
	if config.StrategyTimeout <= 0 {
		return fmt.Errorf("strategy_timeout must be greater than 0")
	}

	if _, ok := domain.ParseCompressionLevel(config.DefaultLevel); !ok {
		return fmt.Errorf("default_level must be one of low, medium, high, maximum, got %q", config.DefaultLevel)
	}

	return nil
}
