// Package config provides configuration loading and validation for the intensity CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	envPrefix  = "INTENSITY"
	configName = "intensity"
	configType = "yaml"
)

// Config holds all configuration for the intensity CLI.
type Config struct {
	Logging       LoggingConfig       `mapstructure:"logging"`
	Output        OutputConfig        `mapstructure:"output"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// OutputConfig controls how run reports are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table text json"`
	Color  bool   `mapstructure:"color"`
}

// ObservabilityConfig holds OpenTelemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"omitempty,hostname_port"`
	Environment  string `mapstructure:"environment"`
	MetricsAddr  string `mapstructure:"metrics_addr"  validate:"omitempty,hostname_port"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// SlogLevel maps the configured level name onto a [slog.Level].
func (lc LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(lc.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSON reports whether logs should be emitted as JSON.
func (lc LoggingConfig) JSON() bool {
	return lc.Format == "json"
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for intensity.yaml in the usual places;
// a missing file is not an error in that case.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType(configType)
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/intensity")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, validateErr
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Output:  OutputConfig{Format: DefaultOutputFormat, Color: DefaultOutputColor},
		Observability: ObservabilityConfig{
			OTLPEndpoint: DefaultOTLPEndpoint,
			OTLPInsecure: DefaultOTLPInsecure,
			Environment:  DefaultEnvironment,
			MetricsAddr:  DefaultMetricsAddr,
		},
	}
}

// Validate checks struct-tag constraints on cfg.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultOutputColor)

	viperCfg.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.environment", DefaultEnvironment)
	viperCfg.SetDefault("observability.metrics_addr", DefaultMetricsAddr)
}
