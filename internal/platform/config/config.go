package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Transport modes understood by the SMS center.
const (
	TransportLog  = "log"
	TransportNATS = "nats"
	TransportBoth = "both"
)

// Config holds all configuration for the SMS center.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`

	// Command file input
	InputFile        string `mapstructure:"INPUT_FILE"`
	SkipInvalidLines bool   `mapstructure:"SKIP_INVALID_LINES"`

	// Outbound transmission
	Transport           string `mapstructure:"TRANSPORT" validate:"oneof=log nats both"`
	NATSUrl             string `mapstructure:"NATS_URL" validate:"required_unless=Transport log"`
	NATSOutboundSubject string `mapstructure:"NATS_OUTBOUND_SUBJECT" validate:"required"`

	// Command subscription (serve)
	NATSCommandSubject string `mapstructure:"NATS_COMMAND_SUBJECT" validate:"required"`
	NATSQueueGroup     string `mapstructure:"NATS_QUEUE_GROUP"`

	// 0 disables the metrics/health HTTP server
	MetricsPort int `mapstructure:"METRICS_PORT" validate:"min=0,max=65535"`
}

// UsesNATS reports whether outbound messages are published to NATS.
func (c *Config) UsesNATS() bool {
	return c.Transport == TransportNATS || c.Transport == TransportBoth
}

// Load reads configName.yaml from configPath (and a few conventional locations),
// then applies APP_-prefixed environment variables on top.
// A missing file is not an error; defaults and environment are used instead.
func Load(configPath, configName string) (*Config, error) {
	v := newViper()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs") // For running from cmd/smscenter
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		slog.Debug("Configuration file not found; using defaults and environment variables.", "name", configName)
	}
	return decode(v)
}

// LoadFile reads one explicit config file. Unlike Load, the file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_LOG_LEVEL, APP_NATS_URL etc.

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("INPUT_FILE", "input.txt")
	v.SetDefault("SKIP_INVALID_LINES", true)
	v.SetDefault("TRANSPORT", TransportLog)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("NATS_OUTBOUND_SUBJECT", "sms.outbound.deliver")
	v.SetDefault("NATS_COMMAND_SUBJECT", "sms.center.commands")
	v.SetDefault("NATS_QUEUE_GROUP", "sms_center_workers")
	v.SetDefault("METRICS_PORT", 0)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate lowercases the log settings, which are case-insensitive, then
// checks field constraints.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
