// Package config provides YAML-based configuration loading for framewire.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	// AppName is the optional logical name of the node/application.
	AppName string `mapstructure:"app_name"`

	// Node sizes the framer/router/node triple.
	Node NodeConfig `mapstructure:"node"`

	// Log holds logging configuration.
	Log LogConfig `mapstructure:"log"`
}

// NodeConfig sizes a node.Node.
type NodeConfig struct {
	// MaxPayloadSize bounds the payload a Publish/OnPacket will accept.
	MaxPayloadSize int `mapstructure:"max_payload_size"`
	// MaxHandlers bounds the router's fixed handler table.
	MaxHandlers int `mapstructure:"max_handlers"`
	// ProtocolVersion is the expected frame version byte.
	ProtocolVersion uint8 `mapstructure:"protocol_version"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format: console or json.
	Format string `mapstructure:"format"`
	// Outputs: list of outputs: stdout, stderr, or file paths.
	Outputs []string `mapstructure:"outputs"`

	// Rotation controls file rotation when writing to files.
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options.
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		AppName: "framewire-demo",
		Node: NodeConfig{
			MaxPayloadSize:  64,
			MaxHandlers:     8,
			ProtocolVersion: 1,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Outputs:     []string{"stdout"},
			Development: true,
			Rotation: RotationConfig{
				Enable:     false,
				Filename:   "logs/framewire.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads configuration from the provided path (if non-empty), otherwise
// it searches common locations and supports environment overrides.
// Environment variables use the prefix FRAMEWIRE and `.`/`-` are replaced
// with `_`. Example: FRAMEWIRE_LOG_LEVEL=debug.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FRAMEWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", cfg.AppName)
	v.SetDefault("node.max_payload_size", cfg.Node.MaxPayloadSize)
	v.SetDefault("node.max_handlers", cfg.Node.MaxHandlers)
	v.SetDefault("node.protocol_version", cfg.Node.ProtocolVersion)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path == "" {
		if envPath := os.Getenv("FRAMEWIRE_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("framewire")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".framewire"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var viperConfigFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &viperConfigFileNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}

	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stdout"}
	}
	if c.Node.MaxPayloadSize <= 0 {
		return fmt.Errorf("invalid node.max_payload_size: %d", c.Node.MaxPayloadSize)
	}
	if c.Node.MaxHandlers <= 0 {
		return fmt.Errorf("invalid node.max_handlers: %d", c.Node.MaxHandlers)
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
