// Package config loads calmish settings from an optional YAML file and
// CALMISH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CALMISH_LOG_LEVEL.
const EnvPrefix = "CALMISH"

// Config holds all application configuration.
type Config struct {
	DBPath        string        `mapstructure:"db_path" validate:"required"`
	AppPrefix     string        `mapstructure:"app_prefix" validate:"required,max=64"`
	LogLevel      string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogJSON       bool          `mapstructure:"log_json"`
	FlushInterval time.Duration `mapstructure:"flush_interval" validate:"gte=0"`
	Chat          ChatConfig    `mapstructure:"chat"`
}

// ChatConfig configures the remote companion. An empty APIKey disables chat.
type ChatConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model" validate:"required"`
	Temperature     float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"gt=0"`
	HistoryTurns    int     `mapstructure:"history_turns" validate:"gte=0"`
}

// Dir returns the per-user calmish directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".calmish")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", filepath.Join(Dir(), "calmish.db"))
	v.SetDefault("app_prefix", "calmish")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_json", false)
	v.SetDefault("flush_interval", time.Duration(0))
	v.SetDefault("chat.api_key", "")
	v.SetDefault("chat.model", "gemini-1.5-flash")
	v.SetDefault("chat.temperature", 0.7)
	v.SetDefault("chat.max_output_tokens", 2048)
	v.SetDefault("chat.history_turns", 20)
}

// Load reads configuration. path names an explicit config file; when empty,
// config.yaml in Dir is used if it exists. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GEMINI_API_KEY is the conventional variable for the Gemini SDK.
	_ = v.BindEnv("chat.api_key", EnvPrefix+"_CHAT_API_KEY", "GEMINI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
