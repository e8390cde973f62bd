// Package config provides configuration types and defaults for rowedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/viper"

	"github.com/ionut-t/rowedit/highlighter"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration options for rowedit.
type Config struct {
	// Theme is a chroma style name. Empty keeps the built-in colours.
	Theme          string        `mapstructure:"theme"`
	LineNumbers    bool          `mapstructure:"line_numbers"`
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	LogFile        string        `mapstructure:"log_file"` // written only with --debug
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		MessageTimeout: 5 * time.Second,
		LogFile:        "rowedit.log",
	}
}

// SetDefaults registers the defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("line_numbers", d.LineNumbers)
	v.SetDefault("message_timeout", d.MessageTimeout)
	v.SetDefault("log_file", d.LogFile)
}

// Load reads the configuration into v and returns it validated. An empty
// path looks for config.yaml in ~/.config/rowedit, and a missing file there
// is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "rowedit"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the theme exists and the message timeout is positive.
func Validate(cfg Config) error {
	if cfg.Theme != "" {
		if _, err := highlighter.ThemePalette(termenv.TrueColor, cfg.Theme); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if cfg.MessageTimeout <= 0 {
		return fmt.Errorf("%w: message_timeout must be positive, got %s", ErrInvalidConfig, cfg.MessageTimeout)
	}
	return nil
}
