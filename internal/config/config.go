// Package config loads rogue-docs settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ROGUE_DOCS_DATA_DIR.
const EnvPrefix = "ROGUE_DOCS"

// Config holds the resolved settings.
type Config struct {
	DataDir    string    `mapstructure:"data_dir"`
	ContentDir string    `mapstructure:"content_dir"`
	DB         string    `mapstructure:"db"`
	Log        LogConfig `mapstructure:"log"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":    "data_dir",
	"content-dir": "content_dir",
	"db":          "db",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// DefaultDBPath is ~/.rogue-docs/exports.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rogue-docs", "exports.db")
}

// Load resolves settings. Precedence: changed flags, environment, config
// file, defaults. configFile may be empty to search the default locations.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", "data")
	v.SetDefault("content_dir", "content")
	v.SetDefault("db", DefaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("rogue-docs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".rogue-docs"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is empty")
	}
	if strings.TrimSpace(c.ContentDir) == "" {
		return errors.New("config: content_dir is empty")
	}
	if strings.TrimSpace(c.DB) == "" {
		return errors.New("config: db is empty")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
