// Package config loads runtime settings from an optional YAML file, a .env
// file and TSP_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Stohl/tsp-skolan-sub000/internal/sentences"
	"github.com/Stohl/tsp-skolan-sub000/internal/session"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TSP"

// Config holds all application configuration.
type Config struct {
	// Env selects the log format. Values: "development", "production".
	Env string `mapstructure:"env"`

	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string `mapstructure:"db_path"`

	// CatalogDir is the catalog bundle directory.
	CatalogDir string `mapstructure:"catalog_dir"`

	Practice PracticeConfig `mapstructure:"practice"`
	Ranker   RankerConfig   `mapstructure:"ranker"`
	Log      LogConfig      `mapstructure:"log"`
}

// PracticeConfig sizes practice sessions.
type PracticeConfig struct {
	SessionSize int `mapstructure:"session_size"` // Default: 10
	ReviewCount int `mapstructure:"review_count"` // Default: 2
}

// RankerConfig configures next-item suggestions.
type RankerConfig struct {
	TopN      int      `mapstructure:"top_n"` // Default: 3
	LevelTags []string `mapstructure:"level_tags"`
}

// LogConfig configures the operator log.
type LogConfig struct {
	Level string `mapstructure:"level"` // Default: "info"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Env:        "development",
		CatalogDir: "catalog",
		Practice: PracticeConfig{
			SessionSize: session.DefaultSessionSize,
			ReviewCount: session.DefaultReviewCount,
		},
		Ranker: RankerConfig{
			TopN:      3,
			LevelTags: append([]string(nil), sentences.DefaultLevelTags...),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Session returns the selector settings.
func (c Config) Session() session.Config {
	return session.Config{
		SessionSize: c.Practice.SessionSize,
		ReviewCount: c.Practice.ReviewCount,
	}
}

// Load reads configuration. path names a YAML file; when empty, config.yaml
// is looked up in the working directory and a missing file is not an error.
// Environment variables such as TSP_PRACTICE_SESSION_SIZE override the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("env", def.Env)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("catalog_dir", def.CatalogDir)
	v.SetDefault("practice.session_size", def.Practice.SessionSize)
	v.SetDefault("practice.review_count", def.Practice.ReviewCount)
	v.SetDefault("ranker.top_n", def.Ranker.TopN)
	v.SetDefault("ranker.level_tags", def.Ranker.LevelTags)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Practice.SessionSize <= 0:
		return fmt.Errorf("practice.session_size must be positive, got %d", c.Practice.SessionSize)
	case c.Practice.ReviewCount < 0:
		return fmt.Errorf("practice.review_count must not be negative, got %d", c.Practice.ReviewCount)
	case c.Practice.ReviewCount > c.Practice.SessionSize:
		return fmt.Errorf("practice.review_count %d exceeds session_size %d", c.Practice.ReviewCount, c.Practice.SessionSize)
	case c.Ranker.TopN <= 0:
		return fmt.Errorf("ranker.top_n must be positive, got %d", c.Ranker.TopN)
	case len(c.Ranker.LevelTags) == 0:
		return fmt.Errorf("ranker.level_tags must not be empty")
	}
	return nil
}
