package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Game struct {
		Seed        int64  `yaml:"seed"`
		ManagerName string `yaml:"manager_name"`
		ClubID      int64  `yaml:"club_id"`
	} `yaml:"game"`
	Schedule struct {
		AdvanceCron string `yaml:"advance_cron"`
	} `yaml:"schedule"`
	Entropy struct {
		RandomOrgKey string `yaml:"random_org_key"`
	} `yaml:"entropy"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	ConstantsFile string `yaml:"constants_file"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SEVENXFOOT_DB"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SEVENXFOOT_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SEVENXFOOT_SEED: %w", err)
		}
		cfg.Game.Seed = seed
	}
	if v := os.Getenv("SEVENXFOOT_ADVANCE_CRON"); v != "" {
		cfg.Schedule.AdvanceCron = v
	}
	if v := os.Getenv("RANDOM_ORG_API_KEY"); v != "" {
		cfg.Entropy.RandomOrgKey = v
	}
	if v := os.Getenv("SEVENXFOOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/sevenxfoot.db"
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = 42
	}
	if cfg.Game.ClubID == 0 {
		cfg.Game.ClubID = int64(league.DefaultTeams()[0].ID)
	}
	if cfg.Schedule.AdvanceCron == "" {
		cfg.Schedule.AdvanceCron = "@every 30s"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks the fields that have no usable default.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Game.ClubID <= 0 {
		return fmt.Errorf("game.club_id must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Constants returns the game constants, read from constants_file when set.
func (c *Config) Constants() (league.Constants, error) {
	if c.ConstantsFile == "" {
		return league.DefaultConstants(), nil
	}
	return league.LoadConstants(c.ConstantsFile)
}
