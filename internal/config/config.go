package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Systems  SystemsConfig  `toml:"systems"`
	Loop     LoopConfig     `toml:"loop"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SystemsConfig struct {
	Namespace       string `toml:"namespace"`        // prefix for builtin system ids
	ScriptNamespace string `toml:"script_namespace"` // prefix for Lua system ids
	Manifest        string `toml:"manifest"`         // yaml enable/disable list
	ScriptsDir      string `toml:"scripts_dir"`
	SeedEntities    int    `toml:"seed_entities"`
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	FrameRate time.Duration `toml:"frame_rate"` // 0 disables rendering
}

// DatabaseConfig is optional: an empty DSN disables boot recording.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.Loop.FrameRate < 0 {
		return fmt.Errorf("loop.frame_rate must not be negative, got %s", c.Loop.FrameRate)
	}
	if c.Systems.Namespace == "" {
		return fmt.Errorf("systems.namespace is required")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "sysmgr",
		},
		Systems: SystemsConfig{
			Namespace:       "core",
			ScriptNamespace: "script",
			Manifest:        "data/yaml/systems.yaml",
			ScriptsDir:      "scripts/systems",
			SeedEntities:    16,
		},
		Loop: LoopConfig{
			TickRate:  200 * time.Millisecond,
			FrameRate: 50 * time.Millisecond,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
