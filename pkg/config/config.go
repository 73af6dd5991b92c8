package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the complete service configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Listen          string `toml:"listen"`           // listen address, host:port
	ReadTimeout     int    `toml:"read_timeout"`     // request read timeout (seconds)
	WriteTimeout    int    `toml:"write_timeout"`    // response write timeout (seconds)
	ShutdownTimeout int    `toml:"shutdown_timeout"` // graceful shutdown window (seconds)
}

// SimulationConfig contains simulation core settings.
type SimulationConfig struct {
	DefaultShots   int `toml:"default_shots"`   // shots when a request leaves them unset
	Workers        int `toml:"workers"`         // trajectory worker cap (0 = auto)
	TimeoutSeconds int `toml:"timeout_seconds"` // wall-clock cap per simulation
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns a default configuration.
func Default() *Config {
	workers := runtime.NumCPU()
	if workers > 16 {
		workers = 16
	}
	return &Config{
		Server: ServerConfig{
			Listen:          ":8000",
			ReadTimeout:     30,
			WriteTimeout:    330,
			ShutdownTimeout: 10,
		},
		Simulation: SimulationConfig{
			DefaultShots:   1024,
			Workers:        workers,
			TimeoutSeconds: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if c.Simulation.DefaultShots < 1 || c.Simulation.DefaultShots > 100000 {
		return fmt.Errorf("simulation.default_shots %d outside [1, 100000]", c.Simulation.DefaultShots)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must not be negative")
	}
	if c.Simulation.TimeoutSeconds < 1 {
		return fmt.Errorf("simulation.timeout_seconds must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q not one of debug/info/warn/error", c.Logging.Level)
	}
	return nil
}
