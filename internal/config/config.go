// Package config loads taskwire configuration via viper, merging defaults,
// an optional YAML config file, and TASKWIRE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/taskwire/taskwire/internal/logging"
)

// Config is the complete taskwire configuration.
type Config struct {
	Engine  EngineConfig    `mapstructure:"engine"`
	Logging LoggingConfig   `mapstructure:"logging"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EngineConfig tunes the coordination engine.
type EngineConfig struct {
	// TimerQuantumMs is the scheduler wake interval in milliseconds.
	// Finer quanta honor shorter timer intervals at the cost of wakeups.
	TimerQuantumMs int `mapstructure:"timer_quantum_ms"`
	// RetryCheckSec is how often, in seconds, the retry driver looks for
	// unacknowledged instructions.
	RetryCheckSec int `mapstructure:"retry_check_sec"`
	// RetryGraceTicks is how many consecutive idle retry checks pass
	// before the retry driver unsubscribes itself.
	RetryGraceTicks int `mapstructure:"retry_grace_ticks"`
}

// LoggingConfig controls the engine log.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
	// Dir is where engine.log is written. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB rotates the log past this size. Zero disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated logs to keep.
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TimerQuantumMs:  25,
			RetryCheckSec:   30,
			RetryGraceTicks: 3,
		},
		Logging: LoggingConfig{
			Level:      logging.LevelInfo,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Flags: map[string]bool{},
	}
}

// SetDefaults registers default values with viper so they apply even when
// no config file exists.
func SetDefaults() {
	d := Default()
	viper.SetDefault("engine.timer_quantum_ms", d.Engine.TimerQuantumMs)
	viper.SetDefault("engine.retry_check_sec", d.Engine.RetryCheckSec)
	viper.SetDefault("engine.retry_grace_ticks", d.Engine.RetryGraceTicks)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.dir", d.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// Load unmarshals and validates the current viper state.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Engine.TimerQuantumMs <= 0 {
		return fmt.Errorf("engine.timer_quantum_ms must be positive, got %d", c.Engine.TimerQuantumMs)
	}
	if c.Engine.RetryCheckSec <= 0 {
		return fmt.Errorf("engine.retry_check_sec must be positive, got %d", c.Engine.RetryCheckSec)
	}
	if c.Engine.RetryGraceTicks <= 0 {
		return fmt.Errorf("engine.retry_grace_ticks must be positive, got %d", c.Engine.RetryGraceTicks)
	}
	switch strings.ToUpper(c.Logging.Level) {
	case "", logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("logging.level must be DEBUG, INFO, WARN, or ERROR, got %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("logging.max_size_mb must not be negative, got %d", c.Logging.MaxSizeMB)
	}
	return nil
}

// FlagEnabled reports whether a named boolean capability is on. It
// implements the engine's FlagSource interface.
func (c *Config) FlagEnabled(name string) bool {
	return c.Flags[name]
}

// TimerQuantum returns the scheduler quantum as a duration.
func (c *Config) TimerQuantum() time.Duration {
	return time.Duration(c.Engine.TimerQuantumMs) * time.Millisecond
}

// RetryCheckInterval returns the retry driver cadence as a duration.
func (c *Config) RetryCheckInterval() time.Duration {
	return time.Duration(c.Engine.RetryCheckSec) * time.Second
}

// ConfigDir returns the user's taskwire config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskwire")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskwire"
	}
	return filepath.Join(home, ".config", "taskwire")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
