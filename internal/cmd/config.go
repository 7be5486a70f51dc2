package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskwire/taskwire/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify taskwire configuration",
	Long: `View or modify taskwire configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  taskwire config set engine.timer_quantum_ms 10
  taskwire config set logging.level DEBUG

Valid keys:
  engine.timer_quantum_ms   - Scheduler wake interval in milliseconds
  engine.retry_check_sec    - Retry driver cadence in seconds
  engine.retry_grace_ticks  - Idle ticks before the retry driver stands down
  logging.level             - DEBUG, INFO, WARN, or ERROR
  logging.dir               - Directory for engine.log (empty = stderr)
  logging.max_size_mb       - Log size triggering rotation (0 disables)
  logging.max_backups       - Rotated log files to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/taskwire/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.ConfigFile())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("engine:")
	fmt.Printf("  timer_quantum_ms: %d\n", cfg.Engine.TimerQuantumMs)
	fmt.Printf("  retry_check_sec: %d\n", cfg.Engine.RetryCheckSec)
	fmt.Printf("  retry_grace_ticks: %d\n", cfg.Engine.RetryGraceTicks)

	fmt.Println("logging:")
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)

	if len(cfg.Flags) > 0 {
		fmt.Println("flags:")
		for name, on := range cfg.Flags {
			fmt.Printf("  %s: %v\n", name, on)
		}
	}

	return nil
}

// validConfigKeys maps settable keys to their expected value kinds.
var validConfigKeys = map[string]string{
	"engine.timer_quantum_ms":  "int",
	"engine.retry_check_sec":   "int",
	"engine.retry_grace_ticks": "int",
	"logging.level":            "string",
	"logging.dir":              "string",
	"logging.max_size_mb":      "int",
	"logging.max_backups":      "int",
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	keyType, ok := validConfigKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'taskwire config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'taskwire config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configContent := `# Taskwire configuration

engine:
  # Scheduler wake interval in milliseconds. Finer quanta honor shorter
  # timer intervals at the cost of more wakeups.
  timer_quantum_ms: 25
  # How often the retry driver looks for unacknowledged instructions.
  retry_check_sec: 30
  # Consecutive idle checks before the retry driver stands down.
  retry_grace_ticks: 3

logging:
  # DEBUG, INFO, WARN, or ERROR
  level: INFO
  # Directory for engine.log. Empty logs to stderr.
  dir: ""
  # Rotate the log past this size in megabytes. 0 disables rotation.
  max_size_mb: 10
  # Rotated log files to keep.
  max_backups: 3

# Named boolean capabilities tasks may query.
flags: {}
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	return nil
}
