// Package cmd implements the taskwire command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskwire/taskwire/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskwire",
	Short: "Agent-facing task coordination engine",
	Long: `Taskwire is the coordination core of an agent-facing server: a
process-local event bus that routes remote-peer reports and timer ticks to
subscribed tasks, with reliable, deduplicated, retried delivery of outbound
instructions to the peer.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskwire/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Defaults apply even without a config file.
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKWIRE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing config file is fine; defaults carry.
	_ = viper.ReadInConfig()
}
