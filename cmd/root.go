/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/config"
	"github.com/Raindancer118/genesis/log"
)

var (
	cfgFile string
	cfg     config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Genesis is your personal command-line assistant",
	Long: `Genesis bundles the small chores of a developer workstation:
reclaiming resources from runaway processes, package management,
virus scanning, project scaffolding and keeping itself up to date.`,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/genesis/config.toml)")

	rootCmd.AddCommand(
		NewHeroCmd(),
		NewGreetCmd(),
		NewStatusCmd(),
		NewMonitorCmd(),
		NewScanCmd(),
		NewInstallCmd(),
		NewRemoveCmd(),
		NewUpdateCmd(),
		NewSortCmd(),
		NewNewCmd(),
		NewBuildCmd(),
		NewSelfUpdateCmd(),
		NewConfigCmd(),
	)
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		log.CombinedLogger.Warnf("failed to load config, using defaults: %v", err)
	}
	loaded, err := config.Load()
	if err != nil {
		log.CombinedLogger.Warnf("failed to parse config, using defaults: %v", err)
	}
	cfg = loaded
}
