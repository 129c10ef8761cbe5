package main

import (
	"fmt"
	"os"

	"github.com/aretw0/strata/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata runs declarative state stores",
	Long: `Strata loads a store definition (state, mutations, getters and actions in YAML),
applies scripted commits and dispatches, and prints the resulting state and getters.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return cli.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().String("profile", "", "Override the definition profile (development|production) [STRATA_PROFILE]")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error [STRATA_LOG_LEVEL]")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output [NO_COLOR]")
}
