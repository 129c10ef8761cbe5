package main

import (
	"fmt"

	"github.com/aretw0/strata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a store definition for consistency",
	Long:  `Parses the definition, checks ops, state paths and references, and builds the store once.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		def, err := cli.Validate(args[0], cfg)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d mutations, %d getters, %d actions\n",
			args[0], len(def.Mutations), len(def.Getters), len(def.Actions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
