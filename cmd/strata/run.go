package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/strata/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Apply commits and dispatches to a store definition",
	Example: `  strata run todo.yaml --step 'commit:add={"title": "write docs"}' --step dispatch:archive
  strata run counter.yaml --step commit:inc=2 --output yaml --metrics`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.Output, _ = cmd.Flags().GetString("output")
		}
		steps, _ := cmd.Flags().GetStringArray("step")
		metrics, _ := cmd.Flags().GetBool("metrics")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Run(ctx, cli.RunOptions{
			Path:    args[0],
			Steps:   steps,
			Config:  cfg,
			Metrics: metrics,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("step", "s", nil, "Step to apply, KIND:NAME[=PAYLOAD] with KIND commit or dispatch (repeatable)")
	runCmd.Flags().StringP("output", "o", "json", "Report format: json or yaml [STRATA_OUTPUT]")
	runCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the report")
}
