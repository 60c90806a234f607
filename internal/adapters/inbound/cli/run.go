package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/archfit/internal/application"
)

func newRunCmd() *cobra.Command {
	var (
		jsonOutput bool
		failFast   bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every fitness function",
		Long: "Run coupling, budgets, contract, migrations, slo and headers in order. " +
			"Exits non-zero when a mandatory check fails or the run aborts.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := absPath(path)
			if err != nil {
				return err
			}

			report, err := newRunner().Run(cmd.Context(), root, application.RunOptions{FailFast: failFast})
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}
			return printReport(cmd.OutOrStdout(), report, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first mandatory failure")

	return cmd
}
