package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/archfit/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:       "check <name>",
		Short:     "Run a single fitness function",
		Long:      "Run one check by name: " + strings.Join(domain.CheckOrder, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.CheckOrder,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := absPath(path)
			if err != nil {
				return err
			}

			report, err := newRunner().Check(cmd.Context(), root, args[0])
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			return printReport(cmd.OutOrStdout(), report, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
