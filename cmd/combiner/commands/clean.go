package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/combiner/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove recorded bundle state and generated bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundles, _ := cmd.Flags().GetBool("bundles")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}
			switch {
			case all:
				opts.Store = true
				opts.Bundles = true
			case bundles:
				opts.Bundles = true
			default:
				// Default behavior: clean recorded state
				opts.Store = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("bundles", "b", false, "Remove generated bundles under the public root")
	cmd.Flags().BoolP("all", "a", false, "Remove recorded state and generated bundles")

	return cmd
}
