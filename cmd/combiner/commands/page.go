package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/combiner/internal/app"
)

func (c *CLI) newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <url>",
		Short: "Write the script and style bundles of the page served at url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias, _ := cmd.Flags().GetString("as")
			return c.app.Page(cmd.Context(), app.PageOptions{URL: args[0], Alias: alias})
		},
	}
	cmd.Flags().String("as", "", "Use the bundles of the page at this URL path instead")
	return cmd
}
