package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/combiner/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages with freshly combined bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			noWatch, _ := cmd.Flags().GetBool("no-watch")
			noLiveReload, _ := cmd.Flags().GetBool("no-livereload")

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Addr:         addr,
				NoWatch:      noWatch,
				NoLiveReload: noLiveReload,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address (default from config, :3000)")
	cmd.Flags().Bool("no-watch", false, "Do not invalidate cached files on change")
	cmd.Flags().Bool("no-livereload", false, "Do not reload connected browsers on change")
	return cmd
}
