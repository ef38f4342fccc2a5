package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/combiner/internal/app"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <type> <entries...>",
		Short: "Combine entry files and everything they require into one bundle",
		Long: "Combine entry files and everything they require into one bundle.\n" +
			"The type is script or style (or an extension such as js or css); entries are\n" +
			"paths relative to the type's root directory.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			name, _ := cmd.Flags().GetString("name")
			out, _ := cmd.Flags().GetString("out")
			suffix, _ := cmd.Flags().GetString("suffix")
			strict, _ := cmd.Flags().GetBool("strict")

			return c.app.Bundle(cmd.Context(), app.BundleOptions{
				Type:    args[0],
				Entries: args[1:],
				Name:    name,
				Dir:     out,
				Suffix:  suffix,
				Strict:  strict,
			})
		},
	}
	cmd.Flags().StringP("name", "n", "", "Bundle base name (default from config)")
	cmd.Flags().StringP("out", "o", "", "Output directory (default: the type's root directory)")
	cmd.Flags().String("suffix", "", "Suffix inserted before the extension (default from config)")
	cmd.Flags().Bool("strict", false, "Fail when any required file cannot be fetched")
	return cmd
}
