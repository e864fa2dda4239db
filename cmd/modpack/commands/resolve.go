package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/modpack/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [packages...]",
		Short: "Download packages and their dependencies",
		Long: "Download the given packages and everything they depend on into <dir>/<platform version>.\n" +
			"Without arguments the packages listed in the profile are resolved.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			platformVersion, _ := cmd.Flags().GetString("platform-version")
			catalog, _ := cmd.Flags().GetString("catalog")
			dir, _ := cmd.Flags().GetString("dir")

			opts := app.ResolveOptions{
				ConfigPath:      c.configPath,
				Catalog:         catalog,
				PlatformVersion: platformVersion,
				DownloadDir:     dir,
			}
			if cmd.Flags().Changed("ignore") {
				opts.Ignore, _ = cmd.Flags().GetStringSlice("ignore")
				if opts.Ignore == nil {
					opts.Ignore = []string{}
				}
			}

			if progress, _ := cmd.Flags().GetBool("progress"); progress && c.setProgress != nil {
				c.setProgress(cmd.ErrOrStderr())
			}

			resolution, err := c.app.Resolve(cmd.Context(), args, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range resolution.Downloaded() {
				_, _ = fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("platform-version", "p", "", "Target platform version")
	cmd.Flags().String("catalog", "", "Path to the catalog file")
	cmd.Flags().StringP("dir", "d", "", "Download root directory")
	cmd.Flags().StringSlice("ignore", nil, "Identifiers to skip (replaces the profile's ignore list)")
	cmd.Flags().Bool("progress", false, "Print each package as it finishes to stderr")
	return cmd
}
