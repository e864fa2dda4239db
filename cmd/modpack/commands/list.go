package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/modpack/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platformVersion, _ := cmd.Flags().GetString("platform-version")
			catalog, _ := cmd.Flags().GetString("catalog")

			records, err := c.app.List(cmd.Context(), app.ListOptions{
				ConfigPath:      c.configPath,
				Catalog:         catalog,
				PlatformVersion: platformVersion,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := range records {
				_, _ = fmt.Fprintf(out, "%s - %s\n", records[i].Identifier, records[i].Description)
			}
			return nil
		},
	}
	cmd.Flags().StringP("platform-version", "p", "", "Only list packages built for this platform version")
	cmd.Flags().String("catalog", "", "Path to the catalog file")
	return cmd
}

func (c *CLI) newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the platform versions named in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, _ := cmd.Flags().GetString("catalog")

			versions, err := c.app.Versions(cmd.Context(), app.VersionsOptions{
				ConfigPath: c.configPath,
				Catalog:    catalog,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range versions {
				_, _ = fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().String("catalog", "", "Path to the catalog file")
	return cmd
}
