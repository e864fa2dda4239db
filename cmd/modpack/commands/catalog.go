package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modpack/internal/app"
)

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the package catalog",
	}
	cmd.AddCommand(c.newNormalizeCmd())
	cmd.AddCommand(c.newAddCmd())
	return cmd
}

func (c *CLI) newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite catalogs in canonical form",
		Long: "Read one or more catalogs, concatenate them and write the canonical catalog.\n" +
			"Without --output the result is printed to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, _ := cmd.Flags().GetStringArray("input")
			output, _ := cmd.Flags().GetString("output")
			check, _ := cmd.Flags().GetBool("check")

			result, err := c.app.Normalize(cmd.Context(), app.NormalizeOptions{
				ConfigPath: c.configPath,
				Inputs:     inputs,
				Output:     output,
				Check:      check,
			})
			if err != nil {
				return err
			}

			if result.Data != nil {
				_, err = cmd.OutOrStdout().Write(result.Data)
			}
			return err
		},
	}
	cmd.Flags().StringArrayP("input", "i", nil, "Source catalog (repeatable, default from profile)")
	cmd.Flags().StringP("output", "o", "", "Write the canonical catalog to this file")
	cmd.Flags().Bool("check", false, "Fail if the catalog is not already canonical")
	return cmd
}

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <archive>",
		Short: "Add a package archive to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mirror, _ := cmd.Flags().GetString("mirror")
			catalog, _ := cmd.Flags().GetString("catalog")
			algorithm, _ := cmd.Flags().GetString("algorithm")

			_, err := c.app.Add(cmd.Context(), app.AddOptions{
				ConfigPath: c.configPath,
				Catalog:    catalog,
				Archive:    args[0],
				Mirror:     mirror,
				Algorithm:  algorithm,
			})
			return err
		},
	}
	cmd.Flags().StringP("mirror", "m", "", "Download URL of the archive")
	cmd.Flags().String("catalog", "", "Path to the catalog file")
	cmd.Flags().String("algorithm", "md5", "Checksum algorithm: md5, sha1, sha256, sha384 or sha512")
	_ = cmd.MarkFlagRequired("mirror")
	return cmd
}
