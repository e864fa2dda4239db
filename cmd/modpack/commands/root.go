// Package commands implements the CLI commands for modpack.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modpack/internal/app"
	"go.trai.ch/modpack/internal/build"
	"go.trai.ch/modpack/internal/core/domain"
)

// CLI represents the command line interface for modpack.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	jsonLogs   bool
	setJSON    func(bool)

	setProgress func(io.Writer)
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, identifiers []string, opts app.ResolveOptions) (*domain.Resolution, error)
	Normalize(ctx context.Context, opts app.NormalizeOptions) (*app.NormalizeResult, error)
	Add(ctx context.Context, opts app.AddOptions) (*app.AddResult, error)
	List(ctx context.Context, opts app.ListOptions) ([]domain.CatalogRecord, error)
	Versions(ctx context.Context, opts app.VersionsOptions) ([]string, error)
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONLogging registers the hook called with the value of the --json flag
// before any command runs.
func WithJSONLogging(setJSON func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = setJSON
	}
}

// WithProgressOutput registers the hook that receives the writer resolve
// renders per-package progress to when --progress is set.
func WithProgressOutput(setProgress func(io.Writer)) Option {
	return func(c *CLI) {
		c.setProgress = setProgress
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modpack",
		Short:         "Resolve and download mod packs from a curated catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to the profile file (default modpack.yaml)")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Emit logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setJSON != nil {
			c.setJSON(c.jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
