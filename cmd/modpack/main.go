// Package main is the entry point for the modpack tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/cmd/modpack/commands"
	"go.trai.ch/modpack/internal/app"
	_ "go.trai.ch/modpack/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// progressRenderer is implemented by telemetry that can print progress.
type progressRenderer interface {
	SetOutput(w io.Writer)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	var opts []commands.Option
	if l, ok := components.Logger.(jsonSwitcher); ok {
		opts = append(opts, commands.WithJSONLogging(l.SetJSON))
	}
	if p, ok := components.Telemetry.(progressRenderer); ok {
		opts = append(opts, commands.WithProgressOutput(p.SetOutput))
	}

	cli := commands.New(components.App, opts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
