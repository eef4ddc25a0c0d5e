// Command lessons browses, verifies and publishes the Python course catalog
// from the command line.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pycourse/internal/observability/logging"
)

// Set at build time via ldflags.
var version = "dev"

func main() {
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	databaseURL string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "lessons",
		Short:         "Browse and publish the Python course catalog",
		Long:          "lessons reads the course catalog from the embedded bundle, or from a published database when --database-url is set.",
		Version:       version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"),
		"read from (and publish to) this database instead of the embedded bundle")

	root.AddCommand(
		listCmd(opts),
		showCmd(opts),
		searchCmd(opts),
		verifyCmd(),
		publishCmd(opts),
	)
	return root
}
