// Command contentctl queries the content store directly, without going through
// the HTTP API. It reads the same environment as cmd/api.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"content-api/internal/app"
	"content-api/internal/config"
	"content-api/internal/observability/logging"
)

var version = "dev"

func main() {
	if err := NewRootCommand(openApp).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// opener builds the services a command runs against.
type opener func(ctx context.Context, logger *slog.Logger) (*app.App, error)

func openApp(ctx context.Context, logger *slog.Logger) (*app.App, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, logger)
}

// options are the persistent flags shared by every subcommand.
type options struct {
	output  string
	verbose bool
	timeout time.Duration
}

func NewRootCommand(open opener) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "contentctl",
		Short: "Query published posts, tags, projects and the resume",
		Long: `contentctl reads the content store the API serves from.

Configuration comes from the same environment variables as the API server
(DB_DRIVER, DATABASE_URL, BLOB_BACKEND, CDN_BASE_URL, ...).`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputText, outputJSON:
				return nil
			default:
				return fmt.Errorf("--output must be %q or %q, got %q", outputText, outputJSON, opts.output)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "overall command timeout")

	rootCmd.AddCommand(NewPostsCommand(opts, open))
	rootCmd.AddCommand(NewTagsCommand(opts, open))
	rootCmd.AddCommand(NewProjectsCommand(opts, open))
	rootCmd.AddCommand(NewResumeCommand(opts, open))
	rootCmd.AddCommand(NewDiagnoseCommand(opts, open))
	rootCmd.AddCommand(NewSchemaCommand(opts))

	return rootCmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), level, true)
}

// withApp opens the services, runs fn under the command timeout and closes them.
func withApp(cmd *cobra.Command, opts *options, open opener, fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	a, err := open(ctx, opts.logger(cmd))
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() { _ = a.Close() }()

	return fn(ctx, a)
}
