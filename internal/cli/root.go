package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/movies-etl/internal/app"
)

type rootOptions struct {
	driver  string
	dsn     string
	logMode string
}

func (o rootOptions) overrides() app.Overrides {
	return app.Overrides{Driver: o.driver, DSN: o.dsn, LogMode: o.logMode}
}

type appFactory func(ctx context.Context, ov app.Overrides) (*app.App, error)

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := newRootCmd(app.New)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCmd(newApp appFactory) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "movies-etl",
		Short:         "Load, clean and normalize the movie dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "Database driver: postgres or sqlite (env DB_DRIVER)")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "Database DSN or SQLite path (env DATABASE_DSN)")
	root.PersistentFlags().StringVar(&opts.logMode, "log-mode", "", "Log mode: development, prod or test (env LOG_MODE)")

	// withApp opens the application for one command and always releases it.
	withApp := func(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, opts.overrides())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "init-db",
			Short: "Create the schema and all tables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					if err := a.Services.Pipeline.InitDB(ctx); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "database initialized")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "load <uri>",
			Short: "Load a CSV file (local path or gs://bucket/object) into staging",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					n, err := a.Services.Pipeline.Load(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rows\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Normalize missing markers and release dates in staging",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					n, err := a.Services.Pipeline.Clean(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "cleaned %d rows\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "transform",
			Short: "Normalize staging rows into movies, entities and links",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					stats, err := a.Services.Pipeline.Transform(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), stats)
				})
			},
		},
		&cobra.Command{
			Use:   "run <uri>",
			Short: "Load, clean and transform in one go",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					summary, err := a.Services.Pipeline.Run(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), summary)
				})
			},
		},
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
