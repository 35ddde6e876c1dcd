// Package cli defines the tada command tree.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tada-cli/internal/config"
	"tada-cli/internal/format"
	"tada-cli/internal/logging"
	"tada-cli/internal/tui"
)

// App carries flag state shared across subcommands.
type App struct {
	ConfigDir  string
	Debug      bool
	JSON       bool
	PrettyJSON bool

	log     *zap.Logger
	logPath string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tada [path]",
		Short:        "Checklist TUI that celebrates completed items",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open a checklist
  tada todo.md

  # Open every markdown file in a directory
  tada ~/notes

  # Preview the feedback for the current settings
  tada celebrate --big
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No path => the current directory.
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			store, err := openStore(app)
			if err != nil {
				return err
			}
			return tui.Run(path, store, app.log)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debug := app.Debug
		if !debug {
			if store, err := openStore(app); err == nil {
				debug = store.Settings().Debug
			}
		}
		log, path, err := logging.Open(debug)
		if err != nil {
			return err
		}
		app.log = log
		app.logPath = path
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("TADA_CONFIG_DIR", ""), "Config directory (default: the per-user config dir)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write debug logs to the user cache dir")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Print machine-readable JSON where supported")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newCelebrateCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func writeJSON(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func openStore(app *App) (*config.Store, error) {
	return config.Open(app.ConfigDir)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
