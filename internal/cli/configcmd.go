package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tada-cli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(app)
			if err != nil {
				return err
			}
			values := map[string]any{}
			for _, key := range config.Keys() {
				val, err := store.Get(key)
				if err != nil {
					return err
				}
				values[key] = val
			}
			if app.JSON {
				return writeJSON(cmd, app, map[string]any{"file": store.Path(), "settings": values})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", store.Path())
			for _, key := range config.Keys() {
				fmt.Fprintf(out, "%s: %v\n", key, values[key])
			}
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Example: strings.TrimSpace(`
  tada config set soundVolume 0.5
  tada config set intensityPolicy scaled
  tada config set globalMute true
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(app)
			if err != nil {
				return err
			}
			if err := store.Set(args[0], args[1]); err != nil {
				return err
			}
			val, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", args[0], val)
			return nil
		},
	}
}
