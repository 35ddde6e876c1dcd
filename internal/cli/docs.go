package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tada-cli/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in user guide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				topics := docs.Topics()
				if app.JSON {
					return writeJSON(cmd, app, map[string]any{"topics": topics})
				}
				fmt.Fprintln(out, "Topics:")
				for _, topic := range topics {
					fmt.Fprintf(out, "  %s\n", topic)
				}
				fmt.Fprintln(out, "\nRead one with `tada docs <topic>`.")
				return nil
			}

			topic := strings.ToLower(args[0])
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic %q (run `tada docs` to list topics)", args[0])
			}
			if app.JSON {
				return writeJSON(cmd, app, map[string]any{"topic": topic, "markdown": body})
			}
			fmt.Fprint(out, body)
			return nil
		},
	}
}
