package cli

import (
	"github.com/spf13/cobra"

	"tada-cli/internal/tui"
)

func newCelebrateCmd(app *App) *cobra.Command {
	var big bool

	cmd := &cobra.Command{
		Use:   "celebrate",
		Short: "Play one celebration with the current settings",
		Long: "Celebrate fires a single manual celebration through the same " +
			"admission and intensity logic as a real completion, so it " +
			"doubles as a preview of the current settings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(app)
			if err != nil {
				return err
			}
			n := 1
			if big {
				n = 5
			}
			return tui.RunCelebrate(n, store, app.log)
		},
	}

	cmd.Flags().BoolVar(&big, "big", false, "Celebrate a five-item batch")
	return cmd
}
