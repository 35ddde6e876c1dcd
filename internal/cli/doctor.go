package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tada-cli/internal/audio"
	"tada-cli/internal/config"
)

// doctorReport is the machine-readable shape of a doctor run.
type doctorReport struct {
	ConfigFile     string         `json:"configFile"`
	ConfigPresent  bool           `json:"configPresent"`
	SoundDir       string         `json:"soundDir"`
	Player         string         `json:"player,omitempty"`
	PlayerPath     string         `json:"playerPath,omitempty"`
	Asset          string         `json:"asset,omitempty"`
	ColorProfile   string         `json:"colorProfile"`
	DarkBackground bool           `json:"darkBackground"`
	ReducedMotion  bool           `json:"reducedMotion"`
	DebugLog       string         `json:"debugLog,omitempty"`
	Settings       map[string]any `json:"settings"`
}

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report what feedback this environment can deliver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(app)
			if err != nil {
				return err
			}

			report := doctorReport{
				ConfigFile:     store.Path(),
				SoundDir:       filepath.Join(filepath.Dir(store.Path()), "sounds"),
				ColorProfile:   profileName(termenv.ColorProfile()),
				DarkBackground: termenv.HasDarkBackground(),
				ReducedMotion:  config.ReducedMotion(os.Getenv),
				DebugLog:       app.logPath,
				Settings:       map[string]any{},
			}
			if _, err := os.Stat(report.ConfigFile); err == nil {
				report.ConfigPresent = true
			}
			report.Player, report.PlayerPath, _ = audio.ProbePlayer()
			report.Asset, _ = audio.FindAsset(report.SoundDir)
			for _, key := range config.Keys() {
				val, err := store.Get(key)
				if err != nil {
					return err
				}
				report.Settings[key] = val
			}

			if app.JSON {
				return writeJSON(cmd, app, report)
			}

			out := cmd.OutOrStdout()
			state := "missing, defaults apply"
			if report.ConfigPresent {
				state = "present"
			}
			fmt.Fprintf(out, "config file:     %s (%s)\n", report.ConfigFile, state)
			if report.Player != "" {
				fmt.Fprintf(out, "sound player:    %s (%s)\n", report.Player, report.PlayerPath)
			} else {
				fmt.Fprintf(out, "sound player:    none, terminal bell only\n")
			}
			if report.Asset != "" {
				fmt.Fprintf(out, "sound asset:     %s\n", report.Asset)
			} else {
				fmt.Fprintf(out, "sound asset:     none under %s, synthesized chord\n", report.SoundDir)
			}
			fmt.Fprintf(out, "color profile:   %s\n", report.ColorProfile)
			fmt.Fprintf(out, "dark background: %v\n", report.DarkBackground)
			fmt.Fprintf(out, "reduced motion:  %v\n", report.ReducedMotion)
			if report.DebugLog != "" {
				fmt.Fprintf(out, "debug log:       %s\n", report.DebugLog)
			} else {
				fmt.Fprintf(out, "debug log:       off (enable with --debug or `tada config set debug true`)\n")
			}

			s := store.Settings()
			fmt.Fprintf(out, "sound:           %v (volume %.2f)\n", s.EnableSound && !s.GlobalMute, s.SoundVolume)
			fmt.Fprintf(out, "confetti:        %v (duration %s)\n", s.EnableConfetti && !s.DisableConfetti, s.ConfettiDuration)
			fmt.Fprintf(out, "intensity:       %s\n", s.IntensityPolicy)
			fmt.Fprintf(out, "windows:         merge %s, throttle %s, undo %s\n", s.MergeWindow, s.Throttle, s.UndoWindow)
			return nil
		},
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256-color"
	case termenv.ANSI:
		return "16-color"
	default:
		return "monochrome"
	}
}
