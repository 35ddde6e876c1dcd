package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor pairs and "faint"
// styling is applied only on dark backgrounds (faint on light terminals
// often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "75")
	colorDone       lipgloss.TerminalColor = ac("28", "77")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleDone() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorDone))
}

func styleCursorLine() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

// applyTerminalPreferences configures Lip Gloss's color profile and
// background detection before the program starts.
//
// termenv.EnvColorProfile honors CLICOLOR, which is aimed at
// non-interactive output and can accidentally strip a TUI to
// monochrome. Here only NO_COLOR is honored; otherwise the terminal's
// detected capabilities win, nudged up when TERM/COLORTERM clearly
// promise more than the probe reported.
func applyTerminalPreferences() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		profile := termenv.ColorProfile()
		term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
		colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
		if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
			if profile != termenv.Ascii {
				profile = termenv.TrueColor
			}
		} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
			profile = termenv.ANSI256
		}
		lipgloss.SetColorProfile(profile)
	}

	// Background detection is unreliable in some terminals; let the
	// user pin it, then fall back to the COLORFGBG convention.
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("TADA_TUI_THEME"))); v == "light" || v == "dark" {
		lipgloss.SetHasDarkBackground(v == "dark")
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
