package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("TADA_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if !asciiGlyphs() {
		t.Fatalf("expected ascii glyphs")
	}
	if glyphCheck() != "v" || glyphHRule() != "-" {
		t.Fatalf("expected ascii chrome, got %q %q", glyphCheck(), glyphHRule())
	}

	t.Setenv("TADA_TUI_GLYPHS", "")
	applyGlyphPreference()
	if asciiGlyphs() {
		t.Fatalf("expected unicode glyphs by default")
	}
	if glyphCheck() != "✔" {
		t.Fatalf("expected unicode check, got %q", glyphCheck())
	}

	setGlyphs(glyphSetASCII)
	t.Setenv("TADA_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if !asciiGlyphs() {
		t.Fatalf("expected an unknown value to keep the current set")
	}
}

func TestTerminalPreferencesHonorNoColor(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	prevDark := lipgloss.HasDarkBackground()
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
		lipgloss.SetHasDarkBackground(prevDark)
	})

	t.Setenv("NO_COLOR", "1")
	t.Setenv("TADA_TUI_THEME", "dark")
	applyTerminalPreferences()
	if lipgloss.ColorProfile() != termenv.Ascii {
		t.Fatalf("expected NO_COLOR to force the ascii profile")
	}
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected the pinned dark theme")
	}

	t.Setenv("TADA_TUI_THEME", "light")
	applyTerminalPreferences()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected the pinned light theme")
	}
}

func TestTruncLine(t *testing.T) {
	if got := truncLine("hello", 10); got != "hello" {
		t.Fatalf("expected short lines untouched, got %q", got)
	}
	got := truncLine("hello world", 5)
	if xansi.Strip(got) != "hell…" {
		t.Fatalf("expected a cut with ellipsis, got %q", xansi.Strip(got))
	}
	if w := xansi.StringWidth(got); w != 5 {
		t.Fatalf("expected width 5, got %d", w)
	}
	if got := truncLine("anything", 0); got != "" {
		t.Fatalf("expected empty at width 0, got %q", got)
	}
}

func TestPadBody(t *testing.T) {
	got := padBody("a\nb", 10, 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 || lines[0] != "a" || lines[3] != "" {
		t.Fatalf("expected padding to 4 lines, got %q", got)
	}

	got = padBody("a\nb\nc", 10, 2)
	if got != "a\nb" {
		t.Fatalf("expected overflow dropped, got %q", got)
	}
}

func TestSplitShellWords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"vi", []string{"vi"}},
		{"code --wait", []string{"code", "--wait"}},
		{`emacs -nw --eval '(foo bar)'`, []string{"emacs", "-nw", "--eval", "(foo bar)"}},
		{`"my editor" file`, []string{"my editor", "file"}},
		{`a\ b`, []string{"a b"}},
	}
	for _, tc := range cases {
		got := splitShellWords(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
			}
		}
	}
}
