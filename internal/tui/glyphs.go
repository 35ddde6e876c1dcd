package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but we can choose between
// Unicode and ASCII glyph sets for chrome and confetti. This helps on
// terminals/fonts that render the shade and shape glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TADA_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: keep the current set.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func asciiGlyphs() bool {
	return glyphs() == glyphSetASCII
}

func glyphCheck() string {
	if asciiGlyphs() {
		return "v"
	}
	return "✔"
}

func glyphCursor() string {
	if asciiGlyphs() {
		return ">"
	}
	return "▌"
}

func glyphHRule() string {
	if asciiGlyphs() {
		return "-"
	}
	return "─"
}

func glyphSeparator() string {
	if asciiGlyphs() {
		return " | "
	}
	return " · "
}
