package confetti

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Overlay splices rendered cells into an already-rendered frame without
// disturbing its layout. Rows outside the frame are ignored; a cell
// landing past a line's end pads the line with spaces first.
func Overlay(frame string, cells []Cell) string {
	if len(cells) == 0 {
		return frame
	}
	lines := strings.Split(frame, "\n")
	for _, c := range cells {
		if c.Y < 0 || c.Y >= len(lines) || c.X < 0 {
			continue
		}
		lines[c.Y] = spliceCell(lines[c.Y], c.X, c.Glyph)
	}
	return strings.Join(lines, "\n")
}

// spliceCell overwrites one display column of an ANSI-styled line. The
// reset before the glyph keeps the line's open styles from bleeding
// into it; the right remainder carries its own escape codes.
func spliceCell(line string, col int, glyph string) string {
	w := xansi.StringWidth(line)
	if col >= w {
		return line + strings.Repeat(" ", col-w) + glyph
	}
	left := xansi.Cut(line, 0, col)
	right := ""
	if col+1 < w {
		right = xansi.Cut(line, col+1, w)
	}
	return left + "\x1b[0m" + glyph + right
}
