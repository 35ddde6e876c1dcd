package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tada-cli/internal/confetti"
	"tada-cli/internal/feedback"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var frame string
	if m.view == viewPicker {
		frame = m.pickerView()
	} else {
		frame = m.documentView()
	}
	// Confetti is composited last so it floats over everything.
	if m.burst.Active() {
		frame = confetti.Overlay(frame, m.burst.Cells())
	}
	return frame
}

func (m appModel) header(title string) string {
	line := " " + styleTitle().Render("tada") + styleMuted().Render(glyphSeparator()) + title
	if m.tally > 0 {
		line += styleMuted().Render(fmt.Sprintf("%s%s %d done", glyphSeparator(), glyphCheck(), m.tally))
	}
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), max(0, m.width)))
	return truncLine(line, m.width) + "\n" + rule + "\n"
}

func (m appModel) footer(help string) string {
	if m.minibufferText != "" {
		return " " + styleTitle().Render(m.minibufferText)
	}
	return " " + styleMuted().Render(help)
}

func (m appModel) pickerView() string {
	title := filepath.Base(m.path) + styleMuted().Render(fmt.Sprintf("%s%d lists", glyphSeparator(), len(m.picker.Items())))
	help := "enter open" + glyphSeparator() + "/ filter" + glyphSeparator() + "t/T test" + glyphSeparator() + "q quit"
	return m.header(title) + padBody(m.picker.View(), m.width, m.bodyHeight()) + "\n" + m.footer(help)
}

func (m appModel) documentView() string {
	modeName := "source"
	if m.mode == modePreview {
		modeName = "preview"
	}
	title := filepath.Base(m.doc.path) + styleMuted().Render(glyphSeparator()+modeName)

	var body string
	if m.mode == modePreview {
		body = m.previewBody()
	} else {
		body = m.sourceBody()
	}

	help := "space toggle" + glyphSeparator() + "p preview" + glyphSeparator() + "e edit" + glyphSeparator() + "t/T test" + glyphSeparator() + "q quit"
	if m.mode == modePreview {
		help = "p source" + glyphSeparator() + "j/k scroll" + glyphSeparator() + "q quit"
	}
	if m.dir {
		help = "esc lists" + glyphSeparator() + help
	}
	return m.header(title) + padBody(body, m.width, m.bodyHeight()) + "\n" + m.footer(help)
}

// sourceBody renders raw document lines. Line text is never reflowed or
// reordered, so checkbox columns stay where the geometry lookup expects
// them; only zero-width styling is added.
func (m appModel) sourceBody() string {
	d := m.doc
	textW := m.width - sourceGutterW
	var b strings.Builder
	for i := d.scroll; i < d.scroll+m.bodyHeight() && i < len(d.lines); i++ {
		if i > d.scroll {
			b.WriteByte('\n')
		}
		st := lipgloss.NewStyle()
		switch {
		case i == d.cursor:
			st = styleCursorLine()
		case m.lineChecked(i):
			st = styleDone()
		}
		gutter := "  "
		if i == d.cursor {
			gutter = styleTitle().Render(glyphCursor()) + " "
		}
		b.WriteString(gutter + st.Render(truncLine(d.lines[i], textW)))
	}
	return b.String()
}

func (m appModel) lineChecked(line int) bool {
	tl, ok := m.taskAt(line)
	return ok && feedback.MarkerChecked(tl.Marker)
}

func (m appModel) previewBody() string {
	rendered := (&m).previewLines()
	start := m.doc.scroll
	if start > len(rendered) {
		start = len(rendered)
	}
	end := start + m.bodyHeight()
	if end > len(rendered) {
		end = len(rendered)
	}
	return strings.Join(rendered[start:end], "\n")
}

// padBody normalizes a pane to exactly height lines, each at most width
// cells wide.
func padBody(body string, width, height int) string {
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, ln := range lines {
		lines[i] = truncLine(ln, width)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// truncLine cuts a line to the given display width, ANSI-aware, with a
// trailing ellipsis when something was dropped.
func truncLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return xansi.Cut(s, 0, 1) + "\x1b[0m"
	}
	return xansi.Cut(s, 0, w-1) + "\x1b[0m…"
}
