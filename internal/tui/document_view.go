package tui

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"tada-cli/internal/document"
	"tada-cli/internal/feedback"
	"tada-cli/internal/model"
)

// documentState is the open buffer: raw lines plus the scanned
// checklist view of them.
type documentState struct {
	path   string
	lines  []string
	tasks  []model.TaskLine
	cursor int
	scroll int
	rev    int // bumped on every content change, drives preview caching
}

func (m *appModel) openDocument(path string) {
	m.doc = documentState{path: path}
	m.view = viewDocument
	m.mode = modeSource
	m.reloadBuffer()
	m.observeBuffer()
}

// reloadBuffer refreshes lines from disk without observing, so callers
// control when transitions are emitted.
func (m *appModel) reloadBuffer() {
	d := &m.doc
	d.rev++
	b, err := os.ReadFile(d.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Warn("read document", zap.String("path", d.path), zap.Error(err))
		}
		d.lines = nil
		d.tasks = nil
		d.cursor = 0
		d.scroll = 0
		return
	}
	content := strings.ReplaceAll(string(b), "\r\n", "\n")
	d.lines = strings.Split(content, "\n")
	d.tasks = document.Scan(content)
	if d.cursor >= len(d.lines) {
		d.cursor = len(d.lines) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
	m.clampScroll()
}

// observeBuffer diffs the current buffer against tracked state and
// feeds any resulting transitions to the coordinator.
func (m *appModel) observeBuffer() {
	d := &m.doc
	if d.path == "" {
		return
	}
	d.tasks = document.Scan(strings.Join(d.lines, "\n"))
	for _, tr := range m.tracker.Observe(d.path, d.tasks) {
		m.coord.OnTransition(tr)
	}
}

func (d *documentState) save() error {
	return os.WriteFile(d.path, []byte(strings.Join(d.lines, "\n")), 0o644)
}

func (m appModel) taskAt(line int) (model.TaskLine, bool) {
	for _, tl := range m.doc.tasks {
		if tl.Line == line {
			return tl, true
		}
	}
	return model.TaskLine{}, false
}

// toggleLine flips the checkbox on the given buffer line, saves, and
// observes the new snapshot in place. The watcher's echo of our own
// write then diffs to nothing. click, when present, is remembered as a
// preferred origin for the upcoming celebration.
func (m *appModel) toggleLine(line int, click *model.Point) tea.Cmd {
	d := &m.doc
	tl, ok := m.taskAt(line)
	if !ok {
		return m.flash("No checkbox on this line")
	}
	marker := "x"
	if feedback.MarkerChecked(tl.Marker) {
		marker = " "
	}
	rewritten, ok := document.RewriteMarker(d.lines[tl.Line], marker)
	if !ok {
		return m.flash("Malformed checkbox")
	}
	d.lines[tl.Line] = rewritten
	d.rev++
	if err := d.save(); err != nil {
		m.log.Warn("save document", zap.String("path", d.path), zap.Error(err))
		return m.flash("Save failed: " + err.Error())
	}
	if click != nil {
		m.resolver.RememberClick(model.TaskKey{Doc: d.path, Line: tl.Line}, *click)
	}
	m.observeBuffer()
	return nil
}

func (m *appModel) moveCursor(delta int) {
	if m.mode == modePreview {
		m.doc.scroll += delta
		m.clampScroll()
		return
	}
	m.moveCursorTo(m.doc.cursor + delta)
}

func (m *appModel) moveCursorTo(line int) {
	if m.mode == modePreview {
		if line <= 0 {
			m.doc.scroll = 0
		} else {
			m.doc.scroll = len(m.previewLines())
		}
		m.clampScroll()
		return
	}
	if line < 0 {
		line = 0
	}
	if n := len(m.doc.lines); line >= n {
		line = n - 1
	}
	if line < 0 {
		line = 0
	}
	m.doc.cursor = line
	m.clampScroll()
}

func (m *appModel) clampScroll() {
	d := &m.doc
	body := m.bodyHeight()
	if m.mode == modePreview {
		limit := len(m.previewLines()) - body
		if limit < 0 {
			limit = 0
		}
		if d.scroll > limit {
			d.scroll = limit
		}
		if d.scroll < 0 {
			d.scroll = 0
		}
		return
	}
	if d.cursor < d.scroll {
		d.scroll = d.cursor
	}
	if d.cursor >= d.scroll+body {
		d.scroll = d.cursor - body + 1
	}
	if d.scroll < 0 {
		d.scroll = 0
	}
}

// previewLines renders the buffer through glamour, reusing the last
// render while the buffer and width are unchanged.
func (m *appModel) previewLines() []string {
	d := &m.doc
	w := m.width - 2
	if w < 10 {
		w = 10
	}
	if m.previewCache != nil && m.previewCacheW == w && m.previewRev == d.rev {
		return m.previewCache
	}
	out := renderMarkdown(strings.Join(d.lines, "\n"), w)
	m.previewCache = strings.Split(out, "\n")
	m.previewCacheW = w
	m.previewRev = d.rev
	return m.previewCache
}

// MarkerCell locates the screen cell of the checkbox marker for a
// document line. Only the source view has a stable column mapping;
// everything else reports unknown.
func (m appModel) MarkerCell(doc string, line int) (model.Point, bool) {
	if m.view != viewDocument || m.mode != modeSource || doc != m.doc.path {
		return model.Point{}, false
	}
	if line < m.doc.scroll || line >= m.doc.scroll+m.bodyHeight() || line >= len(m.doc.lines) {
		return model.Point{}, false
	}
	raw := m.doc.lines[line]
	idx := strings.Index(raw, "[")
	if idx < 0 {
		return model.Point{}, false
	}
	return model.Point{
		X: sourceGutterW + xansi.StringWidth(raw[:idx]) + 1,
		Y: headerLines + (line - m.doc.scroll),
	}, true
}

// LineBox approximates where a document line landed in the preview by
// proportional position in the rendered output.
func (m appModel) LineBox(doc string, line int) (feedback.Box, bool) {
	if m.view != viewDocument || m.mode != modePreview || doc != m.doc.path {
		return feedback.Box{}, false
	}
	total := len(m.doc.lines)
	if total == 0 {
		return feedback.Box{}, false
	}
	rendered := m.previewLines()
	row := line*len(rendered)/total - m.doc.scroll
	if row < 0 || row >= m.bodyHeight() {
		return feedback.Box{}, false
	}
	w := m.width - 2*sourceGutterW
	if w < 10 {
		w = 10
	}
	return feedback.Box{
		Min: model.Point{X: sourceGutterW, Y: headerLines + row},
		W:   w,
		H:   1,
	}, true
}
