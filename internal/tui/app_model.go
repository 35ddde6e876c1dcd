package tui

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tada-cli/internal/audio"
	"tada-cli/internal/config"
	"tada-cli/internal/confetti"
	"tada-cli/internal/document"
	"tada-cli/internal/feedback"
)

// pipeline bundles the long-lived celebration machinery the TUI drives.
// All fields are shared by pointer, so copying the model is cheap.
type pipeline struct {
	store    *config.Store
	tracker  *feedback.Tracker
	coord    *feedback.Coordinator
	resolver *feedback.Resolver
	cue      *audio.Cue
	burst    *confetti.System
	log      *zap.Logger
}

type appModel struct {
	pipeline

	path string // watch target, a markdown file or a directory
	dir  bool

	width  int
	height int

	view view

	picker list.Model

	doc  documentState
	mode docMode

	// Preview render cache, keyed by buffer revision and width.
	previewCache  []string
	previewCacheW int
	previewRev    int

	frameSeq int

	flashSeq       int
	minibufferText string

	tally int
}

func newAppModel(path string, dir bool, pl pipeline) appModel {
	m := appModel{
		pipeline: pl,
		path:     path,
		dir:      dir,
	}
	if dir {
		m.view = viewPicker
		m.picker = newPicker()
		m.refreshPicker()
		m.seedTracked()
	} else {
		m.openDocument(path)
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// listDocuments returns the markdown files under management, sorted.
func (m appModel) listDocuments() []string {
	if !m.dir {
		return []string{m.path}
	}
	matches, err := filepath.Glob(filepath.Join(m.path, "*.md"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// seedTracked takes a first snapshot of every document so that items
// already checked on startup never celebrate retroactively.
func (m *appModel) seedTracked() {
	for _, path := range m.listDocuments() {
		lines, err := document.ScanFile(path)
		if err != nil {
			m.log.Warn("seed document", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, tr := range m.tracker.Observe(path, lines) {
			m.coord.OnTransition(tr)
		}
	}
}

func (m appModel) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// flash puts a short-lived notice in the footer. A later flash
// supersedes an earlier one; only the newest timer clears the text.
func (m *appModel) flash(text string) tea.Cmd {
	m.minibufferText = text
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// startFrames begins a fresh animation clock. Bumping the sequence
// orphans any tick still in flight from an earlier burst.
func (m *appModel) startFrames() tea.Cmd {
	m.frameSeq++
	return m.frameTickCmd()
}

func (m appModel) frameTickCmd() tea.Cmd {
	seq := m.frameSeq
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg{seq: seq, at: t}
	})
}
