package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tada-cli/internal/document"
	"tada-cli/internal/feedback"
	"tada-cli/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.burst.Resize(msg.Width, msg.Height)
		if m.dir {
			m.picker.SetSize(msg.Width-2, msg.Height-headerLines-footerLines)
		}
		m.previewCache = nil
		(&m).clampScroll()
		return m, nil

	case tea.KeyMsg:
		// Any interaction proves the user is present, which is the
		// signal the audio layer waits for after a failed probe.
		m.cue.Unlock()
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.cue.Unlock()
		return m.updateMouse(msg)

	case docChangedMsg:
		return m.updateDocChanged(msg)

	case celebrationMsg:
		return m.updateCelebration(msg)

	case frameTickMsg:
		if msg.seq != m.frameSeq {
			return m, nil
		}
		m.burst.Step(frameInterval)
		if !m.burst.Active() {
			return m, nil
		}
		return m, m.frameTickCmd()

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.minibufferText = ""
		}
		return m, nil

	case externalEditorDoneMsg:
		return m.updateEditorDone(msg)
	}

	if m.view == viewPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view == viewPicker {
		return m.updatePickerKey(msg)
	}
	return m.updateDocumentKey(msg)
}

func (m appModel) updatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a filter is being typed every key belongs to the list.
	if m.picker.SettingFilter() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if it, ok := m.picker.SelectedItem().(pickerItem); ok {
			(&m).openDocument(it.path)
		}
		return m, nil
	case "t":
		m.coord.Trigger(1)
		return m, nil
	case "T":
		m.coord.Trigger(5)
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m appModel) updateDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.dir {
			m.view = viewPicker
			(&m).refreshPicker()
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		(&m).moveCursor(-1)
	case "down", "j":
		(&m).moveCursor(1)
	case "pgup", "ctrl+u":
		(&m).moveCursor(-m.bodyHeight())
	case "pgdown", "ctrl+d":
		(&m).moveCursor(m.bodyHeight())
	case "g", "home":
		(&m).moveCursorTo(0)
	case "G", "end":
		(&m).moveCursorTo(len(m.doc.lines) - 1)
	case " ", "enter", "x":
		if m.mode != modeSource {
			return m, (&m).flash("Toggle in source view (press p)")
		}
		return m, (&m).toggleLine(m.doc.cursor, nil)
	case "p":
		if m.mode == modeSource {
			m.mode = modePreview
			m.doc.scroll = 0
		} else {
			m.mode = modeSource
			(&m).clampScroll()
		}
	case "t":
		m.coord.Trigger(1)
	case "T":
		m.coord.Trigger(5)
	case "e":
		return m, (&m).openExternalEditor()
	case "r":
		(&m).reloadBuffer()
		(&m).observeBuffer()
		return m, (&m).flash("Reloaded")
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != viewDocument {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		(&m).moveCursor(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		(&m).moveCursor(3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.mode != modeSource || msg.Y < headerLines {
			return m, nil
		}
		line := m.doc.scroll + msg.Y - headerLines
		if line < 0 || line >= len(m.doc.lines) {
			return m, nil
		}
		m.doc.cursor = line
		(&m).clampScroll()
		if _, ok := m.taskAt(line); ok {
			click := model.Point{X: msg.X, Y: msg.Y}
			return m, (&m).toggleLine(line, &click)
		}
	}
	return m, nil
}

// updateDocChanged handles a settled batch of file events: rescan each
// changed file, emit transitions for real diffs, and refresh whatever
// surface is showing the file. Our own saves arrive here too and diff
// to nothing because the buffer was observed at save time.
func (m appModel) updateDocChanged(msg docChangedMsg) (tea.Model, tea.Cmd) {
	for _, path := range msg.paths {
		lines, err := document.ScanFile(path)
		if err != nil {
			m.log.Warn("rescan document", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, tr := range m.tracker.Observe(path, lines) {
			m.coord.OnTransition(tr)
		}
		if m.view == viewDocument && path == m.doc.path {
			(&m).reloadBuffer()
		}
	}
	if m.view == viewPicker {
		(&m).refreshPicker()
	}
	return m, nil
}

// updateCelebration runs on the render loop, so it has to stay fast.
// Anything slow here would stall typing, which is worse than a dropped
// celebration.
func (m appModel) updateCelebration(msg celebrationMsg) (tea.Model, tea.Cmd) {
	start := time.Now()
	var cmds []tea.Cmd

	if msg.profile.Burst != nil {
		var origin *model.Point
		if pt, ok := m.resolver.Resolve(msg.batch, m); ok {
			origin = &pt
		}
		m.burst.Burst(*msg.profile.Burst, origin)
		if m.burst.Active() {
			cmds = append(cmds, (&m).startFrames())
		}
	}
	if msg.profile.Sound != nil {
		m.cue.Play(*msg.profile.Sound)
	}

	n := 0
	for _, tr := range msg.batch {
		if tr.Key.Doc != feedback.ManualDoc {
			n++
		}
	}
	if n > 0 {
		m.tally += n
		cmds = append(cmds, (&m).flash(fmt.Sprintf("%s +%d", glyphCheck(), n)))
	}

	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		m.log.Warn("slow celebration handling", zap.Duration("elapsed", elapsed))
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) updateEditorDone(msg externalEditorDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, (&m).flash("Editor failed: " + msg.err.Error())
	}
	(&m).reloadBuffer()
	(&m).observeBuffer()
	return m, nil
}
