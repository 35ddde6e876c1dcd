package tui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor suspends the TUI and opens the document in
// $VISUAL/$EDITOR. The file is edited in place; on return the buffer is
// rescanned, so boxes checked in the editor celebrate like any others.
func (m *appModel) openExternalEditor() tea.Cmd {
	if m.doc.path == "" {
		return nil
	}
	words := splitShellWords(externalEditorName())
	if len(words) == 0 {
		words = []string{"vi"}
	}
	cmd := exec.Command(words[0], append(words[1:], m.doc.path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	})
}
