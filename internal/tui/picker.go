package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"tada-cli/internal/document"
	"tada-cli/internal/feedback"
)

type pickerItem struct {
	path  string
	tasks int
	done  int
}

func (i pickerItem) FilterValue() string { return filepath.Base(i.path) }

func (i pickerItem) Title() string { return filepath.Base(i.path) }

func (i pickerItem) Description() string {
	if i.tasks == 0 {
		return "no checklist items"
	}
	return fmt.Sprintf("%s %d/%d done", glyphCheck(), i.done, i.tasks)
}

func newPicker() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	// We render our own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("list", "lists")
	// Bubble list defaults to quitting on ESC; here ESC only cancels a filter.
	l.KeyMap.Quit.SetKeys("q")
	return l
}

// refreshPicker rescans the directory and rebuilds the list items,
// keeping the selection on the same file when it still exists.
func (m *appModel) refreshPicker() {
	var selected string
	if it, ok := m.picker.SelectedItem().(pickerItem); ok {
		selected = it.path
	}

	items := make([]list.Item, 0, 8)
	for _, path := range m.listDocuments() {
		lines, err := document.ScanFile(path)
		if err != nil {
			m.log.Warn("scan document", zap.String("path", path), zap.Error(err))
			continue
		}
		it := pickerItem{path: path, tasks: len(lines)}
		for _, tl := range lines {
			if feedback.MarkerChecked(tl.Marker) {
				it.done++
			}
		}
		items = append(items, it)
	}
	m.picker.SetItems(items)

	if selected == "" {
		return
	}
	for idx, li := range items {
		if li.(pickerItem).path == selected {
			m.picker.Select(idx)
			return
		}
	}
}
