package tui

import (
	"time"

	"tada-cli/internal/model"
)

type view int

const (
	viewPicker view = iota
	viewDocument
)

type docMode int

const (
	modeSource docMode = iota
	modePreview
)

// Layout constants for the document view. Geometry lookups depend on
// these, so the view and the lookup code share them.
const (
	headerLines   = 2
	footerLines   = 1
	sourceGutterW = 2
)

const frameInterval = 33 * time.Millisecond

const flashDuration = 2 * time.Second

// docChangedMsg arrives from the fsnotify watcher goroutine with the
// settled batch of changed markdown paths.
type docChangedMsg struct{ paths []string }

// celebrationMsg arrives from the coordinator's dispatch callback.
type celebrationMsg struct {
	profile model.Profile
	batch   []model.Transition
}

// frameTickMsg drives the confetti animation. seq guards against stale
// ticks after a new burst rewound the loop.
type frameTickMsg struct {
	seq int
	at  time.Time
}

type flashDoneMsg struct{ seq int }

type externalEditorDoneMsg struct{ err error }
