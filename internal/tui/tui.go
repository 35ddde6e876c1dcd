// Package tui is the interactive checklist surface: it renders markdown
// documents, lets the user toggle checkboxes, and plays the sound and
// confetti feedback when items land in the checked state.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tada-cli/internal/audio"
	"tada-cli/internal/config"
	"tada-cli/internal/confetti"
	"tada-cli/internal/document"
	"tada-cli/internal/feedback"
	"tada-cli/internal/model"
)

// programRef hands the running program to callbacks that outlive any
// single model copy (coordinator dispatch, watcher events). send before
// set is a quiet no-op.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) set(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *programRef) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// soundDir is where users may drop a custom celebration WAV.
func soundDir() string {
	dir, err := config.DefaultDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sounds")
}

func reducedMotion() bool {
	return config.ReducedMotion(os.Getenv) || termenv.ColorProfile() == termenv.Ascii
}

func newPipeline(store *config.Store, ref *programRef, log *zap.Logger) pipeline {
	pl := pipeline{
		store:    store,
		tracker:  feedback.NewTracker(log),
		resolver: feedback.NewResolver(log),
		cue:      audio.NewCue(soundDir(), log),
		burst:    confetti.NewSystem(asciiGlyphs()),
		log:      log,
	}
	pl.coord = feedback.NewCoordinator(feedback.Options{
		Settings:      store.Settings,
		ReducedMotion: reducedMotion,
		Dispatch: func(profile model.Profile, batch []model.Transition) {
			ref.send(celebrationMsg{profile: profile, batch: batch})
		},
		Logger: log,
	})
	return pl
}

// Run opens the interactive TUI on a markdown file or a directory of
// markdown files and blocks until the user quits.
func Run(path string, store *config.Store, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	applyTerminalPreferences()
	applyGlyphPreference()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	ref := &programRef{}
	pl := newPipeline(store, ref, log)
	m := newAppModel(abs, info.IsDir(), pl)

	watcher, err := document.NewWatcher(abs, 0, func(paths []string) {
		ref.send(docChangedMsg{paths: paths})
	}, log)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	ref.set(p)

	pl.cue.Start()
	pl.coord.Start()
	if err := watcher.Start(); err != nil {
		log.Warn("document watch unavailable", zap.Error(err))
	}
	defer func() {
		watcher.Stop()
		pl.coord.Stop()
		pl.cue.Close()
	}()

	_, err = p.Run()
	return err
}
