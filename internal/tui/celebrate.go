package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tada-cli/internal/audio"
	"tada-cli/internal/config"
	"tada-cli/internal/confetti"
	"tada-cli/internal/feedback"
	"tada-cli/internal/model"
)

// celebrateModel hosts a single manual celebration: fire one trigger,
// animate whatever the coordinator admits, then quit on its own.
type celebrateModel struct {
	pl pipeline
	n  int

	width    int
	height   int
	frameSeq int

	// A celebration that lands before the first WindowSizeMsg would
	// burst into a zero-sized viewport, so it is parked until then.
	pending *celebrationMsg
}

type celebrateDeadlineMsg struct{}

func (m celebrateModel) Init() tea.Cmd {
	trigger := func() tea.Msg {
		m.pl.coord.Trigger(m.n)
		return nil
	}
	// Muted or throttled runs produce no animation; never hang.
	deadline := tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return celebrateDeadlineMsg{}
	})
	return tea.Batch(trigger, deadline)
}

func (m celebrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pl.burst.Resize(msg.Width, msg.Height)
		if m.pending != nil {
			queued := *m.pending
			m.pending = nil
			return m.celebrate(queued)
		}
		return m, nil

	case tea.KeyMsg:
		return m, tea.Quit

	case celebrationMsg:
		if m.width <= 0 {
			m.pending = &msg
			return m, nil
		}
		return m.celebrate(msg)

	case frameTickMsg:
		if msg.seq != m.frameSeq {
			return m, nil
		}
		m.pl.burst.Step(frameInterval)
		if !m.pl.burst.Active() {
			return m, tea.Quit
		}
		return m, m.frameTickCmd()

	case celebrateDeadlineMsg:
		if !m.pl.burst.Active() {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m celebrateModel) celebrate(msg celebrationMsg) (tea.Model, tea.Cmd) {
	if msg.profile.Sound != nil {
		m.pl.cue.Play(*msg.profile.Sound)
	}
	if msg.profile.Burst != nil {
		m.pl.burst.Burst(*msg.profile.Burst, nil)
		if m.pl.burst.Active() {
			m.frameSeq++
			return m, m.frameTickCmd()
		}
	}
	// Sound only, or fully gated: give the player a moment, then go.
	return m, tea.Tick(600*time.Millisecond, func(time.Time) tea.Msg {
		return celebrateDeadlineMsg{}
	})
}

func (m celebrateModel) frameTickCmd() tea.Cmd {
	seq := m.frameSeq
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg{seq: seq, at: t}
	})
}

func (m celebrateModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	frame := strings.Repeat("\n", m.height-1)
	if m.pl.burst.Active() {
		frame = confetti.Overlay(frame, m.pl.burst.Cells())
	}
	return frame
}

// RunCelebrate fires one manual celebration of batch size n on a
// transient full-screen program. It runs through the same admission and
// intensity path as real completions, so it doubles as a way to test
// settings.
func RunCelebrate(n int, store *config.Store, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	applyTerminalPreferences()
	applyGlyphPreference()

	ref := &programRef{}
	pl := pipeline{
		store: store,
		cue:   audio.NewCue(soundDir(), log),
		burst: confetti.NewSystem(asciiGlyphs()),
		log:   log,
	}
	pl.coord = feedback.NewCoordinator(feedback.Options{
		Settings:      store.Settings,
		ReducedMotion: reducedMotion,
		Dispatch: func(profile model.Profile, batch []model.Transition) {
			ref.send(celebrationMsg{profile: profile, batch: batch})
		},
		Logger: log,
	})

	p := tea.NewProgram(celebrateModel{pl: pl, n: n}, tea.WithAltScreen())
	ref.set(p)

	pl.cue.Start()
	pl.coord.Start()
	defer func() {
		pl.coord.Stop()
		pl.cue.Close()
	}()

	_, err := p.Run()
	return err
}
