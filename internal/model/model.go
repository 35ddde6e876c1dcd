package model

import "time"

// TaskKey identifies one checklist item: the document path plus the
// zero-based line index the item occupies in that document.
type TaskKey struct {
	Doc  string `json:"doc"`
	Line int    `json:"line"`
}

// TaskLine is one checklist line as supplied by the host document layer:
// the raw state marker found between the brackets plus the item text.
// Marker normalization is not the host's job, so the marker is carried
// verbatim.
type TaskLine struct {
	Line   int    `json:"line"`
	Marker string `json:"marker"`
	Text   string `json:"text"`
}

// Transition records a single observed checkbox state change.
type Transition struct {
	Key     TaskKey   `json:"key"`
	Checked bool      `json:"checked"`
	At      time.Time `json:"at"`

	// Coord is the on-screen cell of the interaction that caused the
	// change, when known (mouse toggles). Nil for edits that arrived
	// from outside the UI.
	Coord *Point `json:"coord,omitempty"`
}

// Point is a terminal cell position. X is the column, Y the row, both
// zero-based from the top-left of the screen.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Intensity string

const (
	IntensityLight  Intensity = "light"
	IntensityMedium Intensity = "medium"
	IntensityHeavy  Intensity = "heavy"
)

// SoundSpec describes one audio cue to play.
type SoundSpec struct {
	Intensity Intensity `json:"intensity"`

	// Volume is the user's base volume in [0,1]. The audio driver
	// scales it by intensity and clamps the result.
	Volume float64 `json:"volume"`
}

// BurstSpec describes one confetti burst to render.
type BurstSpec struct {
	Intensity Intensity     `json:"intensity"`
	Particles int           `json:"particles"`
	Duration  time.Duration `json:"duration"`
}

// Profile is the feedback decision for a flushed batch of transitions.
// A nil member means that channel is disabled or suppressed for this
// celebration.
type Profile struct {
	Sound *SoundSpec `json:"sound,omitempty"`
	Burst *BurstSpec `json:"burst,omitempty"`
}
