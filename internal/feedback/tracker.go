// Package feedback is the celebration pipeline: it turns raw document
// snapshots into discrete checkbox transitions, batches and gates them,
// and decides where on screen and how loudly to celebrate. Output
// drivers live elsewhere; this package only decides.
package feedback

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tada-cli/internal/model"
)

// checkedMarkers is the accepted set of "this box is ticked" markers.
// Comparison is case-insensitive; anything else counts as unchecked.
var checkedMarkers = map[string]bool{
	"x": true,
	"✓": true,
	"✔": true,
}

// MarkerChecked normalizes a raw bracket marker to a checked flag.
func MarkerChecked(marker string) bool {
	return checkedMarkers[strings.ToLower(marker)]
}

// Tracker keeps the last-known checked state of every checklist line,
// one map per document, and diffs incoming snapshots into transitions.
// Maps are rebuilt whole on every observation, so line renumbering from
// edits above a task costs nothing.
type Tracker struct {
	now func() time.Time
	log *zap.Logger

	mu   sync.Mutex
	docs map[string]map[int]bool
}

// NewTracker returns an empty tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		now:  time.Now,
		log:  logger,
		docs: make(map[string]map[int]bool),
	}
}

// Observe ingests the authoritative checklist snapshot for a document
// and returns one transition per line whose checked state flipped since
// the previous snapshot, in the order the lines were supplied.
//
// The first observation of a document seeds state and emits nothing, so
// pre-checked items at load time stay quiet. An empty snapshot drops the
// document entirely; a later reappearance seeds afresh.
func (t *Tracker) Observe(doc string, lines []model.TaskLine) []model.Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(lines) == 0 {
		if _, ok := t.docs[doc]; ok {
			delete(t.docs, doc)
			t.log.Debug("document dropped", zap.String("doc", doc))
		}
		return nil
	}

	next := make(map[int]bool, len(lines))
	for _, ln := range lines {
		next[ln.Line] = MarkerChecked(ln.Marker)
	}

	prev, seeded := t.docs[doc]
	t.docs[doc] = next
	if !seeded {
		t.log.Debug("document seeded",
			zap.String("doc", doc),
			zap.Int("lines", len(lines)))
		return nil
	}

	var out []model.Transition
	now := t.now()
	for _, ln := range lines {
		cur := next[ln.Line]
		if prev[ln.Line] == cur {
			continue
		}
		out = append(out, model.Transition{
			Key:     model.TaskKey{Doc: doc, Line: ln.Line},
			Checked: cur,
			At:      now,
		})
	}
	return out
}
