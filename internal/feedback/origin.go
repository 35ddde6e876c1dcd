package feedback

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"tada-cli/internal/model"
)

// clickTTL is how long an opportunistically captured coordinate stays
// trustworthy. Past it the view may have scrolled, so resolution falls
// through to live geometry.
const clickTTL = 1500 * time.Millisecond

// clickCacheSize bounds the click cache; entries are single-use and
// short-lived, so a small cap is plenty.
const clickCacheSize = 256

// Geometry is the live view's ability to place a document line on
// screen. Implemented by the TUI. Every method is best-effort: a line
// that is scrolled out or not displayed reports ok=false.
type Geometry interface {
	// MarkerCell returns the exact cell of the checkbox marker, known
	// when the document is shown as editable source.
	MarkerCell(doc string, line int) (model.Point, bool)
	// LineBox returns the bounding box of the whole rendered line, the
	// coarser answer used in preview mode.
	LineBox(doc string, line int) (Box, bool)
}

// Box is a rectangle of terminal cells.
type Box struct {
	Min  model.Point
	W, H int
}

// Center returns the midpoint cell of the box.
func (b Box) Center() model.Point {
	return model.Point{X: b.Min.X + b.W/2, Y: b.Min.Y + b.H/2}
}

// Resolver computes where on screen a celebration should originate. It
// keeps a single-use cache of recently clicked cells so a checkbox
// toggled by mouse celebrates exactly where the pointer was.
type Resolver struct {
	now    func() time.Time
	log    *zap.Logger
	clicks *expirable.LRU[model.TaskKey, click]
}

type click struct {
	at model.Point
	t  time.Time
}

// NewResolver returns an empty resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		now:    time.Now,
		log:    logger,
		clicks: expirable.NewLRU[model.TaskKey, click](clickCacheSize, nil, clickTTL),
	}
}

// RememberClick records the cell of a pointer interaction with a
// checklist item. The next resolution for that key consumes it.
func (r *Resolver) RememberClick(key model.TaskKey, at model.Point) {
	r.clicks.Add(key, click{at: at, t: r.now()})
}

// Resolve returns one combined origin for a batch: each event resolves
// through its own coordinate, the click cache, then live geometry, and
// the results are averaged. ok is false when no event resolved, in
// which case the caller picks its own default. Resolution never errors;
// an invisible line simply contributes nothing.
func (r *Resolver) Resolve(events []model.Transition, geo Geometry) (model.Point, bool) {
	var sumX, sumY, n int
	now := r.now()
	for _, ev := range events {
		p, ok := r.originFor(ev, geo, now)
		if !ok {
			continue
		}
		sumX += p.X
		sumY += p.Y
		n++
	}
	if n == 0 {
		r.log.Debug("origin unresolved", zap.Int("events", len(events)))
		return model.Point{}, false
	}
	return model.Point{X: sumX / n, Y: sumY / n}, true
}

func (r *Resolver) originFor(ev model.Transition, geo Geometry, now time.Time) (model.Point, bool) {
	if ev.Coord != nil {
		return *ev.Coord, true
	}
	if c, ok := r.clicks.Get(ev.Key); ok {
		// Single-use: consume on hit whether or not it is still fresh.
		r.clicks.Remove(ev.Key)
		if now.Sub(c.t) <= clickTTL {
			return c.at, true
		}
	}
	if geo == nil {
		return model.Point{}, false
	}
	if p, ok := geo.MarkerCell(ev.Key.Doc, ev.Key.Line); ok {
		return p, true
	}
	if b, ok := geo.LineBox(ev.Key.Doc, ev.Key.Line); ok {
		return b.Center(), true
	}
	return model.Point{}, false
}
