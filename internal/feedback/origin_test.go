package feedback

import (
	"testing"
	"time"

	"tada-cli/internal/model"
)

type fakeGeometry struct {
	markers map[model.TaskKey]model.Point
	boxes   map[model.TaskKey]Box
}

func (g *fakeGeometry) MarkerCell(doc string, line int) (model.Point, bool) {
	p, ok := g.markers[model.TaskKey{Doc: doc, Line: line}]
	return p, ok
}

func (g *fakeGeometry) LineBox(doc string, line int) (Box, bool) {
	b, ok := g.boxes[model.TaskKey{Doc: doc, Line: line}]
	return b, ok
}

func key(line int) model.TaskKey {
	return model.TaskKey{Doc: "todo.md", Line: line}
}

func TestResolveUsesEventCoordinateFirst(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	geo := &fakeGeometry{markers: map[model.TaskKey]model.Point{key(1): {X: 99, Y: 99}}}

	ev := model.Transition{Key: key(1), Checked: true, Coord: &model.Point{X: 4, Y: 7}}
	got, ok := r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 4, Y: 7}) {
		t.Fatalf("Resolve = %+v ok=%v, want the event's own coordinate", got, ok)
	}
}

func TestResolveClickCacheRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	r.now = fixedNow
	geo := &fakeGeometry{markers: map[model.TaskKey]model.Point{key(2): {X: 50, Y: 5}}}

	r.RememberClick(key(2), model.Point{X: 12, Y: 3})

	ev := model.Transition{Key: key(2), Checked: true}
	got, ok := r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 12, Y: 3}) {
		t.Fatalf("Resolve = %+v ok=%v, want the remembered click", got, ok)
	}

	// The cache is single-use: the next resolution for the same key
	// falls through to geometry.
	got, ok = r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 50, Y: 5}) {
		t.Fatalf("second Resolve = %+v ok=%v, want the marker cell", got, ok)
	}
}

func TestResolveStaleClickFallsThrough(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	now := fixedNow()
	r.now = func() time.Time { return now }
	geo := &fakeGeometry{markers: map[model.TaskKey]model.Point{key(3): {X: 8, Y: 8}}}

	r.RememberClick(key(3), model.Point{X: 1, Y: 1})
	now = now.Add(2 * time.Second)

	ev := model.Transition{Key: key(3), Checked: true}
	got, ok := r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 8, Y: 8}) {
		t.Fatalf("Resolve = %+v ok=%v, want geometry after the click went stale", got, ok)
	}
}

func TestResolveAveragesAcrossBatch(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	evs := []model.Transition{
		{Key: key(1), Coord: &model.Point{X: 10, Y: 10}},
		{Key: key(2), Coord: &model.Point{X: 20, Y: 30}},
		{Key: key(3)}, // unresolvable, contributes nothing
	}
	got, ok := r.Resolve(evs, nil)
	if !ok || got != (model.Point{X: 15, Y: 20}) {
		t.Fatalf("Resolve = %+v ok=%v, want the average (15,20)", got, ok)
	}
}

func TestResolveGeometryStrategyOrder(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	ev := model.Transition{Key: key(4), Checked: true}

	// Marker cell beats the line box.
	geo := &fakeGeometry{
		markers: map[model.TaskKey]model.Point{key(4): {X: 2, Y: 9}},
		boxes:   map[model.TaskKey]Box{key(4): {Min: model.Point{X: 0, Y: 9}, W: 40, H: 1}},
	}
	got, ok := r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 2, Y: 9}) {
		t.Fatalf("Resolve = %+v ok=%v, want the marker cell", got, ok)
	}

	// Without a marker cell the line box's center is used.
	geo = &fakeGeometry{
		boxes: map[model.TaskKey]Box{key(4): {Min: model.Point{X: 4, Y: 8}, W: 10, H: 1}},
	}
	got, ok = r.Resolve([]model.Transition{ev}, geo)
	if !ok || got != (model.Point{X: 9, Y: 8}) {
		t.Fatalf("Resolve = %+v ok=%v, want the box center", got, ok)
	}

	// Nothing visible resolves to nothing.
	got, ok = r.Resolve([]model.Transition{ev}, &fakeGeometry{})
	if ok {
		t.Fatalf("Resolve = %+v, want no origin for an invisible line", got)
	}
}

func TestResolveWithoutGeometry(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	if _, ok := r.Resolve([]model.Transition{{Key: key(5)}}, nil); ok {
		t.Fatalf("expected no origin without geometry or cached coordinates")
	}
	if _, ok := r.Resolve(nil, nil); ok {
		t.Fatalf("expected no origin for an empty batch")
	}
}
