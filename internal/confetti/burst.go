// Package confetti simulates a short particle burst on a terminal cell
// grid and composites it over an already-rendered frame. The package is
// plain state plus pure functions; the TUI owns the frame ticks.
package confetti

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tada-cli/internal/model"
)

// gravity is the constant downward acceleration, in cells per second
// squared. Terminal cells are tall, so this is gentler than it sounds.
const gravity = 30.0

type shape int

const (
	shapeRect shape = iota
	shapeDisc
)

// Glyphs indexed by rotation quadrant. The progression fakes a tumble:
// blocks thin out, discs roll their shading around.
var (
	rectBig   = [4]string{"█", "▓", "▒", "░"}
	rectSmall = [4]string{"▪", "▞", "▫", "▚"}
	discBig   = [4]string{"◐", "◓", "◑", "◒"}
	discSmall = [4]string{"•", "◦", "·", "◦"}

	rectBigASCII   = [4]string{"#", "+", "x", "+"}
	rectSmallASCII = [4]string{"+", "x", "+", "x"}
	discBigASCII   = [4]string{"O", "0", "o", "0"}
	discSmallASCII = [4]string{"o", ".", "o", "."}
)

var palette = []lipgloss.Color{
	lipgloss.Color("196"), // red
	lipgloss.Color("208"), // orange
	lipgloss.Color("220"), // gold
	lipgloss.Color("46"),  // green
	lipgloss.Color("51"),  // cyan
	lipgloss.Color("45"),  // blue
	lipgloss.Color("201"), // magenta
	lipgloss.Color("213"), // pink
}

type particle struct {
	x, y  float64 // cell coordinates, y grows downward
	vx    float64 // cells per second
	vy    float64
	spin  float64 // radians per second
	phase float64
	shape shape
	big   bool
	style lipgloss.Style
}

func quadrant(phase float64) int {
	q := int(math.Mod(phase, 2*math.Pi) / (math.Pi / 2))
	return ((q % 4) + 4) % 4
}

func (p *particle) glyph(ascii bool) string {
	q := quadrant(p.phase)
	switch {
	case p.shape == shapeRect && p.big:
		if ascii {
			return rectBigASCII[q]
		}
		return rectBig[q]
	case p.shape == shapeRect:
		if ascii {
			return rectSmallASCII[q]
		}
		return rectSmall[q]
	case p.big:
		if ascii {
			return discBigASCII[q]
		}
		return discBig[q]
	default:
		if ascii {
			return discSmallASCII[q]
		}
		return discSmall[q]
	}
}

// Cell is one rendered particle, ready to splice into a frame.
type Cell struct {
	X, Y  int
	Glyph string
}

// System holds at most one live burst. Starting a new burst replaces
// the particle set outright; there is no accumulation across calls.
type System struct {
	rng   *rand.Rand
	ascii bool

	width  int
	height int

	duration time.Duration
	elapsed  time.Duration
	parts    []particle
}

// NewSystem builds an idle system. ascii selects the ASCII-safe glyph
// tables for terminals that render the shade blocks poorly.
func NewSystem(ascii bool) *System {
	return &System{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		ascii: ascii,
	}
}

// Resize records the viewport size in cells. Particles outside the new
// bounds are culled on the next Step.
func (s *System) Resize(width, height int) {
	s.width = width
	s.height = height
}

// Burst replaces any live animation with a fresh particle set scattered
// around origin. With a nil origin particles spawn at the horizontal
// center of the upper quarter. A burst with zero particles, or a zero
// duration, leaves the system idle.
func (s *System) Burst(spec model.BurstSpec, origin *model.Point) {
	s.duration = spec.Duration
	s.elapsed = 0
	s.parts = s.parts[:0]
	if spec.Duration <= 0 {
		return
	}
	o := model.Point{X: s.width / 2, Y: s.height / 4}
	if origin != nil {
		o = *origin
	}
	for i := 0; i < spec.Particles; i++ {
		s.parts = append(s.parts, s.spawn(o))
	}
}

func (s *System) spawn(o model.Point) particle {
	sh := shapeRect
	if s.rng.IntN(2) == 1 {
		sh = shapeDisc
	}
	return particle{
		x:     float64(o.X) + (s.rng.Float64()-0.5)*4,
		y:     float64(o.Y) + (s.rng.Float64()-0.5)*2,
		vx:    (s.rng.Float64() - 0.5) * 36,
		vy:    -4 - s.rng.Float64()*14,
		spin:  (s.rng.Float64() - 0.5) * 16,
		phase: s.rng.Float64() * 2 * math.Pi,
		shape: sh,
		big:   s.rng.IntN(3) > 0,
		style: lipgloss.NewStyle().Foreground(palette[s.rng.IntN(len(palette))]),
	}
}

// Step advances the animation by dt and drops particles that fell out
// of view. When the burst duration elapses every particle expires at
// once.
func (s *System) Step(dt time.Duration) {
	if len(s.parts) == 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed >= s.duration {
		s.parts = s.parts[:0]
		return
	}
	sec := dt.Seconds()
	live := s.parts[:0]
	for _, p := range s.parts {
		p.x += p.vx * sec
		p.y += p.vy * sec
		p.vy += gravity * sec
		p.phase += p.spin * sec
		if p.y > float64(s.height) || p.x < -1 || p.x > float64(s.width) {
			continue
		}
		live = append(live, p)
	}
	s.parts = live
}

// Active reports whether any particles remain. The TUI keeps ticking
// and compositing only while this is true.
func (s *System) Active() bool {
	return len(s.parts) > 0
}

// Cells renders the live particles to styled glyphs at integer cells,
// culling anything outside the viewport.
func (s *System) Cells() []Cell {
	if len(s.parts) == 0 {
		return nil
	}
	cells := make([]Cell, 0, len(s.parts))
	for i := range s.parts {
		p := &s.parts[i]
		x := int(math.Round(p.x))
		y := int(math.Round(p.y))
		if x < 0 || y < 0 || x >= s.width || y >= s.height {
			continue
		}
		cells = append(cells, Cell{X: x, Y: y, Glyph: p.style.Render(p.glyph(s.ascii))})
	}
	return cells
}
