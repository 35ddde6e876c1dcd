package feedback

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tada-cli/internal/config"
	"tada-cli/internal/model"
)

// DispatchFunc receives one celebration: the derived profile plus the
// batch that earned it. It is invoked off the merge-timer goroutine, so
// implementations that touch UI state must marshal across themselves.
type DispatchFunc func(model.Profile, []model.Transition)

// ManualDoc keys transitions synthesized by the manual trigger surface.
const ManualDoc = "manual://trigger"

// dispatchWarnAfter is the soft ceiling for one dispatch. Slower runs
// are logged as warnings and otherwise ignored; feedback never blocks
// editing.
const dispatchWarnAfter = 200 * time.Millisecond

// undoLedgerSize bounds the undo ledger. Entries also age out on their
// own, so the cap only matters for pathological toggle storms.
const undoLedgerSize = 1024

// Options configures a Coordinator. Settings is re-read at every use
// point so config edits land mid-session. Now exists for tests; nil
// fields take working defaults.
type Options struct {
	Settings      func() config.Settings
	ReducedMotion func() bool
	Dispatch      DispatchFunc
	Logger        *zap.Logger
	Now           func() time.Time
}

// Coordinator owns the session's celebration state: the pending batch,
// the merge timer, the undo ledger and the global throttle. One
// instance per session. All entry points are safe for concurrent use;
// internally everything is serialized on one mutex.
type Coordinator struct {
	settings func() config.Settings
	reduced  func() bool
	dispatch DispatchFunc
	now      func() time.Time
	log      *zap.Logger

	mu       sync.Mutex
	started  bool
	stopped  bool
	pending  []model.Transition
	timer    *time.Timer
	undo     *expirable.LRU[model.TaskKey, time.Time]
	limiter  *rate.Limiter
	throttle time.Duration
}

// NewCoordinator builds an inert coordinator; call Start to arm it.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Settings == nil {
		opts.Settings = config.Default
	}
	if opts.ReducedMotion == nil {
		opts.ReducedMotion = func() bool { return config.ReducedMotion(nil) }
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(model.Profile, []model.Transition) {}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		settings: opts.Settings,
		reduced:  opts.ReducedMotion,
		dispatch: opts.Dispatch,
		now:      opts.Now,
		log:      opts.Logger,
	}
}

// Start arms the coordinator. The undo ledger and the throttle are
// sized from the current settings snapshot; transitions observed before
// Start are dropped.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	set := c.settings()
	// Ledger entries only matter within the undo window; twice that is
	// the retention bound.
	c.undo = expirable.NewLRU[model.TaskKey, time.Time](undoLedgerSize, nil, 2*set.UndoWindow)
	c.throttle = set.Throttle
	c.limiter = rate.NewLimiter(rate.Every(set.Throttle), 1)
	c.started = true
}

// Stop cancels any armed merge timer and drops pending state. A
// dispatch already in flight may still complete.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
}

// OnTransition is the sole entry point from the tracker, one call per
// detected flip.
//
// Unchecks never celebrate; they stamp the undo ledger and return. A
// check that lands within the undo window of the same key's last
// uncheck is suppressed outright. Anything else joins the pending batch
// and resets the merge timer, so the batch only flushes after a full
// quiet period.
func (c *Coordinator) OnTransition(ev model.Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.stopped {
		return
	}

	now := c.now()
	if !ev.Checked {
		c.undo.Add(ev.Key, now)
		return
	}

	if ts, ok := c.undo.Get(ev.Key); ok && now.Sub(ts) < c.settings().UndoWindow {
		c.log.Debug("re-check suppressed",
			zap.String("doc", ev.Key.Doc),
			zap.Int("line", ev.Key.Line))
		return
	}

	c.pending = append(c.pending, ev)
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.settings().MergeWindow, c.flush)
}

// Trigger feeds a synthetic batch of size n through the same admission
// and dispatch path as real flushes, bypassing the tracker and the
// merge window. It backs the manual test actions.
func (c *Coordinator) Trigger(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	if !c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	now := c.now()
	batch := make([]model.Transition, n)
	for i := range batch {
		batch[i] = model.Transition{
			Key:     model.TaskKey{Doc: ManualDoc, Line: i},
			Checked: true,
			At:      now,
		}
	}
	profile, ok := c.admit(n)
	c.mu.Unlock()

	if ok {
		c.run(profile, batch)
	}
}

// flush runs on merge-timer expiry. Batch and timer state are cleared
// before anything else so a failing driver can never wedge the next
// celebration.
func (c *Coordinator) flush() {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.timer = nil
	if c.stopped || len(batch) == 0 {
		c.mu.Unlock()
		return
	}
	profile, ok := c.admit(len(batch))
	c.mu.Unlock()

	if ok {
		c.run(profile, batch)
	}
}

// admit applies the global throttle and derives the profile. The caller
// holds mu. A rejected flush consumes no throttle token, so the window
// stays anchored to the last admitted flush, and an admitted flush
// anchors it whether or not any output ends up firing.
func (c *Coordinator) admit(n int) (model.Profile, bool) {
	set := c.settings()
	if set.Throttle != c.throttle {
		c.throttle = set.Throttle
		c.limiter.SetLimit(rate.Every(set.Throttle))
	}
	if !c.limiter.AllowN(c.now(), 1) {
		c.log.Debug("flush throttled", zap.Int("batch", n))
		return model.Profile{}, false
	}
	return BuildProfile(n, set, c.reduced()), true
}

// run invokes the dispatcher with panic and latency containment.
func (c *Coordinator) run(profile model.Profile, batch []model.Transition) {
	t0 := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("feedback dispatch panicked", zap.Any("panic", r))
		}
		if d := time.Since(t0); d > dispatchWarnAfter {
			c.log.Warn("slow feedback dispatch", zap.Duration("took", d))
		}
	}()
	c.dispatch(profile, batch)
}
