// Package audio plays short completion cues. Playback never surfaces an
// error to the caller: failures degrade through tiers and end at the
// terminal bell.
package audio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"tada-cli/internal/model"
)

// assetCandidates are the asset names probed under the asset dir, in
// preference order. A missing asset is a normal outcome.
var assetCandidates = []string{"tada.wav", "celebrate.wav", "ding.wav"}

// Intensity scaling applied to the user's base volume.
const (
	volumeScaleLight = 0.8
	volumeScaleHeavy = 1.2
)

type synthKey struct {
	intensity model.Intensity
	volume    int // percent, so float jitter cannot fragment the cache
}

// Cue plays completion sounds through a tiered chain: a user-provided
// asset via a discovered system player, then a synthesized chord, then
// the terminal bell. Asset and player discovery run asynchronously
// after Start; plays arriving during discovery are queued and replayed
// in order once it settles, resolved or failed.
type Cue struct {
	assetDir string
	log      *zap.Logger

	lookPath func(string) (string, error)
	start    func(tier int, bin string, args []string) error
	bell     func() error

	mu           sync.Mutex
	loading      bool
	queue        []model.SoundSpec
	player       *player
	asset        string
	assetBroken  bool
	playerBroken bool
	armed        bool
	closed       bool
	synth        map[synthKey]string
}

// NewCue builds a cue driver that will look for assets under assetDir.
// Call Start to begin discovery.
func NewCue(assetDir string, logger *zap.Logger) *Cue {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cue{
		assetDir: assetDir,
		log:      logger,
		lookPath: exec.LookPath,
		bell:     defaultBell,
		loading:  true,
		armed:    true,
		synth:    map[synthKey]string{},
	}
	c.start = c.spawn
	return c
}

// Start launches asset and player discovery in the background.
func (c *Cue) Start() {
	go c.load()
}

func (c *Cue) load() {
	p := discoverPlayer(c.lookPath)
	asset := ""
	if p != nil {
		asset, _ = FindAsset(c.assetDir)
	}
	c.finishLoad(p, asset)
}

// FindAsset returns the first celebration WAV present under dir, trying
// the well-known names in preference order.
func FindAsset(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	for _, name := range assetCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// finishLoad publishes discovery results and replays queued plays in
// arrival order.
func (c *Cue) finishLoad(p *player, asset string) {
	c.mu.Lock()
	c.player = p
	c.asset = asset
	c.loading = false
	if p != nil {
		// A working player means there is nothing left to unlock.
		c.armed = false
	}
	queued := c.queue
	c.queue = nil
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, spec := range queued {
		c.Play(spec)
	}
}

// Play schedules one cue. It never returns an error and never waits for
// playback to finish.
func (c *Cue) Play(spec model.SoundSpec) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.loading {
		c.queue = append(c.queue, spec)
		c.mu.Unlock()
		return
	}
	p := c.player
	assetOK := c.asset != "" && !c.assetBroken
	playerOK := p != nil && !c.playerBroken
	asset := c.asset
	c.mu.Unlock()

	vol := volumeFor(spec)

	if playerOK && assetOK {
		err := c.start(1, p.bin, p.args(asset, vol))
		if err == nil {
			return
		}
		c.log.Warn("asset playback failed", zap.String("asset", asset), zap.Error(err))
	}

	if playerOK {
		path, err := c.synthFile(spec.Intensity, vol)
		if err != nil {
			c.log.Warn("synthesize cue", zap.Error(err))
		} else {
			// Volume is baked into the samples; the player gets full
			// gain so it is not applied twice.
			err = c.start(2, p.bin, p.args(path, 1))
			if err == nil {
				return
			}
			c.log.Warn("synth playback failed", zap.Error(err))
		}
	}

	if err := c.bell(); err != nil {
		c.log.Debug("terminal bell unavailable", zap.Error(err))
	}
}

// Unlock is the one-shot user-interaction hook for hosts that gate
// audio behind user intent. It re-probes for a player and disarms once
// one is observed; with no player found it stays armed for the next
// interaction.
func (c *Cue) Unlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed || c.loading || c.closed {
		return
	}
	if c.player == nil {
		c.player = discoverPlayer(c.lookPath)
	}
	if c.player != nil {
		c.armed = false
		c.playerBroken = false
		c.log.Debug("audio unlocked", zap.String("player", c.player.name))
	}
}

// Close stops accepting plays and removes synthesized temp files.
// In-flight player processes finish on their own.
func (c *Cue) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.queue = nil
	files := make([]string, 0, len(c.synth))
	for _, path := range c.synth {
		files = append(files, path)
	}
	c.synth = map[synthKey]string{}
	c.mu.Unlock()

	for _, path := range files {
		os.Remove(path)
	}
}

// spawn starts the player without waiting for it. A process that later
// exits nonzero demotes its tier so the next play skips it.
func (c *Cue) spawn(tier int, bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			c.log.Warn("audio player exited with error",
				zap.String("bin", bin), zap.Error(err))
			c.demote(tier)
		}
	}()
	return nil
}

func (c *Cue) demote(tier int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch tier {
	case 1:
		c.assetBroken = true
	case 2:
		c.playerBroken = true
	}
}

// synthFile renders, or reuses, the chord WAV for a tier at a volume.
func (c *Cue) synthFile(intensity model.Intensity, vol float64) (string, error) {
	key := synthKey{intensity: intensity, volume: int(vol*100 + 0.5)}
	c.mu.Lock()
	if path, ok := c.synth[key]; ok {
		c.mu.Unlock()
		return path, nil
	}
	c.mu.Unlock()

	f, err := os.CreateTemp("", "tada-cue-*.wav")
	if err != nil {
		return "", fmt.Errorf("create cue file: %w", err)
	}
	if _, err := f.Write(ChordWAV(intensity, vol)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write cue file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close cue file: %w", err)
	}

	c.mu.Lock()
	c.synth[key] = f.Name()
	c.mu.Unlock()
	return f.Name(), nil
}

// volumeFor applies tier scaling to the base volume and clamps to [0,1].
func volumeFor(spec model.SoundSpec) float64 {
	v := spec.Volume
	switch spec.Intensity {
	case model.IntensityLight:
		v *= volumeScaleLight
	case model.IntensityHeavy:
		v *= volumeScaleHeavy
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v
}

// defaultBell writes BEL to the controlling terminal, falling back to
// stdout when no tty is available.
func defaultBell() error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		_, werr := os.Stdout.WriteString("\a")
		return werr
	}
	defer tty.Close()
	_, err = tty.WriteString("\a")
	return err
}
