package feedback

import (
	"testing"
	"time"

	"tada-cli/internal/config"
	"tada-cli/internal/model"
)

func allOnSettings() config.Settings {
	set := config.Default()
	set.EnableSound = true
	set.EnableConfetti = true
	set.GlobalMute = false
	set.DisableConfetti = false
	return set
}

func TestBuildProfileDefaultIsHeavyRegardlessOfSize(t *testing.T) {
	t.Parallel()

	set := allOnSettings()
	for _, n := range []int{1, 2, 5, 40} {
		p := BuildProfile(n, set, false)
		if p.Sound == nil || p.Sound.Intensity != model.IntensityHeavy {
			t.Fatalf("n=%d sound = %+v, want heavy", n, p.Sound)
		}
		if p.Burst == nil || p.Burst.Intensity != model.IntensityHeavy {
			t.Fatalf("n=%d burst = %+v, want heavy", n, p.Burst)
		}
	}
}

func TestBuildProfileScaledPolicy(t *testing.T) {
	t.Parallel()

	set := allOnSettings()
	set.IntensityPolicy = config.PolicyScaled

	cases := []struct {
		n         int
		intensity model.Intensity
		particles int
	}{
		{1, model.IntensityLight, 30},
		{2, model.IntensityMedium, 60},
		{3, model.IntensityMedium, 60},
		{4, model.IntensityHeavy, 100},
		{9, model.IntensityHeavy, 100},
	}
	for _, tc := range cases {
		p := BuildProfile(tc.n, set, false)
		if p.Burst == nil || p.Burst.Intensity != tc.intensity || p.Burst.Particles != tc.particles {
			t.Fatalf("n=%d burst = %+v, want %s with %d particles", tc.n, p.Burst, tc.intensity, tc.particles)
		}
		if p.Sound == nil || p.Sound.Intensity != tc.intensity {
			t.Fatalf("n=%d sound = %+v, want %s", tc.n, p.Sound, tc.intensity)
		}
	}
}

func TestBuildProfileCarriesSettingsThrough(t *testing.T) {
	t.Parallel()

	set := allOnSettings()
	set.SoundVolume = 0.4
	set.ConfettiDuration = 1100 * time.Millisecond

	p := BuildProfile(3, set, false)
	if p.Sound.Volume != 0.4 {
		t.Fatalf("volume = %g, want the unscaled base 0.4", p.Sound.Volume)
	}
	if p.Burst.Duration != 1100*time.Millisecond {
		t.Fatalf("duration = %v, want 1.1s", p.Burst.Duration)
	}
}

func TestBuildProfileGates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*config.Settings)
		reduced bool
		sound   bool
		burst   bool
	}{
		{"all on", func(*config.Settings) {}, false, true, true},
		{"sound disabled", func(s *config.Settings) { s.EnableSound = false }, false, false, true},
		{"muted", func(s *config.Settings) { s.GlobalMute = true }, false, false, true},
		{"confetti disabled", func(s *config.Settings) { s.EnableConfetti = false }, false, true, false},
		{"confetti opted out", func(s *config.Settings) { s.DisableConfetti = true }, false, true, false},
		{"reduced motion", func(*config.Settings) {}, true, true, false},
		{"everything off", func(s *config.Settings) {
			s.EnableSound = false
			s.EnableConfetti = false
		}, false, false, false},
	}
	for _, tc := range cases {
		set := allOnSettings()
		tc.mutate(&set)
		p := BuildProfile(2, set, tc.reduced)
		if (p.Sound != nil) != tc.sound {
			t.Fatalf("%s: sound = %+v, want present=%v", tc.name, p.Sound, tc.sound)
		}
		if (p.Burst != nil) != tc.burst {
			t.Fatalf("%s: burst = %+v, want present=%v", tc.name, p.Burst, tc.burst)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	t.Parallel()

	if got := PolicyFor("SCALED")(1); got != model.IntensityLight {
		t.Fatalf("scaled policy (case-insensitive) gave %s for n=1, want light", got)
	}
	if got := PolicyFor("flat")(1); got != model.IntensityHeavy {
		t.Fatalf("flat policy gave %s for n=1, want heavy", got)
	}
	if got := PolicyFor("anything else")(1); got != model.IntensityHeavy {
		t.Fatalf("unknown policy gave %s, want the flat default", got)
	}
}
