package config

import (
	"testing"
	"time"
)

func TestOpenDefaults(t *testing.T) {
	t.Parallel()

	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got := st.Settings()
	if !got.EnableSound || !got.EnableConfetti {
		t.Fatalf("expected sound and confetti enabled by default: %+v", got)
	}
	if got.GlobalMute || got.DisableConfetti {
		t.Fatalf("expected mute flags off by default: %+v", got)
	}
	if got.SoundVolume != 0.7 {
		t.Fatalf("soundVolume default = %g, want 0.7", got.SoundVolume)
	}
	if got.MergeWindow != 300*time.Millisecond {
		t.Fatalf("mergeWindow default = %v, want 300ms", got.MergeWindow)
	}
	if got.Throttle != 500*time.Millisecond {
		t.Fatalf("throttle default = %v, want 500ms", got.Throttle)
	}
	if got.UndoWindow != time.Second {
		t.Fatalf("undoWindow default = %v, want 1s", got.UndoWindow)
	}
	if got.ConfettiDuration != 800*time.Millisecond {
		t.Fatalf("confettiDuration default = %v, want 800ms", got.ConfettiDuration)
	}
	if got.IntensityPolicy != PolicyFlat {
		t.Fatalf("intensityPolicy default = %q, want %q", got.IntensityPolicy, PolicyFlat)
	}
}

func TestSetPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := st.Set("mergeWindowMs", "250"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := st.Set("globalMute", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh store must see the written values.
	st2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := st2.Settings()
	if got.MergeWindow != 250*time.Millisecond {
		t.Fatalf("mergeWindow = %v after reopen, want 250ms", got.MergeWindow)
	}
	if !got.GlobalMute {
		t.Fatalf("globalMute not persisted: %+v", got)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	t.Parallel()

	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	cases := []struct {
		key   string
		value string
	}{
		{"noSuchKey", "1"},
		{"mergeWindowMs", "50"},       // below 100
		{"mergeWindowMs", "2000"},     // above 1000
		{"throttleMs", "99"},          // below 100
		{"undoWindowMs", "4000"},      // above 3000
		{"confettiDuration", "300"},   // below 400
		{"soundVolume", "1.5"},        // above 1
		{"soundVolume", "-0.1"},       // below 0
		{"soundVolume", "loud"},       // not a number
		{"enableSound", "yes please"}, // not a bool
		{"intensityPolicy", "jumbo"},  // unknown policy
	}
	for _, tc := range cases {
		if err := st.Set(tc.key, tc.value); err == nil {
			t.Fatalf("Set(%q, %q): expected error", tc.key, tc.value)
		}
	}

	// Rejected writes never reach the snapshot.
	got := st.Settings()
	if got.MergeWindow != 300*time.Millisecond || got.SoundVolume != 0.7 {
		t.Fatalf("settings changed by rejected Set: %+v", got)
	}
}

func TestSetAcceptsKeyCaseInsensitively(t *testing.T) {
	t.Parallel()

	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.Set("UNDOWINDOWMS", "1500"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := st.Settings().UndoWindow; got != 1500*time.Millisecond {
		t.Fatalf("undoWindow = %v, want 1.5s", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TADA_THROTTLEMS", "900")

	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := st.Settings().Throttle; got != 900*time.Millisecond {
		t.Fatalf("throttle = %v with env override, want 900ms", got)
	}
}

func TestKeysCoverEveryRegisteredKey(t *testing.T) {
	t.Parallel()

	names := Keys()
	if len(names) != len(keySpecs) {
		t.Fatalf("Keys() returned %d names, registry has %d", len(names), len(keySpecs))
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{KeyEnableSound, KeyUndoWindowMs, KeyIntensityPolicy, KeyDebug} {
		if !seen[want] {
			t.Fatalf("Keys() missing %q: %v", want, names)
		}
	}
}

func TestReducedMotion(t *testing.T) {
	t.Parallel()

	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	if ReducedMotion(env(nil)) {
		t.Fatalf("empty environment should not reduce motion")
	}
	if !ReducedMotion(env(map[string]string{"TADA_REDUCED_MOTION": "1"})) {
		t.Fatalf("TADA_REDUCED_MOTION=1 should reduce motion")
	}
	if ReducedMotion(env(map[string]string{"TADA_REDUCED_MOTION": "false"})) {
		t.Fatalf("TADA_REDUCED_MOTION=false should not reduce motion")
	}
	if !ReducedMotion(env(map[string]string{"NO_COLOR": "1"})) {
		t.Fatalf("NO_COLOR should reduce motion")
	}
}
