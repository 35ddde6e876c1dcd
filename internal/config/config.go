// Package config owns the persisted settings store and the environment
// capability probes. Settings live in a single config.yaml under the user
// config dir; reads go through a typed Settings snapshot so the rest of
// the app never touches viper directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Recognized settings keys.
const (
	KeyEnableSound      = "enableSound"
	KeyEnableConfetti   = "enableConfetti"
	KeyGlobalMute       = "globalMute"
	KeyDisableConfetti  = "disableConfetti"
	KeySoundVolume      = "soundVolume"
	KeyConfettiDuration = "confettiDuration"
	KeyMergeWindowMs    = "mergeWindowMs"
	KeyThrottleMs       = "throttleMs"
	KeyUndoWindowMs     = "undoWindowMs"
	KeyIntensityPolicy  = "intensityPolicy"
	KeyDebug            = "debug"
)

// Intensity policy values accepted by KeyIntensityPolicy.
const (
	PolicyFlat   = "flat"
	PolicyScaled = "scaled"
)

// Settings is one immutable snapshot of the user configuration.
type Settings struct {
	EnableSound     bool
	EnableConfetti  bool
	GlobalMute      bool
	DisableConfetti bool

	// SoundVolume is the base playback volume in [0,1] before intensity
	// scaling is applied.
	SoundVolume float64

	ConfettiDuration time.Duration
	MergeWindow      time.Duration
	Throttle         time.Duration
	UndoWindow       time.Duration

	// IntensityPolicy selects how batch size maps to feedback tier:
	// "flat" celebrates every batch at full tilt, "scaled" grows with
	// the batch size.
	IntensityPolicy string

	Debug bool
}

// Store wraps a viper instance bound to a single config.yaml. Values set
// through Set are validated and persisted; hand-edited files are read
// as-is, out-of-range values are tolerated at read time.
type Store struct {
	v    *viper.Viper
	path string
}

// DefaultDir returns the per-user directory the config file lives in.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "tada"), nil
}

// Open loads the settings store rooted at dir. An empty dir selects the
// per-user default location. A missing config file is not an error.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("TADA")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Store{v: v, path: filepath.Join(dir, "config.yaml")}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnableSound, true)
	v.SetDefault(KeyEnableConfetti, true)
	v.SetDefault(KeyGlobalMute, false)
	v.SetDefault(KeyDisableConfetti, false)
	v.SetDefault(KeySoundVolume, 0.7)
	v.SetDefault(KeyConfettiDuration, 800)
	v.SetDefault(KeyMergeWindowMs, 300)
	v.SetDefault(KeyThrottleMs, 500)
	v.SetDefault(KeyUndoWindowMs, 1000)
	v.SetDefault(KeyIntensityPolicy, PolicyFlat)
	v.SetDefault(KeyDebug, false)
}

// Default returns the built-in settings, before any file or environment
// override.
func Default() Settings {
	v := viper.New()
	setDefaults(v)
	return (&Store{v: v}).Settings()
}

// Path returns the config file location, whether or not it exists yet.
func (s *Store) Path() string {
	return s.path
}

// Settings extracts a typed snapshot of the current configuration.
func (s *Store) Settings() Settings {
	return Settings{
		EnableSound:      s.v.GetBool(KeyEnableSound),
		EnableConfetti:   s.v.GetBool(KeyEnableConfetti),
		GlobalMute:       s.v.GetBool(KeyGlobalMute),
		DisableConfetti:  s.v.GetBool(KeyDisableConfetti),
		SoundVolume:      s.v.GetFloat64(KeySoundVolume),
		ConfettiDuration: time.Duration(s.v.GetInt(KeyConfettiDuration)) * time.Millisecond,
		MergeWindow:      time.Duration(s.v.GetInt(KeyMergeWindowMs)) * time.Millisecond,
		Throttle:         time.Duration(s.v.GetInt(KeyThrottleMs)) * time.Millisecond,
		UndoWindow:       time.Duration(s.v.GetInt(KeyUndoWindowMs)) * time.Millisecond,
		IntensityPolicy:  s.v.GetString(KeyIntensityPolicy),
		Debug:            s.v.GetBool(KeyDebug),
	}
}

// Get returns the raw stored value for a recognized key.
func (s *Store) Get(key string) (any, error) {
	spec, ok := keySpecs[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	return s.v.Get(spec.name), nil
}

// Set validates value against the key's declared bounds, stores it, and
// persists the whole file. Unknown keys and out-of-bounds values are
// rejected here so a bad value never reaches disk.
func (s *Store) Set(key, value string) error {
	spec, ok := keySpecs[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	parsed, err := spec.parse(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", spec.name, err)
	}
	s.v.Set(spec.name, parsed)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Keys returns the recognized key names in display order.
func Keys() []string {
	names := make([]string, 0, len(keySpecs))
	for _, spec := range keySpecs {
		names = append(names, spec.name)
	}
	sort.Strings(names)
	return names
}

type keySpec struct {
	name  string
	parse func(string) (any, error)
}

var keySpecs = map[string]keySpec{}

func registerKey(name string, parse func(string) (any, error)) {
	keySpecs[strings.ToLower(name)] = keySpec{name: name, parse: parse}
}

func init() {
	registerKey(KeyEnableSound, parseBool)
	registerKey(KeyEnableConfetti, parseBool)
	registerKey(KeyGlobalMute, parseBool)
	registerKey(KeyDisableConfetti, parseBool)
	registerKey(KeyDebug, parseBool)
	registerKey(KeySoundVolume, floatInRange(0, 1))
	registerKey(KeyConfettiDuration, intInRange(400, 1200))
	registerKey(KeyMergeWindowMs, intInRange(100, 1000))
	registerKey(KeyThrottleMs, intInRange(100, 1000))
	registerKey(KeyUndoWindowMs, intInRange(500, 3000))
	registerKey(KeyIntensityPolicy, oneOf(PolicyFlat, PolicyScaled))
}

func parseBool(value string) (any, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("want true or false, got %q", value)
	}
	return b, nil
}

func intInRange(min, max int) func(string) (any, error) {
	return func(value string) (any, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("want an integer, got %q", value)
		}
		if n < min || n > max {
			return nil, fmt.Errorf("%d is outside %d..%d", n, min, max)
		}
		return n, nil
	}
}

func floatInRange(min, max float64) func(string) (any, error) {
	return func(value string) (any, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("want a number, got %q", value)
		}
		if f < min || f > max {
			return nil, fmt.Errorf("%g is outside %g..%g", f, min, max)
		}
		return f, nil
	}
}

func oneOf(allowed ...string) func(string) (any, error) {
	return func(value string) (any, error) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return a, nil
			}
		}
		return nil, fmt.Errorf("want one of %s, got %q", strings.Join(allowed, "|"), value)
	}
}
