package feedback

import (
	"strings"

	"tada-cli/internal/config"
	"tada-cli/internal/model"
)

// Particle counts per burst tier. Sized for a terminal cell grid, not a
// pixel canvas.
const (
	particlesLight  = 30
	particlesMedium = 60
	particlesHeavy  = 100
)

// Policy maps a flush's batch size to a feedback tier.
type Policy func(n int) model.Intensity

// FlatHeavy celebrates every batch at full tilt regardless of size.
// This is the default behavior.
func FlatHeavy(int) model.Intensity {
	return model.IntensityHeavy
}

// Scaled grows the tier with the batch: one completion is light, a
// couple are medium, four or more go heavy.
func Scaled(n int) model.Intensity {
	switch {
	case n <= 1:
		return model.IntensityLight
	case n <= 3:
		return model.IntensityMedium
	default:
		return model.IntensityHeavy
	}
}

// PolicyFor selects the policy named in settings. Unknown names fall
// back to FlatHeavy.
func PolicyFor(name string) Policy {
	if strings.EqualFold(name, config.PolicyScaled) {
		return Scaled
	}
	return FlatHeavy
}

// BuildProfile derives the feedback decision for a batch of n checked
// items. Sound and confetti are gated independently; either side of the
// profile may come back nil.
func BuildProfile(n int, set config.Settings, reducedMotion bool) model.Profile {
	intensity := PolicyFor(set.IntensityPolicy)(n)

	var p model.Profile
	if set.EnableSound && !set.GlobalMute {
		p.Sound = &model.SoundSpec{
			Intensity: intensity,
			Volume:    set.SoundVolume,
		}
	}
	if set.EnableConfetti && !set.DisableConfetti && !reducedMotion {
		p.Burst = &model.BurstSpec{
			Intensity: intensity,
			Particles: particleCount(intensity),
			Duration:  set.ConfettiDuration,
		}
	}
	return p
}

func particleCount(intensity model.Intensity) int {
	switch intensity {
	case model.IntensityLight:
		return particlesLight
	case model.IntensityMedium:
		return particlesMedium
	default:
		return particlesHeavy
	}
}
