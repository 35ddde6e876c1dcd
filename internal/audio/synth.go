package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"tada-cli/internal/model"
)

// Synthesized cue sample layout: short 16-bit mono PCM at CD rate.
const (
	synthRate     = 44100
	synthDuration = 220 * time.Millisecond
	synthSamples  = int(synthRate * synthDuration / time.Second)
)

// chordFreqs returns the harmonic layers for a tier: a lone C5 for
// light, adding E5 and then G5 as intensity grows.
func chordFreqs(intensity model.Intensity) []float64 {
	switch intensity {
	case model.IntensityLight:
		return []float64{523.25}
	case model.IntensityMedium:
		return []float64{523.25, 659.25}
	default:
		return []float64{523.25, 659.25, 783.99}
	}
}

// ChordWAV renders a short layered chord for the tier as a complete WAV
// file, with volume baked into the samples so it plays correctly even
// through players that take no volume flag. volume is clamped to [0,1].
func ChordWAV(intensity model.Intensity, volume float64) []byte {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}

	freqs := chordFreqs(intensity)
	samples := make([]int16, synthSamples)
	decay := synthDuration.Seconds()
	for i := range samples {
		t := float64(i) / synthRate
		// Exponential decay so the tail fades instead of clicking.
		env := math.Exp(-6 * t / decay)
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		v = v / float64(len(freqs)) * env * volume
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		samples[i] = int16(v * math.MaxInt16)
	}
	return wavBytes(samples)
}

// wavBytes wraps mono 16-bit samples in a minimal RIFF/WAVE container.
func wavBytes(samples []int16) []byte {
	dataLen := len(samples) * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(synthRate))
	binary.Write(&buf, binary.LittleEndian, uint32(synthRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))           // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))          // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
