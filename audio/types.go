package audio

import (
	"time"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundBounce SoundType = iota // Satellite strikes an obstacle
	SoundGoal                    // Satellite reaches the end zone
	soundTypeCount
)

// AudioConfig holds audio system configuration
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns sensible defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   48000,
		EffectVolumes: map[SoundType]float64{
			SoundBounce: 0.8,
			SoundGoal:   1.0,
		},
	}
}

// Tone shaping
const (
	speakerBuffer = 100 * time.Millisecond

	BounceDuration = 80 * time.Millisecond
	bounceAttack   = 2 * time.Millisecond
	bounceRelease  = 60 * time.Millisecond

	// Pitch rises with impact speed: base + perUnit * speed, clamped
	BounceBaseHz    = 220.0
	BounceHzPerUnit = 60.0
	BounceMaxHz     = 1760.0

	GoalNoteDuration = 120 * time.Millisecond
	goalAttack       = 5 * time.Millisecond
	goalRelease      = 60 * time.Millisecond
)

// GoalArpeggio is C major rising to the octave
var GoalArpeggio = [...]float64{523.25, 659.25, 783.99, 1046.50}
