package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator generates a finite sine wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine oscillator that ends after duration
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration; release ends at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := e.totalSamples - e.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := range n {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// BounceFrequency maps impact speed to tone pitch
func BounceFrequency(speed float64) float64 {
	if !(speed > 0) {
		return BounceBaseHz
	}
	return min(BounceBaseHz+BounceHzPerUnit*speed, BounceMaxHz)
}

// CreateBounceSound generates a short knock, higher for harder hits
func CreateBounceSound(cfg *AudioConfig, speed float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := BounceFrequency(speed)

	// Fundamental plus a quiet fifth for body
	fund := NewEnvelope(NewOscillator(freq, BounceDuration, rate), BounceDuration, bounceAttack, bounceRelease, rate)
	fifth := NewEnvelope(NewOscillator(freq*1.5, BounceDuration, rate), BounceDuration, bounceAttack, bounceRelease/2, rate)
	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(fifth, 0.3))

	vol := cfg.EffectVolumes[SoundBounce] * cfg.MasterVolume
	return newVolume(mixed, vol)
}

// CreateGoalSound generates a rising arpeggio
func CreateGoalSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := make([]beep.Streamer, 0, len(GoalArpeggio))
	for _, freq := range GoalArpeggio {
		osc := NewOscillator(freq, GoalNoteDuration, rate)
		notes = append(notes, NewEnvelope(osc, GoalNoteDuration, goalAttack, goalRelease, rate))
	}
	sequence := beep.Seq(notes...)

	vol := cfg.EffectVolumes[SoundGoal] * cfg.MasterVolume
	return newVolume(sequence, vol)
}
