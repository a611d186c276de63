package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrAudioDisabled is returned by Initialize when the config turns audio off
var ErrAudioDisabled = errors.New("audio disabled")

// SoundManager plays game cues through the beep speaker
// Every Play method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	// Initialize speaker with sample rate and buffer size
	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close; an empty mixer plays silence
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Initialized reports whether cues reach the speaker
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayBounce plays an impact knock pitched by speed
func (sm *SoundManager) PlayBounce(speed float64) {
	sm.play(func(cfg *AudioConfig) beep.Streamer { return CreateBounceSound(cfg, speed) })
}

// PlayGoal plays the arrival arpeggio
func (sm *SoundManager) PlayGoal() {
	sm.play(CreateGoalSound)
}

func (sm *SoundManager) play(create func(*AudioConfig) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// Mixer is read from the speaker goroutine
	s := create(sm.cfg)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
