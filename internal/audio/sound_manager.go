// Package audio synthesises the game's sound effects.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effects is what the frontends play. SoundManager and Silent implement it.
type Effects interface {
	PlayShot()
	PlayHit(destroyed bool)
	PlayGameOver()
}

// Silent discards every effect.
type Silent struct{}

func (Silent) PlayShot()     {}
func (Silent) PlayHit(bool)  {}
func (Silent) PlayGameOver() {}

var (
	_ Effects = (*SoundManager)(nil)
	_ Effects = Silent{}
)

// SoundManager plays short effects through a shared mixer. Every Play method
// is a no-op until Initialize succeeds, so a machine without an audio device
// still runs the game silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

// PlayShot plays a short high blip
func (sm *SoundManager) PlayShot() {
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	sm.play(beep.Take(sampleRate.N(time.Millisecond*40), sine))
}

// PlayHit plays a pop; destroying an enemy sounds lower and longer than shrinking it
func (sm *SoundManager) PlayHit(destroyed bool) {
	if destroyed {
		sm.play(beep.Take(sampleRate.N(time.Millisecond*220), NewPopGenerator(sampleRate, 220, 10)))
		return
	}
	sm.play(beep.Take(sampleRate.N(time.Millisecond*120), NewPopGenerator(sampleRate, 440, 20)))
}

// PlayGameOver plays a falling tone
func (sm *SoundManager) PlayGameOver() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*700), NewSweepGenerator(sampleRate, 440, 110, 0.7)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PopGenerator is a sine burst with an exponential decay envelope
type PopGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // Envelope decay rate per second
	pos   int
}

// NewPopGenerator creates a pop generator
func NewPopGenerator(sr beep.SampleRate, freq, decay float64) *PopGenerator {
	return &PopGenerator{sr: sr, freq: freq, decay: decay}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.3 * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}

// SweepGenerator glides linearly from one frequency to another over duration seconds
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	duration float64
	phase    float64
	pos      int
}

// NewSweepGenerator creates a frequency sweep generator
func NewSweepGenerator(sr beep.SampleRate, from, to, duration float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, duration: duration}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := math.Min(t/g.duration, 1)
		freq := g.from + (g.to-g.from)*progress

		// Integrate phase so the glide has no clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := 0.25 * (1 - progress) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
