package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
		if len(out) > int(sampleRate)*10 {
			t.Fatal("streamer never ended")
		}
	}
}

func TestPopGeneratorDecays(t *testing.T) {
	samples := drain(t, beep.Take(sampleRate.N(200*time.Millisecond), NewPopGenerator(sampleRate, 440, 20)))
	if got, want := len(samples), sampleRate.N(200*time.Millisecond); got != want {
		t.Fatalf("samples = %d, want %d", got, want)
	}

	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range samples[from:to] {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}
	head := peak(0, 1000)
	tail := peak(len(samples)-1000, len(samples))
	if head > 0.3 {
		t.Fatalf("peak %v exceeds amplitude 0.3", head)
	}
	if tail >= head/2 {
		t.Fatalf("tail peak %v not below half of head peak %v", tail, head)
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d is not mono: %v", i, s)
		}
	}
}

func TestSweepGeneratorFadesOut(t *testing.T) {
	g := NewSweepGenerator(sampleRate, 440, 110, 0.5)
	samples := drain(t, beep.Take(sampleRate.N(600*time.Millisecond), g))
	for _, s := range samples[sampleRate.N(500*time.Millisecond):] {
		if s[0] != 0 {
			t.Fatalf("sample after the sweep = %v, want silence", s[0])
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()
	// None of these may touch the speaker before Initialize
	sm.PlayShot()
	sm.PlayHit(true)
	sm.PlayHit(false)
	sm.PlayGameOver()
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Fatalf("mixer holds %d streamers, want 0", sm.mixer.Len())
	}
}
