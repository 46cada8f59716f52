package spawn

import "time"

// Policy decides when enemies are due. It is advanced once per simulation tick.
type Policy interface {
	// Due advances the policy by one tick, elapsed being the wall-clock time
	// since the previous tick, and returns how many enemies to spawn now.
	Due(elapsed time.Duration) int
	// Level returns the current difficulty level.
	Level() int
	// Reset returns the policy to its start-of-session state.
	Reset()
}

// Escalating spawns on a frame-counted timer. Every spawn raises the
// difficulty level by one (up to Max) and shortens the next interval to
// Base - level ticks.
type Escalating struct {
	Base      int // Interval in ticks at difficulty 0
	Max       int // Difficulty cap; the interval never drops below Base - Max
	countdown int
	level     int
}

// NewEscalating creates a frame-counted policy with a countdown of base ticks.
func NewEscalating(base, max int) *Escalating {
	e := &Escalating{Base: base, Max: max}
	e.Reset()
	return e
}

// Due implements Policy. elapsed is ignored; one call is one tick.
func (e *Escalating) Due(time.Duration) int {
	e.countdown--
	if e.countdown > 0 {
		return 0
	}
	if e.level < e.Max {
		e.level++
	}
	e.countdown = e.Interval()
	return 1
}

// Interval returns the current spawn interval in ticks.
func (e *Escalating) Interval() int {
	interval := e.Base - e.level
	if interval < 1 {
		interval = 1
	}
	return interval
}

// Level implements Policy.
func (e *Escalating) Level() int {
	return e.level
}

// Reset implements Policy.
func (e *Escalating) Reset() {
	e.level = 0
	e.countdown = e.Base
}

// FixedInterval spawns one enemy every Interval of wall-clock time,
// independent of the frame rate. Difficulty never rises.
type FixedInterval struct {
	Interval time.Duration
	acc      time.Duration
}

// NewFixedInterval creates a wall-clock policy.
func NewFixedInterval(interval time.Duration) *FixedInterval {
	return &FixedInterval{Interval: interval}
}

// Due implements Policy.
func (f *FixedInterval) Due(elapsed time.Duration) int {
	if f.Interval <= 0 {
		return 0
	}
	f.acc += elapsed
	n := int(f.acc / f.Interval)
	f.acc -= time.Duration(n) * f.Interval
	return n
}

// Level implements Policy.
func (f *FixedInterval) Level() int {
	return 0
}

// Reset implements Policy.
func (f *FixedInterval) Reset() {
	f.acc = 0
}
