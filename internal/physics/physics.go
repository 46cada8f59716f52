// Package physics provides 2D vectors, collision distance helpers and a
// broad-phase spatial grid.
package physics

import "math"

// Vector2 is a 2D value used for positions and velocities.
type Vector2 struct {
	X, Y float64
}

// Vec returns a Vector2 with the given components.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DirectionTo returns the unit vector pointing from v toward target, scaled
// by speed. The direction is derived from the angle between the two points,
// so coincident points yield (speed, 0).
func (v Vector2) DirectionTo(target Vector2, speed float64) Vector2 {
	angle := math.Atan2(target.Y-v.Y, target.X-v.X)
	return Vector2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vector2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Gap returns the distance between the edges of two circles. Negative values
// mean the circles overlap.
func Gap(a Vector2, ra float64, b Vector2, rb float64) float64 {
	return Distance(a, b) - ra - rb
}

// Touching reports whether two circles are within tolerance of each other,
// i.e. Gap(a, ra, b, rb) < tolerance.
func Touching(a Vector2, ra float64, b Vector2, rb float64, tolerance float64) bool {
	return Gap(a, ra, b, rb) < tolerance
}
