package object

import (
	"github.com/tomz197/circle-shooter/internal/physics"
)

// Enemy is a circle that drifts toward the point it was aimed at when it
// spawned. Its radius shrinks when hit.
type Enemy struct {
	Position  physics.Vector2
	Velocity  physics.Vector2 // Fixed at spawn
	Radius    float64
	Color     Color
	destroyed bool
}

// NewEnemy creates an enemy at pos aimed at target, moving speed units per tick.
// The aim is never updated afterwards.
func NewEnemy(pos, target physics.Vector2, radius, speed float64, color Color) *Enemy {
	return &Enemy{
		Position: pos,
		Velocity: pos.DirectionTo(target, speed),
		Radius:   radius,
		Color:    color,
	}
}

// Advance moves the enemy by its velocity.
func (e *Enemy) Advance() {
	e.Position = e.Position.Add(e.Velocity)
}

// Damage applies a hit. When the remaining radius would still exceed floor the
// enemy shrinks by amount and survives; otherwise it is marked destroyed.
// Reports whether the enemy was destroyed.
func (e *Enemy) Damage(amount, floor float64) bool {
	if e.Radius-amount > floor && e.Radius-amount > 0 {
		e.Radius -= amount
		return false
	}
	e.destroyed = true
	return true
}

// MarkDestroyed marks the enemy for removal (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// RenderSnapshot implements Entity.
func (e *Enemy) RenderSnapshot() Shape {
	return Shape{Center: e.Position, Radius: e.Radius, Color: e.Color, Alpha: 1}
}
