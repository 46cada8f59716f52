package object

import (
	"github.com/tomz197/circle-shooter/internal/physics"
)

// Projectile is a shot fired from the player toward a clicked point.
type Projectile struct {
	Position  physics.Vector2
	Velocity  physics.Vector2
	Radius    float64
	Color     Color
	destroyed bool // Marked for destruction
}

// NewProjectile creates a projectile at origin travelling toward target at
// speed units per tick.
func NewProjectile(origin, target physics.Vector2, radius, speed float64) *Projectile {
	return &Projectile{
		Position: origin,
		Velocity: origin.DirectionTo(target, speed),
		Radius:   radius,
		Color:    White,
	}
}

// Advance moves the projectile by its velocity.
func (p *Projectile) Advance() {
	p.Position = p.Position.Add(p.Velocity)
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// RenderSnapshot implements Entity.
func (p *Projectile) RenderSnapshot() Shape {
	return Shape{Center: p.Position, Radius: p.Radius, Color: p.Color, Alpha: 1}
}
