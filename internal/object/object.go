// Package object defines the simulated entities: the player, projectiles,
// enemies and cosmetic particles.
package object

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circle-shooter/internal/physics"
)

// Color is the fill colour of an entity.
type Color = colorful.Color

// White is used for the player and its projectiles.
var White = Color{R: 1, G: 1, B: 1}

// HSL returns the colour with the given hue (degrees) at 50% saturation and
// 50% lightness.
func HSL(hue float64) Color {
	return colorful.Hsl(hue, 0.5, 0.5)
}

// Shape is the render snapshot of a single entity: a filled circle.
type Shape struct {
	Center physics.Vector2
	Radius float64
	Color  Color
	Alpha  float64 // 1 for entities that do not fade
}

// Faded returns the shape colour blended toward black by its alpha, for
// renderers that cannot composite transparency.
func (s Shape) Faded(background Color) Color {
	if s.Alpha >= 1 {
		return s.Color
	}
	a := s.Alpha
	if a < 0 {
		a = 0
	}
	return background.BlendRgb(s.Color, a).Clamped()
}

// Entity is anything that can be handed to the rendering collaborator.
type Entity interface {
	RenderSnapshot() Shape
}

// Mover is an entity that moves at constant velocity once per tick.
type Mover interface {
	Entity
	Advance()
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the tick.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Screen is the playfield in logical units. The origin is the top-left corner.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the geometric center of the playfield.
func (s Screen) Center() physics.Vector2 {
	return physics.Vec(s.Width/2, s.Height/2)
}

// Outside reports whether a circle at pos with radius r crosses any edge of
// the playfield.
func (s Screen) Outside(pos physics.Vector2, r float64) bool {
	return pos.X-r < 0 || pos.X+r > s.Width || pos.Y-r < 0 || pos.Y+r > s.Height
}

// Player is the stationary circle in the middle of the playfield.
type Player struct {
	Position physics.Vector2
	Radius   float64
	Color    Color
}

// NewPlayer creates a player at the given position.
func NewPlayer(pos physics.Vector2, radius float64) *Player {
	return &Player{
		Position: pos,
		Radius:   radius,
		Color:    White,
	}
}

// RenderSnapshot implements Entity.
func (p *Player) RenderSnapshot() Shape {
	return Shape{Center: p.Position, Radius: p.Radius, Color: p.Color, Alpha: 1}
}
