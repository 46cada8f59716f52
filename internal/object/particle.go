package object

import (
	"sync"

	"github.com/tomz197/circle-shooter/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Rand is the random source used for cosmetic randomness. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner receives particles created during collision resolution.
type Spawner interface {
	SpawnParticle(p *Particle)
}

// Particle is a short-lived fading fragment of a hit enemy.
type Particle struct {
	Position physics.Vector2
	Velocity physics.Vector2
	Radius   float64
	Color    Color
	Alpha    float64 // Starts at 1, removed once negative
	Fade     float64 // Alpha lost per tick
}

// NewParticle creates a single fully opaque particle from the pool.
func NewParticle(pos, vel physics.Vector2, radius float64, color Color, fade float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Radius = radius
	p.Color = color
	p.Alpha = 1
	p.Fade = fade
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Advance moves the particle and fades it by one step.
func (p *Particle) Advance() {
	p.Position = p.Position.Add(p.Velocity)
	p.Alpha -= p.Fade
}

// Expired reports whether the particle has faded out completely.
func (p *Particle) Expired() bool {
	return p.Alpha < 0
}

// RenderSnapshot implements Entity.
func (p *Particle) RenderSnapshot() Shape {
	return Shape{Center: p.Position, Radius: p.Radius, Color: p.Color, Alpha: p.Alpha}
}

// Burst describes the particle spray produced when a projectile hits an enemy.
type Burst struct {
	MaxRadius float64 // Particle radius is drawn from [0, MaxRadius)
	MaxSpeed  float64 // Per-axis speed factor is drawn from [0, MaxSpeed)
	Fade      float64
}

// SpawnBurst creates count particles at pos in the given colour. Each velocity
// component is (u - 0.5) * v with u in [0,1) and v in [0, MaxSpeed).
func SpawnBurst(pos physics.Vector2, count int, color Color, b Burst, rng Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		radius := rng.Float64() * b.MaxRadius
		vel := physics.Vec(
			(rng.Float64()-0.5)*(rng.Float64()*b.MaxSpeed),
			(rng.Float64()-0.5)*(rng.Float64()*b.MaxSpeed),
		)
		spawner.SpawnParticle(NewParticle(pos, vel, radius, color, b.Fade))
	}
}
