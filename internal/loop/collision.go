package loop

import (
	"slices"

	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/object"
	"github.com/tomz197/circle-shooter/internal/physics"
)

// collisionGridCellSize is the cell size for the projectile broad-phase grid.
const collisionGridCellSize = 64.0

// Hit records one projectile striking one enemy.
type Hit struct {
	Destroyed bool // The enemy was destroyed rather than shrunk
	Points    int
}

// Outcome summarises one resolution pass.
type Outcome struct {
	Lost bool // An enemy reached the player
	Hits []Hit
}

// CollisionSystem resolves player-enemy and projectile-enemy contacts.
type CollisionSystem struct {
	tuning config.Tuning
	rng    object.Rand
	burst  object.Burst

	// Reused each tick
	projectileGrid *physics.SpatialGrid
	candidates     []int
	hits           []Hit
}

// NewCollisionSystem creates a collision system for the given tuning.
func NewCollisionSystem(t config.Tuning, rng object.Rand) *CollisionSystem {
	return &CollisionSystem{
		tuning: t,
		rng:    rng,
		burst: object.Burst{
			MaxRadius: t.ParticleMaxRadius,
			MaxSpeed:  t.ParticleMaxSpeed,
			Fade:      t.ParticleFade,
		},
		projectileGrid: physics.NewSpatialGrid(t.Width, t.Height, collisionGridCellSize),
	}
}

// Resolve runs once per tick after every entity has advanced. Enemies are
// visited in order; each is first tested against the player, then against
// every live projectile in collection order. A loss stops resolution
// immediately. Destroyed entities are only marked; the caller compacts them.
//
// The returned Outcome's Hits slice is reused by the next call.
func (c *CollisionSystem) Resolve(w *WorldState) Outcome {
	c.hits = c.hits[:0]
	tol := c.tuning.HitTolerance

	maxProjectileRadius := 0.0
	c.projectileGrid.Clear()
	for i, p := range w.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		c.projectileGrid.Insert(p.Position, i)
		maxProjectileRadius = max(maxProjectileRadius, p.Radius)
	}

	for _, e := range w.Enemies {
		if e.IsDestroyed() {
			continue
		}

		if w.Player != nil && physics.Touching(w.Player.Position, w.Player.Radius, e.Position, e.Radius, tol) {
			return Outcome{Lost: true, Hits: c.hits}
		}

		c.candidates = c.candidates[:0]
		c.projectileGrid.QueryRadius(e.Position, e.Radius+maxProjectileRadius+tol, func(i int) bool {
			c.candidates = append(c.candidates, i)
			return false
		})
		// keep collection order regardless of grid cell order
		slices.Sort(c.candidates)

		for _, i := range c.candidates {
			p := w.Projectiles[i]
			if p.IsDestroyed() {
				continue
			}
			if !physics.Touching(p.Position, p.Radius, e.Position, e.Radius, tol) {
				continue
			}
			c.hits = append(c.hits, c.strike(w, e, p))
			if e.IsDestroyed() {
				break
			}
		}
	}

	return Outcome{Hits: c.hits}
}

// strike applies one projectile hit: a particle burst sized by the enemy's
// current radius, then damage and score.
func (c *CollisionSystem) strike(w *WorldState, e *object.Enemy, p *object.Projectile) Hit {
	count := int(2 * e.Radius)
	object.SpawnBurst(p.Position, count, e.Color, c.burst, c.rng, w)

	p.MarkDestroyed()
	if e.Damage(c.tuning.Damage, c.tuning.ShrinkFloor) {
		w.Score += c.tuning.DestroyScore
		return Hit{Destroyed: true, Points: c.tuning.DestroyScore}
	}
	w.Score += c.tuning.ShrinkScore
	return Hit{Points: c.tuning.ShrinkScore}
}
