// Package spawn introduces enemies at the playfield edges on a schedule set
// by a Policy.
package spawn

import (
	"math"
	"time"

	"github.com/tomz197/circle-shooter/internal/object"
	"github.com/tomz197/circle-shooter/internal/physics"
)

// Placement controls the size and speed of spawned enemies.
type Placement struct {
	MinRadius float64
	MaxRadius float64
	Speed     float64 // Units per tick toward the playfield center
}

// Controller keeps the enemy stream flowing for one session.
type Controller struct {
	policy    Policy
	placement Placement
	screen    object.Screen
	rng       object.Rand
}

// NewController creates a controller for the given playfield.
func NewController(policy Policy, placement Placement, screen object.Screen, rng object.Rand) *Controller {
	return &Controller{
		policy:    policy,
		placement: placement,
		screen:    screen,
		rng:       rng,
	}
}

// Tick advances the spawn timer by one frame and returns the enemies that are
// due, usually none or one.
func (c *Controller) Tick(elapsed time.Duration) []*object.Enemy {
	n := c.policy.Due(elapsed)
	if n == 0 {
		return nil
	}
	enemies := make([]*object.Enemy, 0, n)
	for i := 0; i < n; i++ {
		enemies = append(enemies, c.Spawn())
	}
	return enemies
}

// Spawn creates one enemy just outside a random edge, aimed at the playfield
// center. Half of the time the enemy enters through the left or right edge,
// otherwise through the top or bottom.
func (c *Controller) Spawn() *object.Enemy {
	p := c.placement
	radius := c.rng.Float64()*(p.MaxRadius-p.MinRadius) + p.MinRadius
	w := c.screen.Width
	h := c.screen.Height

	var x, y float64
	if c.rng.Float64() < 0.5 {
		x = w + radius
		if c.rng.Float64() < 0.5 {
			x = -radius
		}
		y = c.rng.Float64() * h
	} else {
		x = c.rng.Float64() * w
		y = h + radius
		if c.rng.Float64() < 0.5 {
			y = -radius
		}
	}

	hue := math.Floor(c.rng.Float64() * 360)
	return object.NewEnemy(physics.Vec(x, y), c.screen.Center(), radius, p.Speed, object.HSL(hue))
}

// DifficultyLevel returns the policy's current difficulty.
func (c *Controller) DifficultyLevel() int {
	return c.policy.Level()
}

// Reset restarts the schedule for a new session.
func (c *Controller) Reset() {
	c.policy.Reset()
}
