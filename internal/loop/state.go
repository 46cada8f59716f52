// Package loop runs the per-tick simulation: spawning, movement, collisions,
// scoring and the session lifecycle around them.
package loop

import (
	"github.com/tomz197/circle-shooter/internal/object"
)

// WorldState holds the mutable entities of one session.
type WorldState struct {
	Screen      object.Screen
	Player      *object.Player
	Enemies     []*object.Enemy
	Projectiles []*object.Projectile
	Particles   []*object.Particle
	Score       int

	toSpawn []*object.Particle // Particles to add after collision resolution
}

// SpawnParticle queues a particle to be added after the current resolution pass.
// Implements object.Spawner.
func (w *WorldState) SpawnParticle(p *object.Particle) {
	w.toSpawn = append(w.toSpawn, p)
}

// FlushSpawned adds all queued particles and clears the queue.
func (w *WorldState) FlushSpawned() {
	w.Particles = append(w.Particles, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Reset clears every collection and places a fresh player at the center.
func (w *WorldState) Reset(playerRadius float64) {
	for _, p := range w.Particles {
		p.Release()
	}
	for _, p := range w.toSpawn {
		p.Release()
	}
	clear(w.Enemies)
	clear(w.Projectiles)
	clear(w.Particles)
	clear(w.toSpawn)
	w.Player = object.NewPlayer(w.Screen.Center(), playerRadius)
	w.Enemies = w.Enemies[:0]
	w.Projectiles = w.Projectiles[:0]
	w.Particles = w.Particles[:0]
	w.toSpawn = w.toSpawn[:0]
	w.Score = 0
}

// compact drops destroyed entries in place, keeping order. Entries past the
// new length are cleared so the backing array does not pin dead objects.
func compact[T object.Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// pruneProjectiles drops projectiles that left the playfield.
func (w *WorldState) pruneProjectiles() {
	for _, p := range w.Projectiles {
		if w.Screen.Outside(p.Position, p.Radius) {
			p.MarkDestroyed()
		}
	}
	w.Projectiles = compact(w.Projectiles)
}

// pruneParticles drops faded particles and returns them to the pool.
func (w *WorldState) pruneParticles() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		if p.Expired() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Particles[len(kept):])
	w.Particles = kept
}

// shapes returns the render order: player, projectiles, particles, enemies.
func (w *WorldState) shapes() []object.Shape {
	shapes := make([]object.Shape, 0, 1+len(w.Projectiles)+len(w.Particles)+len(w.Enemies))
	if w.Player != nil {
		shapes = append(shapes, w.Player.RenderSnapshot())
	}
	for _, p := range w.Projectiles {
		shapes = append(shapes, p.RenderSnapshot())
	}
	for _, p := range w.Particles {
		shapes = append(shapes, p.RenderSnapshot())
	}
	for _, e := range w.Enemies {
		shapes = append(shapes, e.RenderSnapshot())
	}
	return shapes
}
