package loop

import (
	"github.com/tomz197/circle-shooter/internal/object"
)

// Tick advances the session by one frame and returns the snapshot to render.
// A session that is not running returns its last snapshot unchanged.
//
// Order within a tick: queued shots become projectiles, the spawn controller
// runs, every entity advances, projectiles that left the playfield and faded
// particles are dropped, collisions are resolved, destroyed entities are
// compacted, and finally the snapshot is built.
func (s *Session) Tick() *Snapshot {
	if !s.running {
		return s.snapshot
	}
	s.ticks++

	now := s.clock()
	elapsed := now.Sub(s.lastTick)
	s.lastTick = now

	s.applyFires()

	s.world.Enemies = append(s.world.Enemies, s.spawner.Tick(elapsed)...)

	advanceAll(s.world.Projectiles)
	advanceAll(s.world.Enemies)
	advanceAll(s.world.Particles)

	s.world.pruneProjectiles()
	s.world.pruneParticles()

	before := s.world.Score
	outcome := s.collisions.Resolve(&s.world)

	s.world.Enemies = compact(s.world.Enemies)
	s.world.Projectiles = compact(s.world.Projectiles)
	s.world.FlushSpawned()

	for _, hit := range outcome.Hits {
		s.listener.EnemyHit(hit.Destroyed)
	}
	if s.world.Score != before {
		s.listener.ScoreChanged(s.world.Score)
	}

	if outcome.Lost {
		s.End() // builds the final snapshot
		return s.snapshot
	}

	s.snapshot = s.buildSnapshot()
	return s.snapshot
}

// applyFires turns queued fire targets into projectiles leaving the center.
func (s *Session) applyFires() {
	if len(s.fires) == 0 {
		return
	}
	origin := s.world.Screen.Center()
	for _, target := range s.fires {
		p := object.NewProjectile(origin, target, s.tuning.ProjectileRadius, s.tuning.ProjectileSpeed)
		s.world.Projectiles = append(s.world.Projectiles, p)
	}
	s.fires = s.fires[:0]
}

func advanceAll[T object.Mover](items []T) {
	for _, it := range items {
		it.Advance()
	}
}
