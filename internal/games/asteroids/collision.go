package asteroids

import (
	"github.com/vovakirdan/astroidz/internal/core"
)

// burst is a pending particle explosion.
type burst struct {
	pos   core.Vec2
	count int
	color core.Color
}

// collisionResult collects the effects of one tick's collisions. It is
// filled by a read-only scan and committed afterwards, so no collection is
// mutated while it is being iterated.
type collisionResult struct {
	consumed  []bool // per bullet
	destroyed []bool // per asteroid
	fragments []Asteroid
	bursts    []burst
	points    int
	shipHits  int
	ship      Ship
}

// Points awarded for destroying an asteroid of the given size.
func (s *Simulation) pointsFor(size int) int {
	return (4 - size) * s.cfg.Scoring.PointsPerTier
}

func (s *Simulation) bulletCollides(b Bullet, a Asteroid) bool {
	return core.CirclesOverlap(b.Pos, 0, a.Pos, float64(a.Size)*s.cfg.Asteroids.HitScale)
}

func (s *Simulation) shipCollides(ship Ship, a Asteroid) bool {
	return core.CirclesOverlap(ship.Pos, ship.Radius, a.Pos, float64(a.Size)*s.cfg.Asteroids.ShipHitScale)
}

// scanCollisions finds every bullet and ship impact without touching the
// entity store.
func (s *Simulation) scanCollisions() collisionResult {
	bullets := s.store.Bullets
	rocks := s.store.Asteroids

	r := collisionResult{
		consumed:  make([]bool, len(bullets)),
		destroyed: make([]bool, len(rocks)),
		ship:      s.store.Ship,
	}

	// Each bullet takes the first live asteroid it overlaps, in
	// collection order.
	for i, b := range bullets {
		for j, a := range rocks {
			if r.destroyed[j] || !s.bulletCollides(b, a) {
				continue
			}
			r.consumed[i] = true
			r.destroyed[j] = true
			r.points += s.pointsFor(a.Size)
			if a.Size > SizeSmall {
				r.fragments = append(r.fragments, s.fragment(a), s.fragment(a))
			}
			r.bursts = append(r.bursts, burst{pos: a.Pos, count: s.cfg.Particles.HitCount, color: core.ColorYellow})
			break
		}
	}

	// The ship scans the field as it stood before this tick's removals.
	// After a respawn it keeps scanning from the centre, so one tick can
	// cost several lives unless a grace period is configured.
	lives := s.state.Lives()
	for _, a := range rocks {
		if r.ship.Grace > 0 || lives == 0 {
			break
		}
		if !s.shipCollides(r.ship, a) {
			continue
		}
		r.shipHits++
		lives--
		r.bursts = append(r.bursts, burst{pos: r.ship.Pos, count: s.cfg.Particles.ShipCount, color: core.ColorRed})
		if lives > 0 {
			r.ship = s.respawn(r.ship)
		}
	}

	return r
}

// applyCollisions commits a scan: removals first, then spawns, score and
// life loss.
func (s *Simulation) applyCollisions(r collisionResult) {
	bullets := s.store.Bullets[:0]
	for i, b := range s.store.Bullets {
		if !r.consumed[i] {
			bullets = append(bullets, b)
		}
	}
	s.store.Bullets = bullets

	rocks := s.store.Asteroids[:0]
	for j, a := range s.store.Asteroids {
		if !r.destroyed[j] {
			rocks = append(rocks, a)
		}
	}
	s.store.Asteroids = append(rocks, r.fragments...)

	for _, b := range r.bursts {
		s.burst(b.pos, b.count, b.color)
	}

	s.state.AddScore(r.points)
	for range r.shipHits {
		if s.state.LoseLife() {
			break
		}
	}
	s.store.Ship = r.ship
}

// resolveCollisions runs one two-phase collision pass.
func (s *Simulation) resolveCollisions() {
	s.applyCollisions(s.scanCollisions())
}
