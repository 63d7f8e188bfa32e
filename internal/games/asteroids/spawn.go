package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/astroidz/internal/core"
)

// SpawnPoint returns where the ship appears: the centre of the world.
func (s *Simulation) SpawnPoint() core.Vec2 {
	return core.V(s.cfg.World.Width/2, s.cfg.World.Height/2)
}

// newShip returns a ship at rest on the spawn point.
func (s *Simulation) newShip() Ship {
	return Ship{
		Pos:    s.SpawnPoint(),
		Radius: s.cfg.Ship.Radius,
	}
}

// respawn moves a hit ship back to the spawn point, keeping its fire clock.
func (s *Simulation) respawn(ship Ship) Ship {
	ship.Pos = s.SpawnPoint()
	ship.Vel = core.Vec2{}
	ship.Heading = 0
	ship.Thrust = false
	ship.Grace = s.cfg.Ship.RespawnGraceTicks
	return ship
}

// spread returns a random vector with each axis in [-span/2, span/2).
func (s *Simulation) spread(span float64) core.Vec2 {
	return core.V((s.rng.Float64()-0.5)*span, (s.rng.Float64()-0.5)*span)
}

// newAsteroid creates a randomly oriented, drifting, spinning asteroid.
func (s *Simulation) newAsteroid(pos core.Vec2, size int) Asteroid {
	mustSize(size)
	cfg := s.cfg.Asteroids

	shape := make([]float64, cfg.ShapeVertices)
	for i := range shape {
		shape[i] = cfg.ShapeMin + s.rng.Float64()*(cfg.ShapeMax-cfg.ShapeMin)
	}

	return Asteroid{
		Pos:   pos,
		Vel:   s.spread(cfg.Speed),
		Size:  size,
		Angle: s.rng.Float64() * 2 * math.Pi,
		Spin:  (s.rng.Float64() - 0.5) * cfg.Spin,
		Shape: shape,
	}
}

// fragment creates one split product of a destroyed asteroid: one tier
// smaller, at the parent's position, drifting with the parent plus a kick.
func (s *Simulation) fragment(parent Asteroid) Asteroid {
	a := s.newAsteroid(parent.Pos, parent.Size-1)
	a.Vel = parent.Vel.Add(s.spread(s.cfg.Asteroids.SplitPerturb))
	return a
}

// InitializeLevel replaces the field with BaseCount+level large asteroids,
// none of them within the safe radius of the spawn point.
func (s *Simulation) InitializeLevel(level int) {
	if level < 1 {
		panic(fmt.Sprintf("asteroids: invalid level %d", level))
	}

	cfg := s.cfg.Asteroids
	spawn := s.SpawnPoint()
	scale := s.difficulty.SpeedScale(level)

	s.store.Asteroids = s.store.Asteroids[:0]
	for range cfg.BaseCount + level {
		var pos core.Vec2
		for {
			pos = core.V(s.rng.Float64()*s.cfg.World.Width, s.rng.Float64()*s.cfg.World.Height)
			if pos.Dist(spawn) >= cfg.SafeRadius {
				break
			}
		}
		a := s.newAsteroid(pos, SizeLarge)
		a.Vel = a.Vel.Scale(scale)
		s.store.Asteroids = append(s.store.Asteroids, a)
	}
}

// burst emits count particles at pos.
func (s *Simulation) burst(pos core.Vec2, count int, color core.Color) {
	life := s.cfg.Particles.Life
	for range count {
		s.store.Particles = append(s.store.Particles, Particle{
			Pos:     pos,
			Vel:     s.spread(s.cfg.Particles.Speed),
			Life:    life,
			MaxLife: life,
			Color:   color,
		})
	}
}

// scheduleLevel queues InitializeLevel for the current level after delay
// ticks.
func (s *Simulation) scheduleLevel(delay int) {
	s.levelPending = true
	s.levelIn = delay
}

// progressLevel counts down a queued level and detects a cleared field.
// before is the asteroid count at the start of this tick's collisions.
func (s *Simulation) progressLevel(before int) {
	if s.levelPending {
		if s.levelIn > 0 {
			s.levelIn--
		}
		if s.levelIn == 0 {
			s.levelPending = false
			s.InitializeLevel(s.state.Level())
		}
		return
	}

	if before > 0 && len(s.store.Asteroids) == 0 {
		s.state.NextLevel()
		s.scheduleLevel(s.cfg.Gameplay.LevelDelayTicks)
	}
}
