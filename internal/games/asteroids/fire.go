package asteroids

import (
	"time"

	"github.com/vovakirdan/astroidz/internal/core"
)

// Now returns the simulation clock: elapsed ticks at the configured rate.
func (s *Simulation) Now() time.Duration {
	return time.Duration(s.tick) * time.Second / time.Duration(s.tickRate)
}

// cooldown returns the minimum time between two shots.
func (s *Simulation) cooldown() time.Duration {
	return time.Duration(s.cfg.Bullets.CooldownMS) * time.Millisecond
}

// fire spawns a bullet from the ship's nose when the fire control is held
// and the cooldown has passed. Requests inside the cooldown are dropped.
func (s *Simulation) fire(in core.InputFrame) bool {
	if !in.Has(core.ActionFire) {
		return false
	}

	ship := &s.store.Ship
	now := s.Now()
	if ship.HasShot && now-ship.LastShot < s.cooldown() {
		return false
	}

	dir := core.FromAngle(ship.Heading)
	s.store.Bullets = append(s.store.Bullets, Bullet{
		Pos: ship.Nose(),
		Vel: dir.Scale(s.cfg.Bullets.Speed).Add(ship.Vel),
		TTL: s.cfg.Bullets.TTL,
	})
	ship.LastShot = now
	ship.HasShot = true
	return true
}
