package asteroids

import (
	"github.com/vovakirdan/astroidz/internal/core"
)

// applyShipControl turns and accelerates the ship from held controls.
// Friction applies every tick, thrusting or not.
func (s *Simulation) applyShipControl(in core.InputFrame) {
	ship := &s.store.Ship
	cfg := s.cfg.Ship

	if in.Has(core.ActionRotateLeft) {
		ship.Heading -= cfg.RotateSpeed
	}
	if in.Has(core.ActionRotateRight) {
		ship.Heading += cfg.RotateSpeed
	}

	ship.Thrust = in.Has(core.ActionThrust)
	if ship.Thrust {
		ship.Vel = ship.Vel.Add(core.FromAngle(ship.Heading).Scale(cfg.ThrustPower))
	}
	ship.Vel = ship.Vel.Scale(cfg.Friction)
}

// integrate moves every entity by its velocity and wraps it onto the torus.
func (s *Simulation) integrate() {
	w, h := s.cfg.World.Width, s.cfg.World.Height

	ship := &s.store.Ship
	ship.Pos = ship.Pos.Add(ship.Vel).Wrap(w, h)

	for i := range s.store.Bullets {
		b := &s.store.Bullets[i]
		b.Pos = b.Pos.Add(b.Vel).Wrap(w, h)
	}
	for i := range s.store.Asteroids {
		a := &s.store.Asteroids[i]
		a.Pos = a.Pos.Add(a.Vel).Wrap(w, h)
		a.Angle += a.Spin
	}
	for i := range s.store.Particles {
		p := &s.store.Particles[i]
		p.Pos = p.Pos.Add(p.Vel).Wrap(w, h)
	}
}

// age counts down bullet and particle lifetimes and the respawn grace,
// dropping anything that reached zero.
func (s *Simulation) age() {
	bullets := s.store.Bullets[:0]
	for _, b := range s.store.Bullets {
		b.TTL--
		if b.TTL > 0 {
			bullets = append(bullets, b)
		}
	}
	s.store.Bullets = bullets

	particles := s.store.Particles[:0]
	for _, p := range s.store.Particles {
		p.Life--
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	s.store.Particles = particles

	if s.store.Ship.Grace > 0 {
		s.store.Ship.Grace--
	}
}
