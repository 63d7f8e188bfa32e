package asteroids

import (
	"testing"

	"github.com/vovakirdan/astroidz/internal/core"
)

func TestBulletHitSplitsMediumAsteroid(t *testing.T) {
	s := playingSim(t)
	s.store.Bullets = []Bullet{{Pos: core.V(100, 100), TTL: 60}}
	s.store.Asteroids = []Asteroid{rock(core.V(102, 100), SizeMedium)}

	s.resolveCollisions()

	if got := s.state.Score(); got != 100 {
		t.Errorf("Score = %d, expected (4-2)*50 = 100", got)
	}
	if len(s.store.Bullets) != 0 {
		t.Errorf("bullet should be consumed, %d left", len(s.store.Bullets))
	}
	if len(s.store.Asteroids) != 2 {
		t.Fatalf("asteroids = %d, expected 2 fragments", len(s.store.Asteroids))
	}
	for i, a := range s.store.Asteroids {
		if a.Size != SizeSmall {
			t.Errorf("fragment %d size = %d, expected 1", i, a.Size)
		}
		if a.Pos != core.V(102, 100) {
			t.Errorf("fragment %d at %+v, expected (102, 100)", i, a.Pos)
		}
	}
	if len(s.store.Particles) != 8 {
		t.Errorf("particles = %d, expected 8", len(s.store.Particles))
	}
	for _, p := range s.store.Particles {
		if p.Color != core.ColorYellow {
			t.Errorf("hit particle color = %v, expected yellow", p.Color)
			break
		}
	}
}

func TestFragmentsInheritParentVelocity(t *testing.T) {
	s := playingSim(t)
	parent := rock(core.V(50, 50), SizeLarge)
	parent.Vel = core.V(10, -10)
	s.store.Bullets = []Bullet{{Pos: parent.Pos, TTL: 60}}
	s.store.Asteroids = []Asteroid{parent}

	s.resolveCollisions()

	for i, a := range s.store.Asteroids {
		d := a.Vel.Sub(parent.Vel)
		if d.X < -1 || d.X >= 1 || d.Y < -1 || d.Y >= 1 {
			t.Errorf("fragment %d velocity %+v strays more than the perturbation from the parent", i, a.Vel)
		}
		if len(a.Shape) != 8 {
			t.Errorf("fragment %d shape has %d vertices", i, len(a.Shape))
		}
	}
}

func TestSplitChainYieldsSixDescendants(t *testing.T) {
	s := playingSim(t)
	s.store.Asteroids = []Asteroid{rock(core.V(50, 50), SizeLarge)}

	created := 0
	destroyed := map[int]int{}
	for len(s.store.Asteroids) > 0 {
		target := s.store.Asteroids[0]
		before := len(s.store.Asteroids)
		s.store.Bullets = []Bullet{{Pos: target.Pos, TTL: 60}}

		s.resolveCollisions()

		destroyed[target.Size]++
		created += len(s.store.Asteroids) - (before - 1)
		if created > 6 {
			t.Fatalf("more than 6 descendants created")
		}
	}

	if created != 6 {
		t.Errorf("descendants = %d, expected 6", created)
	}
	want := map[int]int{SizeLarge: 1, SizeMedium: 2, SizeSmall: 4}
	for size, n := range want {
		if destroyed[size] != n {
			t.Errorf("destroyed %d asteroids of size %d, expected %d", destroyed[size], size, n)
		}
	}
	if got := s.state.Score(); got != 50+2*100+4*150 {
		t.Errorf("Score = %d, expected 850", got)
	}
}

func TestPointsPerSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{SizeLarge, 50},
		{SizeMedium, 100},
		{SizeSmall, 150},
	}

	for _, tt := range tests {
		s := playingSim(t)
		s.store.Bullets = []Bullet{{Pos: core.V(40, 40), TTL: 60}}
		s.store.Asteroids = []Asteroid{rock(core.V(40, 40), tt.size)}

		s.resolveCollisions()

		if got := s.state.Score(); got != tt.want {
			t.Errorf("size %d: Score = %d, expected %d", tt.size, got, tt.want)
		}
	}
}

func TestBulletDestroysAtMostOneAsteroid(t *testing.T) {
	s := playingSim(t)
	s.store.Bullets = []Bullet{{Pos: core.V(40, 40), TTL: 60}}
	s.store.Asteroids = []Asteroid{
		rock(core.V(41, 40), SizeSmall),
		rock(core.V(39, 40), SizeSmall),
	}

	s.resolveCollisions()

	if len(s.store.Asteroids) != 1 {
		t.Fatalf("asteroids = %d, expected 1", len(s.store.Asteroids))
	}
	if s.store.Asteroids[0].Pos != core.V(39, 40) {
		t.Errorf("the first asteroid in order should be the one destroyed")
	}
	if s.state.Score() != 150 {
		t.Errorf("Score = %d, expected 150", s.state.Score())
	}
}

func TestAsteroidDestroyedOnlyOnce(t *testing.T) {
	s := playingSim(t)
	s.store.Bullets = []Bullet{
		{Pos: core.V(40, 40), TTL: 60},
		{Pos: core.V(41, 40), TTL: 60},
	}
	s.store.Asteroids = []Asteroid{rock(core.V(40, 40), SizeSmall)}

	s.resolveCollisions()

	if len(s.store.Bullets) != 1 {
		t.Errorf("bullets = %d, expected the second bullet to survive", len(s.store.Bullets))
	}
	if s.state.Score() != 150 {
		t.Errorf("Score = %d, expected a single award", s.state.Score())
	}
}

func TestShipHitRespawns(t *testing.T) {
	s := playingSim(t)
	s.store.Ship.Pos = core.V(100, 100)
	s.store.Ship.Vel = core.V(3, 3)
	s.store.Ship.Heading = 1.2
	s.store.Asteroids = []Asteroid{rock(core.V(110, 100), SizeLarge)}

	s.resolveCollisions()

	if s.state.Lives() != 2 {
		t.Errorf("Lives = %d, expected 2", s.state.Lives())
	}
	ship := s.store.Ship
	if ship.Pos != s.SpawnPoint() || ship.Vel != (core.Vec2{}) || ship.Heading != 0 {
		t.Errorf("ship not reset: %+v", ship)
	}
	if len(s.store.Asteroids) != 1 {
		t.Error("ship impact must not destroy the asteroid")
	}
	if len(s.store.Particles) != 15 {
		t.Errorf("particles = %d, expected 15", len(s.store.Particles))
	}
	if s.store.Particles[0].Pos != core.V(100, 100) || s.store.Particles[0].Color != core.ColorRed {
		t.Errorf("ship particles should be red at the impact point, got %+v", s.store.Particles[0])
	}
}

func TestShipMissNearEdgeOfRadius(t *testing.T) {
	s := playingSim(t)
	// Ship radius 8 + size 1 * 6 = 14.
	s.store.Asteroids = []Asteroid{rock(s.SpawnPoint().Add(core.V(14, 0)), SizeSmall)}

	s.resolveCollisions()

	if s.state.Lives() != 3 {
		t.Errorf("touching circles should not collide, Lives = %d", s.state.Lives())
	}
}

func TestSeveralLivesLostInOneTick(t *testing.T) {
	s := playingSim(t)
	center := s.SpawnPoint()
	s.store.Ship.Pos = core.V(100, 100)
	s.store.Asteroids = []Asteroid{
		rock(core.V(100, 100), SizeLarge),
		rock(center, SizeLarge),
	}

	s.resolveCollisions()

	if s.state.Lives() != 1 {
		t.Errorf("Lives = %d, expected 1 after hits before and after respawn", s.state.Lives())
	}
}

func TestShipHitsStopAtGameOver(t *testing.T) {
	s := playingSim(t)
	center := s.SpawnPoint()
	for range 5 {
		s.store.Asteroids = append(s.store.Asteroids, rock(center, SizeLarge))
	}

	s.resolveCollisions()

	if s.state.Lives() != 0 {
		t.Errorf("Lives = %d, expected 0", s.state.Lives())
	}
	if s.state.Phase() != core.PhaseGameOver {
		t.Errorf("Phase = %v, expected gameover", s.state.Phase())
	}
	if got := len(s.store.Particles); got != 3*15 {
		t.Errorf("particles = %d, expected bursts for exactly 3 hits", got)
	}
}

func TestRespawnGracePreventsChainedHits(t *testing.T) {
	s := playingSim(t)
	s.cfg.Ship.RespawnGraceTicks = 120
	center := s.SpawnPoint()
	s.store.Asteroids = []Asteroid{rock(center, SizeLarge), rock(center, SizeLarge)}

	s.resolveCollisions()

	if s.state.Lives() != 2 {
		t.Errorf("Lives = %d, expected 2", s.state.Lives())
	}
	if s.store.Ship.Grace != 120 {
		t.Errorf("Grace = %d, expected 120", s.store.Ship.Grace)
	}

	s.resolveCollisions()
	if s.state.Lives() != 2 {
		t.Errorf("ship should be invulnerable during grace, Lives = %d", s.state.Lives())
	}
}

func TestBulletAndShipHitSameAsteroid(t *testing.T) {
	s := playingSim(t)
	center := s.SpawnPoint()
	s.store.Bullets = []Bullet{{Pos: center, TTL: 60}}
	s.store.Asteroids = []Asteroid{rock(center, SizeSmall)}

	s.resolveCollisions()

	if len(s.store.Asteroids) != 0 {
		t.Error("asteroid should be destroyed by the bullet")
	}
	if s.state.Score() != 150 {
		t.Errorf("Score = %d, expected 150", s.state.Score())
	}
	if s.state.Lives() != 2 {
		t.Errorf("Lives = %d, expected the destroyed asteroid to still hit the ship", s.state.Lives())
	}
}
