package asteroids

import (
	"fmt"
	"time"

	"github.com/vovakirdan/astroidz/internal/core"
)

// Asteroid size tiers.
const (
	SizeSmall  = 1
	SizeMedium = 2
	SizeLarge  = 3
)

// Ship is the player's ship. There is exactly one; it is repositioned on
// impact, never destroyed.
type Ship struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Heading float64 // Radians, 0 points along +X
	Thrust  bool
	Radius  float64

	LastShot time.Duration // Simulation clock time of the last shot
	HasShot  bool
	Grace    int // Remaining invulnerable ticks after a respawn
}

// Nose returns the point bullets leave the ship from.
func (s Ship) Nose() core.Vec2 {
	return s.Pos.Add(core.FromAngle(s.Heading).Scale(s.Radius))
}

// Bullet is a projectile fired by the ship.
type Bullet struct {
	Pos core.Vec2
	Vel core.Vec2
	TTL int // Remaining ticks
}

// Asteroid is a drifting rock. Collision treats it as a circle; Shape only
// jags the outline for drawing.
type Asteroid struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Size  int
	Angle float64
	Spin  float64 // Radians per tick
	Shape []float64
}

// Particle is a cosmetic explosion fragment.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    int
	MaxLife int
	Color   core.Color
}

// EntityStore owns every live entity of one simulation.
type EntityStore struct {
	Ship      Ship
	Bullets   []Bullet
	Asteroids []Asteroid
	Particles []Particle
}

// Clear drops every bullet, asteroid and particle. The ship stays.
func (es *EntityStore) Clear() {
	es.Bullets = es.Bullets[:0]
	es.Asteroids = es.Asteroids[:0]
	es.Particles = es.Particles[:0]
}

// mustSize panics on a size tier outside {1, 2, 3}.
func mustSize(size int) {
	if size < SizeSmall || size > SizeLarge {
		panic(fmt.Sprintf("asteroids: invalid size tier %d", size))
	}
}
