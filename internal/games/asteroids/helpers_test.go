package asteroids

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
)

func newTestSim(t *testing.T, seed int64) *Simulation {
	t.Helper()
	return NewSimulation(config.DefaultAsteroidsConfig(), 60, rand.New(rand.NewSource(seed)))
}

// playingSim returns a simulation in Playing with an empty field and no
// level queued.
func playingSim(t *testing.T) *Simulation {
	t.Helper()
	s := newTestSim(t, 1)
	if !s.Start() {
		t.Fatal("Start from Idle should succeed")
	}
	s.levelPending = false
	return s
}

// rock returns a motionless asteroid with a regular shape.
func rock(pos core.Vec2, size int) Asteroid {
	return Asteroid{Pos: pos, Size: size, Shape: []float64{1, 1, 1, 1, 1, 1, 1, 1}}
}

func inBounds(p core.Vec2, w, h float64) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
