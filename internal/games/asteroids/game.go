package asteroids

import (
	"math/rand"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
)

// Game adapts a Simulation to the platform's game loop: the platform owns
// timing, key capture and the terminal; the game owns the rules.
type Game struct {
	cfg    config.AsteroidsConfig
	status string

	sim  *Simulation
	last Snapshot
}

// New creates a game that uses cfg for every round.
func New(cfg config.AsteroidsConfig) *Game {
	return &Game{cfg: cfg, status: DefaultServerStatus}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "asteroids"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Astroidz"
}

// SetServerStatus changes the HUD connectivity label, now and after resets.
func (g *Game) SetServerStatus(status string) {
	g.status = status
	if g.sim != nil {
		g.sim.SetServerStatus(status)
		g.last.State.ServerStatus = status
	}
}

// Reset builds a fresh, idle simulation seeded from the runtime config.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.sim = NewSimulation(g.cfg, runtime.TickRate, rand.New(rand.NewSource(runtime.Seed)))
	g.sim.SetServerStatus(g.status)
	g.last = g.sim.Snapshot()
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.last = g.sim.Tick(in)
	return core.StepResult{State: g.last.State}
}

// Tick advances the simulation by one tick and returns the published frame.
func (g *Game) Tick(in core.InputFrame) Snapshot {
	g.Step(in)
	return g.last
}

// Render draws the latest snapshot.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.last)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.last.State
}

// Snapshot returns the latest published frame.
func (g *Game) Snapshot() Snapshot {
	return g.last
}
