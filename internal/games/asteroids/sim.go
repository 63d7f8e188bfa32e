// Package asteroids implements the asteroid-field combat simulation: a ship,
// its bullets, fragmenting asteroids and particle bursts on a wrapping
// world, driven one fixed tick at a time.
package asteroids

import (
	"math/rand"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
)

// DefaultServerStatus is the cosmetic connectivity label shown in the HUD.
const DefaultServerStatus = "ONLINE"

// Simulation is one independent game instance. It is not safe for
// concurrent use; publish Snapshots to other goroutines instead.
type Simulation struct {
	cfg        config.AsteroidsConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tickRate   int

	store EntityStore
	state StateMachine

	tick         uint64
	levelPending bool
	levelIn      int

	// Previous tick's pause and restart controls, for edge detection.
	prevPause   bool
	prevRestart bool
	prevReset   bool

	serverStatus string
}

// NewSimulation creates an idle simulation. rng supplies every random
// decision, so equal seeds and inputs produce equal games.
func NewSimulation(cfg config.AsteroidsConfig, tickRate int, rng *rand.Rand) *Simulation {
	if rng == nil {
		panic("asteroids: nil random source")
	}
	if tickRate <= 0 {
		tickRate = 60
	}

	s := &Simulation{
		cfg:          cfg,
		difficulty:   config.NewDifficultyManager(cfg.Difficulty),
		rng:          rng,
		tickRate:     tickRate,
		state:        NewStateMachine(cfg.Gameplay.StartLives),
		serverStatus: DefaultServerStatus,
	}
	s.store.Ship = s.newShip()
	return s
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.AsteroidsConfig { return s.cfg }

// State returns the state machine (read-only use).
func (s *Simulation) State() StateMachine { return s.state }

// SetServerStatus changes the cosmetic connectivity label.
func (s *Simulation) SetServerStatus(status string) { s.serverStatus = status }

// Start begins a new game: fresh counters, an empty field, the ship at the
// spawn point, and the first level queued shortly after.
func (s *Simulation) Start() bool {
	if !s.state.Start() {
		return false
	}
	s.store.Clear()
	s.store.Ship = s.newShip()
	s.scheduleLevel(s.cfg.Gameplay.StartDelayTicks)
	return true
}

// Reset returns to Idle regardless of the current phase.
func (s *Simulation) Reset() {
	s.state.Reset()
	s.store.Clear()
	s.store.Ship = s.newShip()
	s.levelPending = false
	s.levelIn = 0
}

// handleControls applies reset, restart and pause on the rising edge of
// their controls, so holding a key does not toggle every tick.
func (s *Simulation) handleControls(in core.InputFrame) {
	pause := in.Has(core.ActionPause)
	restart := in.Has(core.ActionRestart)
	reset := in.Has(core.ActionReset)

	if reset && !s.prevReset {
		s.Reset()
	}
	if restart && !s.prevRestart {
		s.Start()
	}
	if pause && !s.prevPause {
		s.state.TogglePause()
	}

	s.prevPause = pause
	s.prevRestart = restart
	s.prevReset = reset
}

// Tick advances the simulation by one step and returns the resulting frame.
//
// Order: controls, ship control and fire, integration, collisions, level
// progression, aging. Nothing but the control edges runs outside Playing.
func (s *Simulation) Tick(in core.InputFrame) Snapshot {
	s.tick++
	s.handleControls(in)

	if !s.state.Playing() {
		return s.Snapshot()
	}

	s.applyShipControl(in)
	s.fire(in)
	s.integrate()

	before := len(s.store.Asteroids)
	s.resolveCollisions()
	if !s.state.Playing() {
		return s.Snapshot()
	}

	s.progressLevel(before)
	s.age()

	return s.Snapshot()
}
