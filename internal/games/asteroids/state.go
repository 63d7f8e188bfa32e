package asteroids

import (
	"fmt"

	"github.com/vovakirdan/astroidz/internal/core"
)

// StateMachine owns score, lives, level and the game phase.
//
//	Idle --Start--> Playing <--TogglePause--> Paused
//	Playing --lives reach 0--> GameOver --Start--> Playing
//	any --Reset--> Idle
type StateMachine struct {
	phase      core.Phase
	score      int
	lives      int
	level      int
	startLives int
}

// NewStateMachine creates an idle state machine.
func NewStateMachine(startLives int) StateMachine {
	m := StateMachine{startLives: startLives}
	m.Reset()
	return m
}

func (m *StateMachine) Phase() core.Phase { return m.phase }
func (m *StateMachine) Score() int        { return m.score }
func (m *StateMachine) Lives() int        { return m.lives }
func (m *StateMachine) Level() int        { return m.level }

// Playing reports whether the simulation should advance.
func (m *StateMachine) Playing() bool { return m.phase == core.PhasePlaying }

// Start begins a new game from Idle or GameOver. It is a no-op while a game
// is running or paused.
func (m *StateMachine) Start() bool {
	if m.phase != core.PhaseIdle && m.phase != core.PhaseGameOver {
		return false
	}
	m.phase = core.PhasePlaying
	m.score = 0
	m.lives = m.startLives
	m.level = 1
	return true
}

// Reset returns to Idle from any phase.
func (m *StateMachine) Reset() {
	m.phase = core.PhaseIdle
	m.score = 0
	m.lives = m.startLives
	m.level = 1
}

// TogglePause switches between Playing and Paused.
func (m *StateMachine) TogglePause() bool {
	switch m.phase {
	case core.PhasePlaying:
		m.phase = core.PhasePaused
	case core.PhasePaused:
		m.phase = core.PhasePlaying
	default:
		return false
	}
	return true
}

// LoseLife takes one life and reports whether the game just ended.
func (m *StateMachine) LoseLife() bool {
	if m.phase != core.PhasePlaying {
		return false
	}
	m.lives--
	if m.lives <= 0 {
		m.lives = 0
		m.phase = core.PhaseGameOver
		return true
	}
	return false
}

// AddScore awards points while playing.
func (m *StateMachine) AddScore(points int) {
	if points < 0 {
		panic(fmt.Sprintf("asteroids: negative score award %d", points))
	}
	if m.phase != core.PhasePlaying {
		return
	}
	m.score += points
}

// NextLevel advances the level counter while playing.
func (m *StateMachine) NextLevel() int {
	if m.phase == core.PhasePlaying {
		m.level++
	}
	return m.level
}
