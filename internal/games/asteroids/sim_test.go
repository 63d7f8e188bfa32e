package asteroids

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/astroidz/internal/core"
)

func TestIdleSimulationDoesNothing(t *testing.T) {
	s := newTestSim(t, 1)
	for range 10 {
		snap := s.Tick(core.InputOf(core.ActionFire, core.ActionThrust))
		if snap.State.Phase != core.PhaseIdle {
			t.Fatalf("phase = %v, expected idle", snap.State.Phase)
		}
		if len(snap.Bullets) != 0 || len(snap.Asteroids) != 0 {
			t.Fatal("idle simulation should not spawn entities")
		}
	}
}

func TestRestartStartsGameAndQueuesLevel(t *testing.T) {
	s := newTestSim(t, 1)
	snap := s.Tick(core.InputOf(core.ActionRestart))
	if snap.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, expected playing", snap.State.Phase)
	}
	if len(snap.Asteroids) != 0 {
		t.Fatal("field should appear after the start delay, not immediately")
	}

	for i := 0; i < s.cfg.Gameplay.StartDelayTicks && len(snap.Asteroids) == 0; i++ {
		snap = s.Tick(core.NewInputFrame())
	}
	if len(snap.Asteroids) != 5 {
		t.Errorf("asteroids = %d, expected 5 after the start delay", len(snap.Asteroids))
	}
}

func TestLevelClearTriggersOnce(t *testing.T) {
	s := playingSim(t)
	s.store.Asteroids = []Asteroid{rock(core.V(50, 50), SizeSmall)}
	s.store.Bullets = []Bullet{{Pos: core.V(50, 50), TTL: 60}}

	snap := s.Tick(core.NewInputFrame())
	if snap.State.Level != 2 {
		t.Fatalf("Level = %d, expected 2 after clearing the field", snap.State.Level)
	}

	for i := 1; i < s.cfg.Gameplay.LevelDelayTicks; i++ {
		snap = s.Tick(core.NewInputFrame())
		if snap.State.Level != 2 {
			t.Fatalf("tick %d: Level = %d, expected it to stay 2", i, snap.State.Level)
		}
		if len(snap.Asteroids) != 0 {
			t.Fatalf("tick %d: field repopulated before the delay", i)
		}
	}

	snap = s.Tick(core.NewInputFrame())
	if len(snap.Asteroids) != 6 {
		t.Errorf("asteroids = %d, expected 4+2", len(snap.Asteroids))
	}
	if snap.State.Level != 2 {
		t.Errorf("Level = %d, expected 2", snap.State.Level)
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	s := playingSim(t)
	center := s.SpawnPoint()
	for range 3 {
		s.store.Asteroids = append(s.store.Asteroids, rock(center, SizeLarge))
	}
	s.store.Asteroids = append(s.store.Asteroids, rock(core.V(50, 50), SizeSmall))

	snap := s.Tick(core.NewInputFrame())
	if !snap.State.GameOver() {
		t.Fatalf("phase = %v, expected gameover", snap.State.Phase)
	}
	score := snap.State.Score

	// A bullet parked on a rock must not score after the game ended.
	s.store.Bullets = []Bullet{{Pos: core.V(50, 50), TTL: 60}}
	for range 120 {
		snap = s.Tick(core.InputOf(core.ActionFire, core.ActionThrust, core.ActionPause))
		if snap.State.Lives != 0 || snap.State.Score != score || !snap.State.GameOver() {
			t.Fatalf("game over state changed: %+v", snap.State)
		}
	}

	snap = s.Tick(core.InputOf(core.ActionRestart))
	if snap.State.Phase != core.PhasePlaying || snap.State.Lives != 3 || snap.State.Score != 0 {
		t.Errorf("restart should begin a new game, got %+v", snap.State)
	}
}

func TestPauseSkipsSimulation(t *testing.T) {
	s := playingSim(t)
	s.store.Ship.Vel = core.V(1, 0)
	start := s.store.Ship.Pos

	snap := s.Tick(core.InputOf(core.ActionPause))
	if snap.State.Phase != core.PhasePaused {
		t.Fatalf("phase = %v, expected paused", snap.State.Phase)
	}
	if snap.Ship.Pos != start {
		t.Error("ship moved on the pausing tick")
	}

	// Holding pause must not toggle again.
	for range 5 {
		snap = s.Tick(core.InputOf(core.ActionPause, core.ActionThrust, core.ActionFire))
	}
	if snap.State.Phase != core.PhasePaused || snap.Ship.Pos != start || len(snap.Bullets) != 0 {
		t.Fatalf("paused simulation advanced: %+v", snap.Ship)
	}

	s.Tick(core.NewInputFrame())
	snap = s.Tick(core.InputOf(core.ActionPause))
	if snap.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, expected playing after second press", snap.State.Phase)
	}
	if snap.Ship.Pos == start {
		t.Error("ship should move once resumed")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	s := playingSim(t)
	s.store.Asteroids = []Asteroid{rock(core.V(50, 50), SizeLarge)}
	s.scheduleLevel(10)

	s.Reset()

	snap := s.Snapshot()
	if snap.State.Phase != core.PhaseIdle || len(snap.Asteroids) != 0 {
		t.Errorf("after Reset: %+v with %d asteroids", snap.State, len(snap.Asteroids))
	}
	for range 20 {
		s.Tick(core.NewInputFrame())
	}
	if len(s.store.Asteroids) != 0 {
		t.Error("a queued level must not fire after Reset")
	}
}

func TestResetControl(t *testing.T) {
	s := newTestSim(t, 1)
	s.Tick(core.InputOf(core.ActionRestart))
	s.Tick(core.InputOf(core.ActionPause))

	// Reset works from any phase, paused included.
	snap := s.Tick(core.InputOf(core.ActionReset))
	if snap.State.Phase != core.PhaseIdle {
		t.Fatalf("phase = %v, expected idle after reset", snap.State.Phase)
	}

	// Holding reset does not keep resetting, so restart can follow.
	snap = s.Tick(core.InputOf(core.ActionReset, core.ActionRestart))
	if snap.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, expected playing while reset is still held", snap.State.Phase)
	}
	snap = s.Tick(core.InputOf(core.ActionReset))
	if snap.State.Phase != core.PhasePlaying {
		t.Errorf("held reset fired again: phase = %v", snap.State.Phase)
	}
}

// script plays a fixed sequence of inputs: start, then weave and shoot.
func script(tick int) core.InputFrame {
	in := core.NewInputFrame()
	switch {
	case tick == 0:
		in.Set(core.ActionRestart)
	case tick%40 < 10:
		in.Set(core.ActionRotateLeft)
		in.Set(core.ActionFire)
	case tick%40 < 25:
		in.Set(core.ActionThrust)
	default:
		in.Set(core.ActionRotateRight)
		in.Set(core.ActionFire)
	}
	return in
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		s := newTestSim(t, seed)
		var snap Snapshot
		for i := range 600 {
			snap = s.Tick(script(i))
		}
		return snap
	}

	a, b := run(42), run(42)
	if a.Hash() != b.Hash() {
		t.Errorf("same seed and inputs diverged: %d vs %d", a.Hash(), b.Hash())
	}
	if c := run(43); c.Hash() == a.Hash() {
		t.Error("different seeds should produce different games")
	}
}

func TestScoreMonotonicAndWorldBounded(t *testing.T) {
	s := newTestSim(t, 11)
	rng := rand.New(rand.NewSource(99))

	last := 0
	s.Tick(core.InputOf(core.ActionRestart))
	for i := range 3000 {
		in := core.NewInputFrame()
		for _, a := range []core.Action{core.ActionRotateLeft, core.ActionRotateRight, core.ActionThrust, core.ActionFire} {
			if rng.Intn(2) == 0 {
				in.Set(a)
			}
		}
		if i%500 == 499 {
			in.Set(core.ActionRestart)
		}

		snap := s.Tick(in)
		if snap.State.Phase == core.PhasePlaying && snap.State.Score < last && snap.State.Score != 0 {
			t.Fatalf("tick %d: score fell from %d to %d", i, last, snap.State.Score)
		}
		last = snap.State.Score

		if !inBounds(snap.Ship.Pos, 600, 400) {
			t.Fatalf("tick %d: ship outside world at %+v", i, snap.Ship.Pos)
		}
		for _, a := range snap.Asteroids {
			if !inBounds(a.Pos, 600, 400) {
				t.Fatalf("tick %d: asteroid outside world at %+v", i, a.Pos)
			}
			if a.Size < SizeSmall || a.Size > SizeLarge {
				t.Fatalf("tick %d: invalid size %d", i, a.Size)
			}
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := playingSim(t)
	s.store.Asteroids = []Asteroid{rock(core.V(50, 50), SizeLarge)}
	s.store.Bullets = []Bullet{{Pos: core.V(10, 10), TTL: 60}}

	snap := s.Snapshot()
	snap.Asteroids[0].Shape[0] = 99
	snap.Asteroids[0].Pos = core.V(0, 0)
	snap.Bullets[0] = core.V(0, 0)

	if s.store.Asteroids[0].Shape[0] != 1 || s.store.Asteroids[0].Pos != core.V(50, 50) {
		t.Error("mutating a snapshot changed an asteroid")
	}
	if s.store.Bullets[0].Pos != core.V(10, 10) {
		t.Error("mutating a snapshot changed a bullet")
	}
}

func TestSnapshotEncodeDecode(t *testing.T) {
	s := newTestSim(t, 8)
	var snap Snapshot
	for i := range 30 {
		snap = s.Tick(script(i))
	}

	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if back.Tick != snap.Tick || back.State != snap.State || back.Ship != snap.Ship {
		t.Errorf("decoded header differs: %+v vs %+v", back.State, snap.State)
	}
	if len(back.Asteroids) != len(snap.Asteroids) || len(back.Particles) != len(snap.Particles) {
		t.Fatal("decoded collections differ in length")
	}
	for i, a := range snap.Asteroids {
		if back.Asteroids[i].Pos != a.Pos || back.Asteroids[i].Size != a.Size {
			t.Errorf("asteroid %d differs after decoding", i)
		}
	}
}

func TestServerStatusInSnapshot(t *testing.T) {
	s := newTestSim(t, 1)
	if got := s.Snapshot().State.ServerStatus; got != DefaultServerStatus {
		t.Errorf("ServerStatus = %q, expected %q", got, DefaultServerStatus)
	}
	s.SetServerStatus("OFFLINE")
	if got := s.Tick(core.NewInputFrame()).State.ServerStatus; got != "OFFLINE" {
		t.Errorf("ServerStatus = %q, expected OFFLINE", got)
	}
}
