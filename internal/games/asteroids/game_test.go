package asteroids

import (
	"testing"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
)

func TestGameLifecycle(t *testing.T) {
	g := New(config.DefaultAsteroidsConfig())
	if g.ID() != "asteroids" || g.Title() != "Astroidz" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}

	g.Reset(core.DefaultConfig())
	if g.State().Phase != core.PhaseIdle {
		t.Fatalf("phase after Reset = %v, expected idle", g.State().Phase)
	}

	res := g.Step(core.InputOf(core.ActionRestart))
	if res.State.Phase != core.PhasePlaying || res.State.Lives != 3 {
		t.Errorf("Step(restart) = %+v", res.State)
	}
	if g.Snapshot().Tick != 1 {
		t.Errorf("Snapshot().Tick = %d, expected 1", g.Snapshot().Tick)
	}

	dst := core.NewScreen(60, 24)
	g.Render(dst)
	if dst.Get(30, 13) != '→' {
		t.Errorf("Render should draw the ship, got %q", dst.Get(30, 13))
	}
}

func TestGameServerStatus(t *testing.T) {
	g := New(config.DefaultAsteroidsConfig())
	g.SetServerStatus("SSH")
	g.Reset(core.DefaultConfig())
	if g.State().ServerStatus != "SSH" {
		t.Errorf("ServerStatus = %q, expected SSH", g.State().ServerStatus)
	}

	g.SetServerStatus("OFFLINE")
	if g.State().ServerStatus != "OFFLINE" {
		t.Errorf("ServerStatus = %q, expected OFFLINE", g.State().ServerStatus)
	}
}
