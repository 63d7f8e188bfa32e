package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
	"github.com/vovakirdan/astroidz/internal/engine"
	"github.com/vovakirdan/astroidz/internal/games/asteroids"
)

var (
	flagSimTicks    int
	flagSimRealtime bool
	flagSimName     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot game",
	Long: `Run the simulation without a display. An autopilot spins the ship,
fires whenever the gun is ready and gives short bursts of thrust. The run
stops after --ticks ticks or at game over, then prints a summary.

With the same --seed and --fps, two runs produce the same frame hash.

Examples:
  astroidz simulate --seed 42
  astroidz simulate --ticks 600 --realtime
  astroidz simulate --seed 7 --name robot`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of ticks to run")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simulateCmd.Flags().StringVar(&flagSimName, "name", "", "Submit the final score under this name")
}

// autopilot plays a simple scripted game.
func autopilot(tick uint64) core.InputFrame {
	f := core.InputOf(core.ActionRotateRight, core.ActionFire)
	if tick == 1 {
		f.Set(core.ActionRestart)
	}
	if tick%90 < 10 {
		f.Set(core.ActionThrust)
	}
	return f
}

// simulation runs one headless game to completion. A non-positive tickRate
// uses the default rate.
func simulation(ctx context.Context, cfg config.AsteroidsConfig, tickRate int, seed int64, maxTicks int, realtime bool, logger *log.Logger) (asteroids.Snapshot, error) {
	if tickRate < 1 {
		tickRate = core.DefaultConfig().TickRate
	}
	sim := asteroids.NewSimulation(cfg, tickRate, rand.New(rand.NewSource(seed)))
	sched := engine.New(sim, logger)

	done := func(snap asteroids.Snapshot) bool {
		return snap.Tick >= uint64(maxTicks) || snap.State.Phase == core.PhaseGameOver
	}
	next := func() core.InputFrame {
		return autopilot(sched.Ticks() + 1)
	}

	if !realtime {
		for {
			if err := ctx.Err(); err != nil {
				return sched.Latest(), err
			}
			snap, _ := sched.Step(next())
			if done(snap) {
				sched.Stop()
				return snap, nil
			}
		}
	}

	err := sched.Run(ctx, engine.Interval(tickRate), next, func(snap asteroids.Snapshot) {
		if snap.Tick%uint64(tickRate) == 0 {
			logger.Debug("tick", "tick", snap.Tick, "score", snap.State.Score, "asteroids", len(snap.Asteroids))
		}
		if done(snap) {
			sched.Stop()
		}
	})
	return sched.Latest(), err
}

func runSimulate(cmd *cobra.Command, _ []string) {
	logger := newLogger("astroidz-sim")
	ctx := contextOrBackground(cmd)

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagSimTicks < 1 {
		fail("--ticks must be at least 1")
	}
	if flagFPS < 1 {
		fail("--fps must be at least 1")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	snap, err := simulation(ctx, cfg, flagFPS, seed, flagSimTicks, flagSimRealtime, logger)
	if err != nil {
		fail("simulation: %v", err)
	}
	logger.Info("simulation finished", "ticks", snap.Tick, "elapsed", time.Since(start).Round(time.Millisecond))

	printSummary(os.Stdout, seed, snap)

	if flagSimName != "" {
		board := openBoard(ctx, cfg, logger)
		defer board.Close()
		records, err := submitScore(ctx, os.Stdout, board.Board, flagSimName, snap.State.Score)
		if err != nil {
			board.Close()
			fail("%v", err)
		}
		printScores(os.Stdout, records, nil)
	}
}

// printSummary reports the final frame.
func printSummary(w io.Writer, seed int64, snap asteroids.Snapshot) {
	fmt.Fprintf(w, "Seed:      %d\n", seed)
	fmt.Fprintf(w, "Ticks:     %d\n", snap.Tick)
	fmt.Fprintf(w, "Phase:     %s\n", snap.State.Phase)
	fmt.Fprintf(w, "Score:     %d\n", snap.State.Score)
	fmt.Fprintf(w, "Level:     %d\n", snap.State.Level)
	fmt.Fprintf(w, "Lives:     %d\n", snap.State.Lives)
	fmt.Fprintf(w, "Asteroids: %d\n", len(snap.Asteroids))
	fmt.Fprintf(w, "Hash:      %016x\n", snap.Hash())
}
