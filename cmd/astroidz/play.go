package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/astroidz/internal/core"
	"github.com/vovakirdan/astroidz/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  A/Left, D/Right  - Rotate
  W/Up             - Thrust
  Space            - Fire
  P/Esc            - Pause
  R/Enter          - Start / restart after game over
  X                - Abandon the game and return to the title
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Extra lives and a short shield after each hit
  normal - Rocks speed up level by level
  hard   - Fewer lives, slower gun, fast rocks from the start
  fixed  - Rocks never speed up

Examples:
  astroidz play
  astroidz play --difficulty easy
  astroidz play --config ./my-asteroids.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger := newLogger("astroidz")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	width, height := core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := openBoard(ctx, cfg, logger)
	defer board.Close()

	// Logging stays off while the alternate screen owns the terminal.
	runErr := tui.Run(ctx, tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Board:  board.Board,
		Status: board.status,
	})
	if runErr != nil && ctx.Err() == nil {
		board.Close()
		fail("running game: %v", runErr)
	}
}

// contextOrBackground keeps commands runnable from tests that call Run
// directly without a cobra context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
