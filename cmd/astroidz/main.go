// astroidz is an asteroid-field shooter for the terminal.
//
// Usage:
//
//	astroidz play                  - Play in this terminal
//	astroidz serve                 - Start SSH server for remote play
//	astroidz scores                - Show the leaderboard
//	astroidz submit <name> <score> - Add a score to the leaderboard
//	astroidz simulate              - Run a headless autopilot game
//	astroidz config                - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.astroidz/scores.db)
//	--config <path>       - Use a custom asteroids.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/games/asteroids"
	"github.com/vovakirdan/astroidz/internal/leaderboard"
	"github.com/vovakirdan/astroidz/internal/storage"
)

// statusOffline marks a game whose scores only live in memory.
const statusOffline = "OFFLINE"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astroidz",
	Short: "Astroidz - an asteroid-field shooter in your terminal",
	Long: `Astroidz is a terminal asteroid-field shooter: steer a ship on a
wrapping field, split rocks into smaller rocks and climb the leaderboard.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  submit    - Add a score by hand
  simulate  - Headless autopilot run
  config    - Print the effective configuration

Examples:
  astroidz play
  astroidz play --difficulty hard
  astroidz serve --ssh :2222
  astroidz scores
  astroidz simulate --ticks 6000 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.astroidz/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom asteroids.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the stderr logger shared by all commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig reads the game config and applies the difficulty preset.
func loadConfig() (config.AsteroidsConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.AsteroidsConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.AsteroidsConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// scoreBoard is a leaderboard plus what it takes to release it.
type scoreBoard struct {
	*leaderboard.Board
	sqlite *storage.Store
	status string
}

// Close releases the database, if any.
func (b *scoreBoard) Close() {
	if b.sqlite != nil {
		b.sqlite.Close()
	}
}

// openBoard opens the SQLite leaderboard. When the database is unavailable
// the game keeps going on an in-memory board and reports itself offline.
func openBoard(ctx context.Context, cfg config.AsteroidsConfig, logger *log.Logger) *scoreBoard {
	opts := []leaderboard.Option{
		leaderboard.WithSize(cfg.Leaderboard.Size),
		leaderboard.WithNameMaxLen(cfg.Leaderboard.NameMaxLen),
		leaderboard.WithLogger(logger),
	}

	sb := &scoreBoard{status: asteroids.DefaultServerStatus}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be kept", "path", flagDBPath, "error", err)
		sb.Board = leaderboard.New(leaderboard.NewMemoryStore(), opts...)
		sb.status = statusOffline
	} else {
		sb.sqlite = store
		sb.Board = leaderboard.New(store, opts...)
	}

	if cfg.Leaderboard.SeedDefaults {
		if err := sb.SeedDefaults(ctx); err != nil {
			logger.Warn("could not seed leaderboard", "error", err)
		}
	}
	return sb
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
