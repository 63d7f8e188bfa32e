package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/astroidz/internal/leaderboard"
	"github.com/vovakirdan/astroidz/internal/platform/tui"
	"github.com/vovakirdan/astroidz/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores.

Examples:
  astroidz scores
  astroidz scores --tui
  astroidz scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var submitCmd = &cobra.Command{
	Use:   "submit <name> <score>",
	Short: "Add a score to the leaderboard",
	Long: `Submit a finished game to the leaderboard. The name is trimmed,
uppercased and shortened the same way the in-game prompt does it.

Examples:
  astroidz submit ace 4200`,
	Args: cobra.ExactArgs(2),
	Run:  runSubmit,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the board full screen")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete every saved score")
}

func runScores(cmd *cobra.Command, _ []string) {
	logger := newLogger("astroidz")
	ctx := contextOrBackground(cmd)

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagScoresReset {
		// Do not re-seed a board we are about to clear.
		cfg.Leaderboard.SeedDefaults = false
	}

	board := openBoard(ctx, cfg, logger)
	defer board.Close()

	if flagScoresReset {
		if board.sqlite == nil {
			board.Close()
			fail("no scores database to reset")
		}
		if err := board.sqlite.ClearScores(ctx, leaderboard.DefaultGameID); err != nil {
			board.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	if flagScoresTUI && term.IsTerminal(int(os.Stdout.Fd())) {
		w, h, sizeErr := term.GetSize(int(os.Stdout.Fd()))
		if sizeErr != nil {
			w, h = 80, 24
		}
		if err := tui.RunScoreboard(ctx, board.Board, w, h); err != nil {
			board.Close()
			fail("%v", err)
		}
		return
	}

	records, err := board.Top(ctx)
	if err != nil {
		board.Close()
		fail("retrieving scores: %v", err)
	}

	var stats *storage.GameStats
	if board.sqlite != nil {
		stats, err = board.sqlite.GetGameStats(ctx, leaderboard.DefaultGameID)
		if err != nil {
			logger.Warn("could not read stats", "error", err)
		}
	}
	printScores(os.Stdout, records, stats)
}

// printScores writes the board as plain text.
func printScores(w io.Writer, records []leaderboard.ScoreRecord, stats *storage.GameStats) {
	fmt.Fprintln(w, "High Scores - Astroidz")
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'astroidz play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, r := range records {
		date := "-"
		if !r.Time.IsZero() {
			date = r.Time.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-4d  %-12s  %-10d  %s\n", i+1, r.Name, r.Score, date)
	}

	if stats != nil && stats.Entries > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d  Average: %.0f  Entries: %d\n", stats.HighScore, stats.AvgScore, stats.Entries)
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
	}
}

func runSubmit(cmd *cobra.Command, args []string) {
	score, err := strconv.Atoi(args[1])
	if err != nil {
		fail("score must be a whole number, got %q", args[1])
	}

	logger := newLogger("astroidz")
	ctx := contextOrBackground(cmd)

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	board := openBoard(ctx, cfg, logger)
	defer board.Close()

	records, err := submitScore(ctx, os.Stdout, board.Board, args[0], score)
	if err != nil {
		board.Close()
		fail("%v", err)
	}
	printScores(os.Stdout, records, nil)
}

// submitScore adds one entry and reports where it landed to w.
func submitScore(ctx context.Context, w io.Writer, board *leaderboard.Board, name string, score int) ([]leaderboard.ScoreRecord, error) {
	before, err := board.Top(ctx)
	if err != nil {
		return nil, err
	}
	rank := leaderboard.Rank(before, score, board.Size())

	records, err := board.Submit(ctx, name, score)
	if err != nil {
		return nil, err
	}
	if rank == 0 {
		fmt.Fprintf(w, "%d did not make the top %d.\n\n", score, board.Size())
	} else {
		fmt.Fprintf(w, "New entry at #%d.\n\n", rank)
	}
	return records, nil
}
