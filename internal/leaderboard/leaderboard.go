// Package leaderboard keeps the high score table: submissions are
// validated here and persisted through a Store.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSize is how many records a board keeps.
const DefaultSize = 10

// DefaultNameMaxLen is the longest accepted player name, in runes.
const DefaultNameMaxLen = 12

// DefaultGameID is the store key for the asteroid field.
const DefaultGameID = "asteroids"

var (
	// ErrEmptyName is returned when a name is blank after trimming.
	ErrEmptyName = errors.New("leaderboard: please enter your name")

	// ErrNegativeScore is returned for scores below zero.
	ErrNegativeScore = errors.New("leaderboard: score must not be negative")
)

// ScoreRecord is one finished game on the board.
type ScoreRecord struct {
	Name  string
	Score int
	Time  time.Time
}

// Store persists score records per game.
type Store interface {
	// SaveScore appends a record. Later saves sort after earlier ones
	// with the same score.
	SaveScore(ctx context.Context, gameID string, rec ScoreRecord) (int64, error)

	// TopScores returns up to limit records, best first.
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreRecord, error)

	// TrimScores drops every record below the top keep.
	TrimScores(ctx context.Context, gameID string, keep int) error
}

// Board validates submissions and keeps the store truncated to its size.
// It is safe for concurrent use.
type Board struct {
	store      Store
	gameID     string
	size       int
	nameMaxLen int
	now        func() time.Time
	logger     *log.Logger

	mu sync.Mutex
}

// Option configures a Board.
type Option func(*Board)

// WithSize sets how many records are kept.
func WithSize(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.size = n
		}
	}
}

// WithNameMaxLen sets the longest kept name.
func WithNameMaxLen(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.nameMaxLen = n
		}
	}
}

// WithGameID sets the store key.
func WithGameID(id string) Option {
	return func(b *Board) { b.gameID = id }
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger for submissions.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// New creates a board on top of store.
func New(store Store, opts ...Option) *Board {
	b := &Board{
		store:      store,
		gameID:     DefaultGameID,
		size:       DefaultSize,
		nameMaxLen: DefaultNameMaxLen,
		now:        time.Now,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Size returns how many records the board keeps.
func (b *Board) Size() int { return b.size }

// NormalizeName trims, uppercases and shortens a player name.
func NormalizeName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	name = strings.ToUpper(name)
	if r := []rune(name); maxLen > 0 && len(r) > maxLen {
		name = strings.TrimSpace(string(r[:maxLen]))
	}
	return name, nil
}

// Submit records a finished game and returns the updated board.
// A blank name or a negative score leaves the board untouched.
func (b *Board) Submit(ctx context.Context, name string, score int) ([]ScoreRecord, error) {
	name, err := NormalizeName(name, b.nameMaxLen)
	if err != nil {
		return nil, err
	}
	if score < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeScore, score)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rec := ScoreRecord{Name: name, Score: score, Time: b.now()}
	if _, err := b.store.SaveScore(ctx, b.gameID, rec); err != nil {
		return nil, err
	}
	if err := b.store.TrimScores(ctx, b.gameID, b.size); err != nil {
		return nil, err
	}
	b.logger.Info("score submitted", "name", name, "score", score)

	return b.store.TopScores(ctx, b.gameID, b.size)
}

// Top returns the current board, best first.
func (b *Board) Top(ctx context.Context) ([]ScoreRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.TopScores(ctx, b.gameID, b.size)
}

// DefaultRecords are the entries an empty board starts with.
func DefaultRecords() []ScoreRecord {
	return []ScoreRecord{
		{Name: "ADMIN", Score: 15420},
		{Name: "SYS_USER", Score: 12800},
		{Name: "GUEST_007", Score: 9650},
		{Name: "NETWORK_OPS", Score: 7330},
		{Name: "VISITOR_42", Score: 6120},
	}
}

// SeedDefaults fills an empty board with DefaultRecords. A board that
// already has entries is left alone.
func (b *Board) SeedDefaults(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, err := b.store.TopScores(ctx, b.gameID, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := b.now()
	for _, rec := range DefaultRecords() {
		rec.Time = now
		if _, err := b.store.SaveScore(ctx, b.gameID, rec); err != nil {
			return err
		}
	}
	b.logger.Debug("seeded default scores", "count", len(DefaultRecords()))
	return b.store.TrimScores(ctx, b.gameID, b.size)
}

// Rank returns the 1-based position score would take on records, or 0 if
// it would not make the board.
func Rank(records []ScoreRecord, score, size int) int {
	pos := 1
	for _, r := range records {
		if r.Score < score {
			break
		}
		pos++
	}
	if pos > size {
		return 0
	}
	return pos
}
