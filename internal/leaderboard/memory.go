package leaderboard

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps scores in process memory. It backs the board when no
// database is available; nothing survives a restart.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string][]ScoreRecord
	nextID int64
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string][]ScoreRecord)}
}

// SaveScore appends a record, keeping the list sorted by score descending.
// The stable sort keeps equal scores in submission order.
func (m *MemoryStore) SaveScore(_ context.Context, gameID string, rec ScoreRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append(m.scores[gameID], rec)
	slices.SortStableFunc(list, func(a, b ScoreRecord) int {
		return b.Score - a.Score
	})
	m.scores[gameID] = list
	m.nextID++
	return m.nextID, nil
}

// TopScores returns a copy of the best limit records.
func (m *MemoryStore) TopScores(_ context.Context, gameID string, limit int) ([]ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.scores[gameID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return slices.Clone(list), nil
}

// TrimScores drops everything below the top keep.
func (m *MemoryStore) TrimScores(_ context.Context, gameID string, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if list := m.scores[gameID]; len(list) > keep {
		m.scores[gameID] = list[:keep]
	}
	return nil
}
