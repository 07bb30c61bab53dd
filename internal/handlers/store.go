package handlers

import (
	"sync"

	"github.com/Darjusch/minesweeper-ai/internal/player"
)

// Match is one finished game kept around for fetching and replay.
type Match struct {
	MatchId    string          `json:"match_id"`
	PlaytimeMs float64         `json:"playtime_ms"`
	Outcome    *player.Outcome `json:"outcome"`
}

// MatchStore keeps finished matches in memory, keyed by id.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

func NewMatchStore() *MatchStore {
	return &MatchStore{matches: make(map[string]*Match)}
}

func (s *MatchStore) Put(m *Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.MatchId] = m
}

func (s *MatchStore) Get(id string) (*Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	return m, ok
}
