package repo

import (
	"context"
	"sync"

	"github.com/sophist-bot/server/internal/bot/model"
)

// MemoryContextStore is the volatile context-store variant: a per-conversation
// bounded slice held in process memory. Conversations are created implicitly
// on first append and vanish at process exit.
//
// The top-level mutex only guards the map; each conversation carries its own
// lock, so operations on different conversations do not contend.
type MemoryContextStore struct {
	mu            sync.RWMutex
	max           int
	conversations map[int64]*conversation
}

type conversation struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
}

func NewMemoryContextStore(maxMessages int) *MemoryContextStore {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &MemoryContextStore{
		max:           maxMessages,
		conversations: make(map[int64]*conversation),
	}
}

func (s *MemoryContextStore) conversation(id int64, create bool) *conversation {
	s.mu.RLock()
	c := s.conversations[id]
	s.mu.RUnlock()
	if c != nil || !create {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c = s.conversations[id]; c == nil {
		c = &conversation{}
		s.conversations[id] = c
	}
	return c
}

func (s *MemoryContextStore) Append(_ context.Context, id int64, entry model.HistoryEntry) error {
	c := s.conversation(id, true)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry)
	if over := len(c.entries) - s.max; over > 0 {
		c.entries = append(c.entries[:0], c.entries[over:]...)
	}
	return nil
}

func (s *MemoryContextStore) Read(_ context.Context, id int64) ([]model.HistoryEntry, error) {
	c := s.conversation(id, false)
	if c == nil {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.HistoryEntry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

func (s *MemoryContextStore) PopLast(_ context.Context, id int64) error {
	c := s.conversation(id, false)
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.entries); n > 0 {
		c.entries = c.entries[:n-1]
	}
	return nil
}

var _ model.ContextStore = (*MemoryContextStore)(nil)
