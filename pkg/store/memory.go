package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/wordcloud/pkg/result"
)

// MemoryStore keeps layouts in memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]result.Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]result.Layout)}
}

func (s *MemoryStore) Save(ctx context.Context, l result.Layout) (string, error) {
	l = stamp(l)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = l
	return l.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (result.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return result.Layout{}, ErrNotFound
	}
	return l, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]result.Layout, error) {
	s.mu.RLock()
	out := make([]result.Layout, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, l)
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out[:min(len(out), limitOrDefault(limit))], nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.layouts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func sortNewestFirst(ls []result.Layout) {
	slices.SortFunc(ls, func(a, b result.Layout) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareStrings(a.ID, b.ID)
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var _ Store = (*MemoryStore)(nil)
