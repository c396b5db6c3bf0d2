package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// Store is an in-memory implementation of store.WordStore for tests.
type Store struct {
	mu    sync.RWMutex
	lists map[store.List]map[string]struct{}
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{lists: make(map[store.List]map[string]struct{})}
}

// Close implements store.WordStore.
func (s *Store) Close() error { return nil }

// Words returns the sorted contents of list.
func (s *Store) Words(ctx context.Context, list store.List) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.lists[list]
	if !ok {
		return nil, internalerr.ErrNotFound
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

// ReplaceWords overwrites list with words.
func (s *Store) ReplaceWords(ctx context.Context, list store.List, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]struct{}, len(words))
	for _, w := range store.Normalize(words) {
		set[w] = struct{}{}
	}
	s.lists[list] = set
	return nil
}

// AddWord inserts word into list, creating the list if needed.
func (s *Store) AddWord(ctx context.Context, list store.List, word string) (bool, error) {
	if word == "" {
		return false, internalerr.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.lists[list]
	if !ok {
		set = make(map[string]struct{})
		s.lists[list] = set
	}
	if _, exists := set[word]; exists {
		return false, nil
	}
	set[word] = struct{}{}
	return true, nil
}
