// Package filestore keeps word lists as plain text files, one word per line.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// DefaultNames maps each list to its file name inside the store directory.
var DefaultNames = map[store.List]string{
	store.Domain:   "psychology_dictionary.txt",
	store.Combined: "dictionary.txt",
}

// Store implements store.WordStore on a directory of text files.
type Store struct {
	mu    sync.Mutex
	dir   string
	names map[store.List]string
}

// Open returns a store rooted at dir, creating the directory if needed.
// names overrides entries of DefaultNames.
func Open(dir string, names map[store.List]string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	merged := make(map[store.List]string, len(DefaultNames))
	for l, n := range DefaultNames {
		merged[l] = n
	}
	for l, n := range names {
		if n != "" {
			merged[l] = n
		}
	}
	return &Store{dir: dir, names: merged}, nil
}

// Close implements store.WordStore.
func (s *Store) Close() error { return nil }

// Path returns the file backing list.
func (s *Store) Path(list store.List) (string, error) {
	name, ok := s.names[list]
	if !ok {
		return "", fmt.Errorf("%w: unknown list %q", internalerr.ErrInvalidInput, list)
	}
	return filepath.Join(s.dir, name), nil
}

// Words reads list from disk.
func (s *Store) Words(ctx context.Context, list store.List) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(list)
}

func (s *Store) read(list store.List) ([]string, error) {
	path, err := s.Path(list)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return store.ReadWordList(f)
}

// ReplaceWords rewrites the list file. The new content is written to a
// temporary file first and renamed into place.
func (s *Store) ReplaceWords(ctx context.Context, list store.List, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.Path(list)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := store.WriteWordList(tmp, words); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// AddWord appends word as a new line unless the list already has it.
func (s *Store) AddWord(ctx context.Context, list store.List, word string) (bool, error) {
	if word == "" {
		return false, internalerr.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(list)
	if err != nil && !errors.Is(err, internalerr.ErrNotFound) {
		return false, err
	}
	if i := sort.SearchStrings(existing, word); i < len(existing) && existing[i] == word {
		return false, nil
	}

	path, _ := s.Path(list)
	line := word + "\n"
	if !endsWithNewline(path) {
		line = "\n" + line
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}

// endsWithNewline reports whether the file at path is missing, empty or ends
// in a newline, so an appended line starts on a line of its own.
func endsWithNewline(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return true
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return true
	}
	return last[0] == '\n'
}
