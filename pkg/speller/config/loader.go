package config

import (
	"context"
	"fmt"
	"os"

	"github.com/cognicore/speller/pkg/speller/lemma"
	"github.com/cognicore/speller/pkg/speller/store"
	"github.com/cognicore/speller/pkg/speller/store/filestore"
	"github.com/cognicore/speller/pkg/speller/store/memstore"
	"github.com/cognicore/speller/pkg/speller/store/redisstore"
	"github.com/cognicore/speller/pkg/speller/store/sqlite"
)

// Loader opens the stores and reads the auxiliary files a Config names.
type Loader struct {
	Config *Config
}

// Components holds everything Loader produced. Store must be closed by the
// caller.
type Components struct {
	Store   store.WordStore
	General []string
}

// Load opens the configured dictionary backend and reads the general word
// list, if one is configured.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	comp := &Components{}

	var general []string
	if path := l.Config.Dictionary.GeneralWordlist; path != "" {
		words, err := LoadWordList(path)
		if err != nil {
			return nil, fmt.Errorf("load general word list: %w", err)
		}
		general = words
	}
	comp.General = general

	st, err := OpenStore(ctx, l.Config.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("open dictionary store: %w", err)
	}
	comp.Store = st

	return comp, nil
}

// OpenStore opens the backend d selects.
func OpenStore(ctx context.Context, d Dictionary) (store.WordStore, error) {
	switch d.Backend {
	case BackendFile, "":
		return filestore.Open(d.Dir, map[store.List]string{
			store.Domain:   d.DomainFile,
			store.Combined: d.CombinedFile,
		})
	case BackendSQLite:
		return sqlite.OpenSQLite(ctx, d.SQLitePath)
	case BackendRedis:
		return redisstore.Dial(ctx, d.RedisAddr, d.RedisPassword, d.RedisDB, d.RedisPrefix)
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", d.Backend)
}

// LoadWordList reads a newline-delimited word list.
func LoadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return store.ReadWordList(f)
}

// Lemmatizer returns a Morphy lemmatizer backed by known, with the
// configured exception file loaded.
func (c *Config) Lemmatizer(known func(string) bool) (*lemma.Morphy, error) {
	m := lemma.NewMorphy(known)
	if c.Lemma.Exceptions != "" {
		if err := m.LoadExceptions(c.Lemma.Exceptions); err != nil {
			return nil, fmt.Errorf("load lemma exceptions: %w", err)
		}
	}
	return m, nil
}
