// Package dictionary holds the known-word sets the speller checks against.
//
// The domain set is learned from the training corpus and is the only source
// of correction candidates. The combined set adds a general word list and
// every word a user accepts, and decides whether a token is known at all.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/cognicore/speller/pkg/speller/distance"
	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// Match is a domain word found near a query.
type Match struct {
	Word     string
	Distance int
}

// Dictionary is safe for concurrent use. Lookups may run alongside Add.
type Dictionary struct {
	st store.WordStore

	// domain is fixed after construction.
	domain   map[string]struct{}
	byLength map[int][]string

	mu       sync.RWMutex
	combined map[string]struct{}
	sorted   []string
}

// New builds a dictionary from in-memory lists. combined is extended with
// the domain words. st may be nil for a dictionary that is never persisted.
func New(domain, combined []string, st store.WordStore) *Dictionary {
	d := &Dictionary{
		st:       st,
		domain:   make(map[string]struct{}, len(domain)),
		byLength: make(map[int][]string),
		combined: make(map[string]struct{}, len(combined)+len(domain)),
	}
	for _, w := range store.Normalize(domain) {
		d.domain[w] = struct{}{}
		d.combined[w] = struct{}{}
		n := len([]rune(w))
		d.byLength[n] = append(d.byLength[n], w)
	}
	for _, w := range combined {
		if w = strings.TrimSpace(w); w != "" {
			d.combined[w] = struct{}{}
		}
	}
	return d
}

// Load reads both lists from st. It returns internalerr.ErrNotFound when
// either list is missing or empty, which tells the caller to Bootstrap.
func Load(ctx context.Context, st store.WordStore) (*Dictionary, error) {
	lists := make(map[store.List][]string, len(store.Lists))
	for _, l := range store.Lists {
		words, err := st.Words(ctx, l)
		if err != nil {
			return nil, fmt.Errorf("load %s dictionary: %w", l, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("load %s dictionary: empty: %w", l, internalerr.ErrNotFound)
		}
		lists[l] = words
	}
	return New(lists[store.Domain], lists[store.Combined], st), nil
}

// Bootstrap derives both lists from the model vocabulary and a general word
// list, persists them, and returns the resulting dictionary. General words
// are lower-cased.
func Bootstrap(ctx context.Context, st store.WordStore, vocab, general []string) (*Dictionary, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("bootstrap dictionary: %w", internalerr.ErrEmptyCorpus)
	}

	combined := make([]string, 0, len(vocab)+len(general))
	combined = append(combined, vocab...)
	for _, w := range general {
		combined = append(combined, strings.ToLower(strings.TrimSpace(w)))
	}

	d := New(vocab, combined, st)
	if st != nil {
		if err := st.ReplaceWords(ctx, store.Domain, d.DomainWords()); err != nil {
			return nil, fmt.Errorf("save domain dictionary: %w", err)
		}
		if err := st.ReplaceWords(ctx, store.Combined, d.Sorted()); err != nil {
			return nil, fmt.Errorf("save combined dictionary: %w", err)
		}
	}
	return d, nil
}

// LoadOrBootstrap prefers the persisted lists and falls back to Bootstrap
// when they are absent. vocab is only called on the fallback path.
func LoadOrBootstrap(ctx context.Context, st store.WordStore, vocab func() []string, general []string) (*Dictionary, bool, error) {
	d, err := Load(ctx, st)
	if err == nil {
		return d, false, nil
	}
	if !errors.Is(err, internalerr.ErrNotFound) {
		return nil, false, err
	}
	d, err = Bootstrap(ctx, st, vocab(), general)
	return d, true, err
}

// Contains reports whether word is in the combined set.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.combined[word]
	return ok
}

// ContainsDomain reports whether word is a domain word.
func (d *Dictionary) ContainsDomain(word string) bool {
	_, ok := d.domain[word]
	return ok
}

// Len returns the size of the combined set.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.combined)
}

// DomainLen returns the number of domain words.
func (d *Dictionary) DomainLen() int { return len(d.domain) }

// Add accepts a new word into the combined set and appends it to the
// persisted combined list. Only alphabetic words are accepted. Adding a word
// that is already known is a no-op and reports false.
func (d *Dictionary) Add(ctx context.Context, word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if !isAlpha(word) {
		return false, fmt.Errorf("add %q: only alphabetic words can be added: %w", word, internalerr.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.combined[word]; ok {
		return false, nil
	}
	if d.st != nil {
		if _, err := d.st.AddWord(ctx, store.Combined, word); err != nil {
			return false, fmt.Errorf("add %q: %w", word, err)
		}
	}
	d.combined[word] = struct{}{}
	d.sorted = nil
	return true, nil
}

// Sorted returns the combined set in ascending order.
func (d *Dictionary) Sorted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sorted == nil {
		d.sorted = make([]string, 0, len(d.combined))
		for w := range d.combined {
			d.sorted = append(d.sorted, w)
		}
		sort.Strings(d.sorted)
	}
	out := make([]string, len(d.sorted))
	copy(out, d.sorted)
	return out
}

// Search returns the combined words starting with prefix, in order.
func (d *Dictionary) Search(prefix string) []string {
	words := d.Sorted()
	prefix = strings.ToLower(prefix)
	i := sort.SearchStrings(words, prefix)
	var out []string
	for ; i < len(words) && strings.HasPrefix(words[i], prefix); i++ {
		out = append(out, words[i])
	}
	return out
}

// DomainWords returns the domain set in ascending order.
func (d *Dictionary) DomainWords() []string {
	out := make([]string, 0, len(d.domain))
	for w := range d.domain {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Near returns every domain word within max edits of token, in dictionary
// order. Only length buckets that can hold such a word are scanned.
func (d *Dictionary) Near(token string, max int) []Match {
	n := len([]rune(token))
	var out []Match
	for l := n - max; l <= n+max; l++ {
		for _, w := range d.byLength[l] {
			if dist, ok := distance.Within(token, w, max); ok {
				out = append(out, Match{Word: w, Distance: dist})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
