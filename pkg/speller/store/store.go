package store

import "context"

// List names a persisted word list.
type List string

const (
	// Domain holds the vocabulary learned from the training corpus.
	Domain List = "domain"
	// Combined holds the domain vocabulary merged with the general-purpose
	// word list plus every user-added word.
	Combined List = "combined"
)

// Lists enumerates every list a WordStore is expected to hold.
var Lists = []List{Domain, Combined}

// WordStore persists the dictionaries a speller loads at startup.
//
// Words returns internalerr.ErrNotFound when the list has never been
// written. Returned slices are sorted and free of duplicates.
type WordStore interface {
	Close() error

	Words(ctx context.Context, list List) ([]string, error)
	ReplaceWords(ctx context.Context, list List, words []string) error
	// AddWord reports whether word was newly added.
	AddWord(ctx context.Context, list List, word string) (bool, error)
}
