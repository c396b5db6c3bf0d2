// Package redisstore keeps word lists in Redis sets so several speller
// processes can share one custom dictionary.
package redisstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// DefaultPrefix namespaces every key the store touches.
const DefaultPrefix = "speller"

// Client is the subset of *redis.Client the store uses.
type Client interface {
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Rename(ctx context.Context, key, newkey string) *redis.StatusCmd
	Close() error
}

// Store implements store.WordStore with one Redis set per list.
type Store struct {
	client Client
	prefix string
}

// New wraps client. An empty prefix selects DefaultPrefix.
func New(client Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", internalerr.ErrStoreUnavailable, addr, err)
	}
	return New(rdb, prefix), nil
}

func (s *Store) key(list store.List) string {
	return s.prefix + ":words:" + string(list)
}

func (s *Store) listsKey() string {
	return s.prefix + ":lists"
}

// Close implements store.WordStore.
func (s *Store) Close() error { return s.client.Close() }

// Words returns the sorted members of the list's set.
func (s *Store) Words(ctx context.Context, list store.List) ([]string, error) {
	words, err := s.client.SMembers(ctx, s.key(list)).Result()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		known, err := s.client.SIsMember(ctx, s.listsKey(), string(list)).Result()
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, fmt.Errorf("list %q: %w", list, internalerr.ErrNotFound)
		}
		return []string{}, nil
	}
	sort.Strings(words)
	return words, nil
}

// ReplaceWords fills a scratch set and renames it over the list key, so
// readers never observe a partially written list.
func (s *Store) ReplaceWords(ctx context.Context, list store.List, words []string) error {
	if err := s.client.SAdd(ctx, s.listsKey(), string(list)).Err(); err != nil {
		return err
	}

	words = store.Normalize(words)
	if len(words) == 0 {
		return s.client.Del(ctx, s.key(list)).Err()
	}

	tmp := s.key(list) + ":tmp"
	if err := s.client.Del(ctx, tmp).Err(); err != nil {
		return err
	}
	members := make([]interface{}, len(words))
	for i, w := range words {
		members[i] = w
	}
	if err := s.client.SAdd(ctx, tmp, members...).Err(); err != nil {
		return err
	}
	return s.client.Rename(ctx, tmp, s.key(list)).Err()
}

// AddWord adds word to the list's set.
func (s *Store) AddWord(ctx context.Context, list store.List, word string) (bool, error) {
	if word == "" {
		return false, internalerr.ErrInvalidInput
	}
	if err := s.client.SAdd(ctx, s.listsKey(), string(list)).Err(); err != nil {
		return false, err
	}
	n, err := s.client.SAdd(ctx, s.key(list), word).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
