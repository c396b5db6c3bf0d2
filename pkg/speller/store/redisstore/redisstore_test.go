package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// fakeClient is an in-process stand-in for the Redis set commands.
type fakeClient struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
	fail error
}

func newFakeClient() *fakeClient {
	return &fakeClient{sets: make(map[string]map[string]struct{})}
}

func (f *fakeClient) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return redis.NewStringSliceResult(nil, f.fail)
	}
	out := []string{}
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeClient) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return redis.NewIntResult(0, f.fail)
	}
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	var added int64
	for _, m := range members {
		s := fmt.Sprint(m)
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			added++
		}
	}
	return redis.NewIntResult(added, nil)
}

func (f *fakeClient) SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sets[key][fmt.Sprint(member)]
	return redis.NewBoolResult(ok, nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.sets[k]; ok {
			delete(f.sets, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) Rename(ctx context.Context, key, newkey string) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.sets[key]
	if !ok {
		return redis.NewStatusResult("", errors.New("ERR no such key"))
	}
	delete(f.sets, key)
	f.sets[newkey] = set
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Close() error { return nil }

func TestWords_UnknownList(t *testing.T) {
	s := New(newFakeClient(), "")
	if _, err := s.Words(context.Background(), store.Domain); !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceWords_RenamesIntoPlace(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	s := New(fc, "test")

	if err := s.ReplaceWords(ctx, store.Domain, []string{"old"}); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}
	if err := s.ReplaceWords(ctx, store.Domain, []string{"mood", "anxiety"}); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}

	words, err := s.Words(ctx, store.Domain)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(words) != 2 || words[0] != "anxiety" || words[1] != "mood" {
		t.Errorf("expected [anxiety mood], got %v", words)
	}
	if _, ok := fc.sets["test:words:domain:tmp"]; ok {
		t.Error("scratch key should not survive the rename")
	}
}

func TestReplaceWords_EmptyListStillKnown(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeClient(), "")
	if err := s.ReplaceWords(ctx, store.Combined, nil); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}
	words, err := s.Words(ctx, store.Combined)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected no words, got %v", words)
	}
}

func TestAddWord(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeClient(), "")

	added, err := s.AddWord(ctx, store.Combined, "resilience")
	if err != nil || !added {
		t.Fatalf("AddWord = %v, %v", added, err)
	}
	added, err = s.AddWord(ctx, store.Combined, "resilience")
	if err != nil || added {
		t.Fatalf("repeat AddWord = %v, %v", added, err)
	}
	if _, err := s.AddWord(ctx, store.Combined, ""); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty word, got %v", err)
	}
}

func TestClientErrorsPropagate(t *testing.T) {
	fc := newFakeClient()
	fc.fail = errors.New("connection refused")
	s := New(fc, "")
	if _, err := s.Words(context.Background(), store.Domain); err == nil {
		t.Fatal("expected error from failing client")
	}
}
