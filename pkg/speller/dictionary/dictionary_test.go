package dictionary

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
	"github.com/cognicore/speller/pkg/speller/store/memstore"
)

func TestBootstrap_PersistsBothLists(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	d, err := Bootstrap(ctx, st, []string{"therapy", "anxiety"}, []string{"Apple", "anxiety", ""})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if !d.ContainsDomain("therapy") || d.ContainsDomain("apple") {
		t.Error("domain set should hold corpus words only")
	}
	if !d.Contains("apple") || !d.Contains("therapy") {
		t.Error("combined set should hold domain and general words")
	}

	domain, _ := st.Words(ctx, store.Domain)
	if len(domain) != 2 {
		t.Errorf("expected 2 persisted domain words, got %v", domain)
	}
	combined, _ := st.Words(ctx, store.Combined)
	if len(combined) != 3 || combined[0] != "anxiety" || combined[1] != "apple" {
		t.Errorf("expected [anxiety apple therapy], got %v", combined)
	}
}

func TestBootstrap_EmptyVocabulary(t *testing.T) {
	_, err := Bootstrap(context.Background(), memstore.New(), nil, []string{"word"})
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestLoadOrBootstrap(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	calls := 0
	vocab := func() []string {
		calls++
		return []string{"mood"}
	}

	_, built, err := LoadOrBootstrap(ctx, st, vocab, nil)
	if err != nil || !built {
		t.Fatalf("first LoadOrBootstrap = %v, %v", built, err)
	}
	d, built, err := LoadOrBootstrap(ctx, st, vocab, nil)
	if err != nil || built {
		t.Fatalf("second LoadOrBootstrap = %v, %v", built, err)
	}
	if calls != 1 {
		t.Errorf("vocabulary should be computed once, got %d calls", calls)
	}
	if !d.ContainsDomain("mood") {
		t.Error("reloaded dictionary lost the domain word")
	}
}

func TestLoad_EmptyListNeedsBootstrap(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	st.ReplaceWords(ctx, store.Domain, []string{"mood"})
	st.ReplaceWords(ctx, store.Combined, nil)

	if _, err := Load(ctx, st); !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty list, got %v", err)
	}
}

func TestAdd_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	d := New([]string{"cat"}, nil, st)

	added, err := d.Add(ctx, "Resilience")
	if err != nil || !added {
		t.Fatalf("Add = %v, %v", added, err)
	}
	before := d.Len()
	added, err = d.Add(ctx, "resilience")
	if err != nil || added {
		t.Fatalf("repeat Add = %v, %v", added, err)
	}
	if d.Len() != before {
		t.Errorf("repeat Add changed the set size from %d to %d", before, d.Len())
	}
	if d.ContainsDomain("resilience") {
		t.Error("added words must not become candidates")
	}
	words, _ := st.Words(ctx, store.Combined)
	if len(words) != 1 || words[0] != "resilience" {
		t.Errorf("expected one persisted word, got %v", words)
	}
}

func TestAdd_RejectsNonAlphabetic(t *testing.T) {
	d := New(nil, nil, nil)
	for _, w := range []string{"", "abc1", "self-esteem", "a b"} {
		if _, err := d.Add(context.Background(), w); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("Add(%q): expected ErrInvalidInput, got %v", w, err)
		}
	}
}

func TestSortedAndSearch(t *testing.T) {
	d := New([]string{"therapy", "theory"}, []string{"the", "cat"}, nil)

	sorted := d.Sorted()
	want := []string{"cat", "the", "theory", "therapy"}
	if len(sorted) != len(want) {
		t.Fatalf("Sorted = %v, want %v", sorted, want)
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("Sorted = %v, want %v", sorted, want)
		}
	}

	got := d.Search("The")
	if len(got) != 3 || got[0] != "the" || got[2] != "therapy" {
		t.Errorf("Search(The) = %v", got)
	}
	if got := d.Search("zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %v, want none", got)
	}

	if _, err := d.Add(context.Background(), "thesis"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := d.Search("thes"); len(got) != 1 || got[0] != "thesis" {
		t.Errorf("Search after Add = %v", got)
	}
}

func TestNear(t *testing.T) {
	d := New([]string{"sat", "set", "mat", "saturday", "cat", "sit", "a"}, nil, nil)

	got := d.Near("sut", 1)
	want := []string{"sat", "set", "sit"}
	if len(got) != len(want) {
		t.Fatalf("Near(sut, 1) = %v, want %v", got, want)
	}
	for i, m := range got {
		if m.Word != want[i] || m.Distance != 1 {
			t.Errorf("match %d = %+v, want {%s 1}", i, m, want[i])
		}
	}

	for _, m := range d.Near("sut", 3) {
		if m.Word == "saturday" {
			t.Error("saturday is five edits away and must not match")
		}
	}
}
