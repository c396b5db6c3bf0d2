package speller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/speller/pkg/speller/config"
	"github.com/cognicore/speller/pkg/speller/corpus"
	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
	"github.com/cognicore/speller/pkg/speller/store/memstore"
)

const trainingText = "The patient felt anxiety before therapy. Cognitive therapy reduced the anxiety. " +
	"The therapist listened to the patient."

func newSpeller(t *testing.T) (*Speller, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	s, err := New(context.Background(), Options{Corpus: trainingText, Store: st, General: []string{"Hello", "world"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, st
}

func TestNew_BootstrapsThenReloads(t *testing.T) {
	ctx := context.Background()
	s, st := newSpeller(t)
	if !s.Bootstrapped {
		t.Error("first run should bootstrap the dictionaries")
	}

	domain, err := st.Words(ctx, store.Domain)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(domain) != len(s.Models().Vocabulary()) {
		t.Errorf("domain list %v does not match the model vocabulary", domain)
	}
	if !s.Dictionary().Contains("hello") {
		t.Error("general words should be lower-cased into the combined list")
	}

	again, err := New(ctx, Options{Corpus: trainingText, Store: st})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if again.Bootstrapped {
		t.Error("second run should load the persisted dictionaries")
	}
}

func TestNew_Rebuild(t *testing.T) {
	ctx := context.Background()
	_, st := newSpeller(t)

	s, err := New(ctx, Options{Corpus: "Dogs bark loudly.", Store: st, Rebuild: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Bootstrapped {
		t.Error("rebuild should report a bootstrap")
	}
	if s.Dictionary().ContainsDomain("therapist") {
		t.Error("rebuild kept words from the previous corpus")
	}
	if !s.Dictionary().ContainsDomain("dogs") {
		t.Error("rebuild missed words from the new corpus")
	}
}

func TestNew_EmptyCorpus(t *testing.T) {
	_, err := New(context.Background(), Options{Corpus: " ... ", Store: memstore.New()})
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ranking.Candidates = 0
	_, err := New(context.Background(), Options{Corpus: trainingText, Store: memstore.New(), Config: &cfg})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	s, _ := newSpeller(t)

	rep, err := s.Check(context.Background(), "The patient felt anxeity before therapy.")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.ID == "" {
		t.Error("report should carry an id")
	}
	if len(rep.NonWord) != 1 {
		t.Fatalf("expected one non-word error, got %+v", rep.NonWord)
	}
	rec := rep.NonWord[0]
	if rec.Token != "anxeity" || rec.ID != "NON_WORD_0" {
		t.Errorf("unexpected record %+v", rec)
	}
	if len(rec.Candidates) == 0 || rec.Candidates[0] != "anxiety" {
		t.Errorf("expected anxiety first, got %v", rec.Candidates)
	}

	fixed, err := rep.Corrected("The patient felt anxeity before therapy.")
	if err != nil {
		t.Fatalf("Corrected: %v", err)
	}
	if fixed != "The patient felt anxiety before therapy." {
		t.Errorf("Corrected = %q", fixed)
	}
}

func TestAddWord(t *testing.T) {
	ctx := context.Background()
	s, st := newSpeller(t)

	rep, _ := s.Check(ctx, "The patient felt anxeity.")
	if len(rep.NonWord) != 1 {
		t.Fatalf("expected anxeity flagged, got %+v", rep.NonWord)
	}

	added, err := s.AddWord(ctx, "Anxeity")
	if err != nil || !added {
		t.Fatalf("AddWord = %v, %v", added, err)
	}
	added, err = s.AddWord(ctx, "anxeity")
	if err != nil || added {
		t.Fatalf("repeat AddWord = %v, %v", added, err)
	}

	rep, _ = s.Check(ctx, "The patient felt anxeity.")
	if len(rep.NonWord) != 0 {
		t.Errorf("added word still flagged: %+v", rep.NonWord)
	}

	combined, _ := st.Words(ctx, store.Combined)
	found := false
	for _, w := range combined {
		if w == "anxeity" {
			found = true
		}
	}
	if !found {
		t.Error("added word not persisted")
	}
}

func TestSuggest(t *testing.T) {
	s, _ := newSpeller(t)

	got := s.Suggest("Theraphy")
	if len(got) == 0 || got[0].Term != "therapy" {
		t.Fatalf("expected therapy first, got %+v", got)
	}
	if got[0].EditDistance != 1 {
		t.Errorf("edit distance = %d, want 1", got[0].EditDistance)
	}
	if s.Suggest("!!!") != nil {
		t.Error("punctuation has no suggestions")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw")
	if err := os.MkdirAll(raw, 0o755); err != nil {
		t.Fatal(err)
	}
	book := "Contents. Part One. Part One. " + trainingText + " THE END"
	if err := os.WriteFile(filepath.Join(raw, "book.txt"), []byte(book), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Corpus.RawDir = raw
	cfg.Corpus.ProcessedDir = filepath.Join(dir, "processed")
	cfg.Corpus.Sources = []corpus.Source{{File: "book.txt", StartMarker: `part one\.`, EndMarker: "THE END", Cache: "book.txt"}}
	cfg.Dictionary.Dir = filepath.Join(dir, "Dictionary")

	s, err := Open(context.Background(), &cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if !s.Dictionary().ContainsDomain("therapist") {
		t.Error("domain dictionary should come from the corpus")
	}
	if _, err := os.Stat(filepath.Join(dir, "Dictionary", "dictionary.txt")); err != nil {
		t.Errorf("combined list not written: %v", err)
	}
}

func TestSearch(t *testing.T) {
	s, _ := newSpeller(t)
	got := s.Search("ther")
	if len(got) != 2 || got[0] != "therapist" || got[1] != "therapy" {
		t.Errorf("Search(ther) = %v", got)
	}
}
