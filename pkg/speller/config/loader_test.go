package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderFileBackend(t *testing.T) {
	tmpDir := t.TempDir()
	words := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(words, []byte("Apple\nbanana\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Dictionary.Dir = filepath.Join(tmpDir, "Dictionary")
	cfg.Dictionary.GeneralWordlist = words

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Store.Close()

	if len(comp.General) != 2 || comp.General[0] != "Apple" {
		t.Errorf("general = %v", comp.General)
	}
	if _, err := os.Stat(cfg.Dictionary.Dir); err != nil {
		t.Errorf("dictionary dir not created: %v", err)
	}
}

func TestLoaderMemoryBackend(t *testing.T) {
	cfg := Default()
	cfg.Dictionary.Backend = BackendMemory

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Store == nil {
		t.Fatal("expected a store")
	}
	if comp.General != nil {
		t.Errorf("no general list configured, got %v", comp.General)
	}
}

func TestLoaderSQLiteBackend(t *testing.T) {
	cfg := Default()
	cfg.Dictionary.Backend = BackendSQLite
	cfg.Dictionary.SQLitePath = filepath.Join(t.TempDir(), "words.db")

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	comp.Store.Close()
}

func TestLoaderMissingWordList(t *testing.T) {
	cfg := Default()
	cfg.Dictionary.Backend = BackendMemory
	cfg.Dictionary.GeneralWordlist = filepath.Join(t.TempDir(), "missing.txt")

	if _, err := (&Loader{Config: &cfg}).Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing word list")
	}
}

func TestLemmatizerExceptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "irregular.yaml")
	content := `irregular:
  - lemma: criterion
    forms: [criteria]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Lemma.Exceptions = path
	m, err := cfg.Lemmatizer(nil)
	if err != nil {
		t.Fatalf("Lemmatizer: %v", err)
	}
	if got := m.Lemma("criteria"); got != "criterion" {
		t.Errorf("Lemma(criteria) = %q", got)
	}
}
