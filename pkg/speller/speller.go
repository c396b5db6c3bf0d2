// Package speller wires the corpus, n-gram models, dictionaries, candidate
// generator and detector into one engine.
package speller

import (
	"context"
	"fmt"

	"github.com/cognicore/speller/pkg/speller/candidate"
	"github.com/cognicore/speller/pkg/speller/config"
	"github.com/cognicore/speller/pkg/speller/detect"
	"github.com/cognicore/speller/pkg/speller/dictionary"
	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/ngram"
	"github.com/cognicore/speller/pkg/speller/normalize"
	"github.com/cognicore/speller/pkg/speller/report"
	"github.com/cognicore/speller/pkg/speller/segment"
	"github.com/cognicore/speller/pkg/speller/store"
)

// Speller is the spelling engine facade. Models are fixed once built; the
// dictionary only grows through AddWord. All methods are safe for
// concurrent use.
type Speller struct {
	store   store.WordStore
	models  *ngram.Models
	dict    *dictionary.Dictionary
	gen     *candidate.Generator
	det     *detect.Detector
	reports *report.Builder

	// Bootstrapped is true when the dictionaries were derived from the
	// corpus in this run rather than loaded from the store.
	Bootstrapped bool
}

// Options configures New.
type Options struct {
	// Corpus is the cleaned training text.
	Corpus string
	// Store persists the dictionaries. Required.
	Store store.WordStore
	// General is the general-purpose word list merged into the combined
	// dictionary on bootstrap.
	General []string
	// Config supplies weights and thresholds. Nil selects config.Default.
	Config *config.Config
	// Rebuild derives the dictionaries from the corpus even when the store
	// already holds them.
	Rebuild bool
}

// New trains the models and loads or bootstraps the dictionaries.
func New(ctx context.Context, opts Options) (*Speller, error) {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("speller: no word store: %w", internalerr.ErrInvalidInput)
	}

	seg := segment.NewRules()
	models, err := ngram.Build(opts.Corpus, ngram.Options{
		Smoothing: cfg.Model.Smoothing,
		Backoff:   cfg.Model.Backoff,
		Segmenter: seg,
	})
	if err != nil {
		return nil, err
	}

	var (
		dict  *dictionary.Dictionary
		built bool
	)
	if opts.Rebuild {
		dict, err = dictionary.Bootstrap(ctx, opts.Store, models.Vocabulary(), opts.General)
		built = true
	} else {
		dict, built, err = dictionary.LoadOrBootstrap(ctx, opts.Store, models.Vocabulary, opts.General)
	}
	if err != nil {
		return nil, err
	}

	lem, err := cfg.Lemmatizer(dict.Contains)
	if err != nil {
		return nil, err
	}

	gen := candidate.NewGenerator(dict, models, candidate.Options{
		Context:   cfg.Context.Weights,
		Rank:      cfg.Ranking.RankWeights,
		Threshold: cfg.Context.Threshold,
		Limit:     cfg.Ranking.Candidates,
	})
	det := detect.New(dict, models, gen, detect.Options{
		Weights:    cfg.Context.Weights,
		Threshold:  cfg.Context.Threshold,
		Workers:    cfg.Detect.Workers,
		Segmenter:  seg,
		Lemmatizer: lem,
	})

	return &Speller{
		store:        opts.Store,
		models:       models,
		dict:         dict,
		gen:          gen,
		det:          det,
		reports:      report.New(),
		Bootstrapped: built,
	}, nil
}

// Open builds the corpus and opens the store the configuration names, then
// calls New. logf receives corpus progress and may be nil.
func Open(ctx context.Context, cfg *config.Config, logf func(string, ...any)) (*Speller, error) {
	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		return nil, err
	}

	text, err := cfg.CorpusBuilder(logf).Build(ctx)
	if err != nil {
		comp.Store.Close()
		return nil, err
	}

	s, err := New(ctx, Options{Corpus: text, Store: comp.Store, General: comp.General, Config: cfg})
	if err != nil {
		comp.Store.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the word store.
func (s *Speller) Close() error {
	return s.store.Close()
}

// Check detects spelling errors in text and wraps them in a report.
func (s *Speller) Check(ctx context.Context, text string) (report.Report, error) {
	res, err := s.det.Detect(ctx, text)
	if err != nil {
		return report.Report{}, err
	}
	return s.reports.Build(text, res), nil
}

// Suggest ranks replacements for a single word with no surrounding context.
func (s *Speller) Suggest(word string) []candidate.Candidate {
	tok := normalize.Token(word)
	if tok == "" {
		return nil
	}
	return s.gen.FormulateScored(tok, ngram.Contexts([]string{tok})[0])
}

// AddWord accepts word into the combined dictionary. It reports false when
// the word was already known.
func (s *Speller) AddWord(ctx context.Context, word string) (bool, error) {
	return s.dict.Add(ctx, word)
}

// Dictionary exposes the dictionaries for listing and search.
func (s *Speller) Dictionary() *dictionary.Dictionary { return s.dict }

// Models exposes the trained n-gram models.
func (s *Speller) Models() *ngram.Models { return s.models }

// Search lists the combined words that start with prefix.
func (s *Speller) Search(prefix string) []string {
	return s.dict.Search(prefix)
}
