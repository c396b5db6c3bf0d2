package ngram

import (
	"fmt"
	"sort"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/normalize"
	"github.com/cognicore/speller/pkg/speller/segment"
)

// Options configures model construction.
type Options struct {
	Smoothing float64           // add-α constant, default 1
	Backoff   float64           // stupid-backoff factor, default 0.4
	Segmenter segment.Segmenter // default segment.NewRules()
}

// Models holds the four scoring models built from one corpus. It is
// read-only after Build and safe to share between goroutines.
type Models struct {
	Unigram     *Unigram
	Bigram      *Bigram
	RightBigram *RightBigram
	Trigram     *Trigram

	bigrams  *Counts
	trigrams *Counts
}

// Build trains all models from a cleaned corpus. Each sentence is tokenized
// and normalized on its own and padded separately. An empty corpus is an
// error; no partial model is returned.
func Build(corpus string, opts Options) (*Models, error) {
	if opts.Smoothing == 0 {
		opts.Smoothing = DefaultSmoothing
	}
	if opts.Backoff == 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Backoff < 0 || opts.Backoff > 1 {
		return nil, fmt.Errorf("backoff %v: %w", opts.Backoff, internalerr.ErrInvalidConfig)
	}
	if opts.Segmenter == nil {
		opts.Segmenter = segment.NewRules()
	}

	bigrams := NewCounts(2)
	trigrams := NewCounts(3)
	var tokens []string

	for _, sentence := range opts.Segmenter.Sentences(corpus) {
		cleaned := normalize.Tokens(opts.Segmenter.Words(sentence))
		if len(cleaned) == 0 {
			continue
		}
		tokens = append(tokens, cleaned...)
		bigrams.AddSentence(cleaned)
		trigrams.AddSentence(cleaned)
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("build models: %w", internalerr.ErrEmptyCorpus)
	}

	uni, err := NewUnigram(tokens, opts.Smoothing)
	if err != nil {
		return nil, fmt.Errorf("build models: %w", err)
	}

	return &Models{
		Unigram:     uni,
		Bigram:      NewBigram(bigrams, uni, opts.Backoff),
		RightBigram: NewRightBigram(bigrams, uni, opts.Backoff),
		Trigram:     NewTrigram(trigrams, bigrams, uni, opts.Backoff),
		bigrams:     bigrams,
		trigrams:    trigrams,
	}, nil
}

// BigramCounts returns the padded bigram count table.
func (m *Models) BigramCounts() *Counts { return m.bigrams }

// TrigramCounts returns the padded trigram count table.
func (m *Models) TrigramCounts() *Counts { return m.trigrams }

// Vocabulary returns the distinct trained tokens in sorted order, excluding
// the numeric placeholder.
func (m *Models) Vocabulary() []string {
	vocab := make([]string, 0, m.Unigram.counts.Len())
	for k := range m.Unigram.counts.table {
		if normalize.IsNumeric(k[0]) {
			continue
		}
		vocab = append(vocab, k[0])
	}
	sort.Strings(vocab)
	return vocab
}

// Weights blends the three context models into one score.
type Weights struct {
	Bigram      float64 `yaml:"bigram"`
	RightBigram float64 `yaml:"right_bigram"`
	Trigram     float64 `yaml:"trigram"`
}

// DefaultWeights returns 0.30 / 0.15 / 0.55.
func DefaultWeights() Weights {
	return Weights{Bigram: 0.30, RightBigram: 0.15, Trigram: 0.55}
}

// Context is the n-gram neighbourhood of one token position: the bigram
// ending at it, the bigram starting at it, and the trigram ending at it.
type Context struct {
	Bigram      Key // (prev, token)
	RightBigram Key // (token, next)
	Trigram     Key // (prev2, prev, token)
}

// Substitute returns the context with the token position replaced by word.
func (c Context) Substitute(word string) Context {
	return Context{
		Bigram:      Bi(c.Bigram[0], word),
		RightBigram: Bi(word, c.RightBigram[1]),
		Trigram:     Tri(c.Trigram[0], c.Trigram[1], word),
	}
}

// Contexts builds the context of every position of a sentence, aligned
// index-for-index with tokens.
func Contexts(tokens []string) []Context {
	bigrams := Windows(Pad(tokens, 2), 2)
	trigrams := Windows(Pad(tokens, 3), 3)

	out := make([]Context, len(tokens))
	for i := range tokens {
		out[i] = Context{
			Bigram:      bigrams[i],
			RightBigram: bigrams[i+1],
			Trigram:     trigrams[i],
		}
	}
	return out
}

// ContextScore is the weighted sum of the log probabilities of the three
// context n-grams. Higher means a better fit.
func (m *Models) ContextScore(w Weights, c Context) float64 {
	return w.Bigram*m.Bigram.Score(c.Bigram).LogP +
		w.RightBigram*m.RightBigram.Score(c.RightBigram).LogP +
		w.Trigram*m.Trigram.Score(c.Trigram).LogP
}
