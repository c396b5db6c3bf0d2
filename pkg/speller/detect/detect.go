// Package detect finds non-word and real-word spelling errors in free text.
package detect

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/cognicore/speller/pkg/speller/candidate"
	"github.com/cognicore/speller/pkg/speller/lemma"
	"github.com/cognicore/speller/pkg/speller/ngram"
	"github.com/cognicore/speller/pkg/speller/normalize"
	"github.com/cognicore/speller/pkg/speller/segment"
)

// Kind classifies an error record.
type Kind string

const (
	// NonWord marks a token that no dictionary knows.
	NonWord Kind = "NON_WORD"
	// RealWord marks a known word that does not fit its context.
	RealWord Kind = "REAL_WORD"
)

// Record is one detected error. Start and End are rune offsets into the
// checked text, half-open.
type Record struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Token      string   `json:"token"`
	Surface    string   `json:"surface"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Candidates []string `json:"candidates"`
}

// Result holds the records of one Detect call, each list in text order.
type Result struct {
	NonWord  []Record `json:"non_word_errors"`
	RealWord []Record `json:"real_word_errors"`
}

// Len returns the total number of records.
func (r Result) Len() int { return len(r.NonWord) + len(r.RealWord) }

// Lexicon answers dictionary membership. *dictionary.Dictionary satisfies it.
type Lexicon interface {
	Contains(word string) bool
}

// Scorer scores a token's context. *ngram.Models satisfies it.
type Scorer interface {
	ContextScore(w ngram.Weights, c ngram.Context) float64
}

// Suggester proposes replacements. *candidate.Generator satisfies it.
type Suggester interface {
	Formulate(token string, ctx ngram.Context) []string
}

// Options configures a Detector.
type Options struct {
	Weights   ngram.Weights
	Threshold float64
	// Workers bounds the sentences classified at once. Zero means GOMAXPROCS.
	Workers    int
	Segmenter  segment.Segmenter
	Lemmatizer lemma.Lemmatizer
}

// DefaultOptions returns the standard context weights and threshold.
func DefaultOptions() Options {
	return Options{
		Weights:   ngram.DefaultWeights(),
		Threshold: candidate.DefaultThreshold,
	}
}

// Detector is safe for concurrent use once built.
type Detector struct {
	lex     Lexicon
	scorer  Scorer
	suggest Suggester
	opts    Options
}

// New returns a detector. A nil Segmenter selects segment.NewRules and a nil
// Lemmatizer selects a Morphy lemmatizer backed by lex.
func New(lex Lexicon, scorer Scorer, suggest Suggester, opts Options) *Detector {
	if opts.Segmenter == nil {
		opts.Segmenter = segment.NewRules()
	}
	if opts.Lemmatizer == nil {
		opts.Lemmatizer = lemma.NewMorphy(lex.Contains)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Detector{lex: lex, scorer: scorer, suggest: suggest, opts: opts}
}

// finding is a classified token before ids and rune offsets are assigned.
type finding struct {
	kind       Kind
	token      string
	span       segment.Span
	candidates []string
}

// Detect checks text. It fails only when ctx is cancelled; anything the
// models cannot resolve shows up as fewer findings or empty candidate lists.
func (d *Detector) Detect(ctx context.Context, text string) (Result, error) {
	sentences := d.locate(text)

	out := make([][]finding, len(sentences))
	sem := make(chan struct{}, d.opts.Workers)
	var wg sync.WaitGroup
	for i := range sentences {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return Result{}, err
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = d.classify(sentences[i])
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	return d.merge(text, out), nil
}

// locate splits text into sentences and aligns every word with the text. The
// cursor runs across sentence boundaries so offsets never move backwards.
func (d *Detector) locate(text string) [][]segment.Span {
	var sentences [][]segment.Span
	cursor := 0
	for _, sentence := range d.opts.Segmenter.Sentences(text) {
		var spans []segment.Span
		spans, cursor = segment.Align(text, d.opts.Segmenter.Words(sentence), cursor)
		sentences = append(sentences, spans)
	}
	return sentences
}

// classify runs the per-token state machine over one sentence.
func (d *Detector) classify(spans []segment.Span) []finding {
	tokens := make([]string, 0, len(spans))
	kept := make([]segment.Span, 0, len(spans))
	for _, sp := range spans {
		if tok := normalize.Token(sp.Text); tok != "" {
			tokens = append(tokens, tok)
			kept = append(kept, sp)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var found []finding
	for i, c := range ngram.Contexts(tokens) {
		tok := tokens[i]
		switch {
		case normalize.IsNumeric(tok):
			continue
		case !d.lex.Contains(tok) && !d.lex.Contains(d.opts.Lemmatizer.Lemma(tok)):
			found = append(found, finding{kind: NonWord, token: tok, span: kept[i], candidates: d.suggest.Formulate(tok, c)})
		case d.scorer.ContextScore(d.opts.Weights, c) < d.opts.Threshold:
			found = append(found, finding{kind: RealWord, token: tok, span: kept[i], candidates: d.suggest.Formulate(tok, c)})
		}
	}
	return found
}

// merge walks the findings in sentence order, drops any whose span does not
// point into text, and numbers the rest from one shared counter.
func (d *Detector) merge(text string, sentences [][]finding) Result {
	res := Result{NonWord: []Record{}, RealWord: []Record{}}
	runes := segment.NewRuneCounter(text)
	id := 0
	for _, found := range sentences {
		for _, f := range found {
			sp := f.span
			if !sp.Valid() || sp.End > len(text) || text[sp.Start:sp.End] == "" {
				continue
			}
			rec := Record{
				ID:         fmt.Sprintf("%s_%d", f.kind, id),
				Kind:       f.kind,
				Token:      f.token,
				Surface:    text[sp.Start:sp.End],
				Start:      runes.Offset(sp.Start),
				End:        runes.Offset(sp.End),
				Candidates: f.candidates,
			}
			if rec.Candidates == nil {
				rec.Candidates = []string{}
			}
			id++
			if f.kind == NonWord {
				res.NonWord = append(res.NonWord, rec)
			} else {
				res.RealWord = append(res.RealWord, rec)
			}
		}
	}
	return res
}
