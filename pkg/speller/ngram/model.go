package ngram

import (
	"fmt"
	"math"

	"github.com/cognicore/speller/pkg/speller/internalerr"
)

// Defaults for model construction.
const (
	DefaultSmoothing = 1.0
	DefaultBackoff   = 0.4
)

// Prob is a probability with its natural log. P is always > 0.
type Prob struct {
	P    float64
	LogP float64
}

func newProb(p float64) Prob {
	return Prob{P: p, LogP: math.Log(p)}
}

// Scorer scores an n-gram. All models (any order, left or right
// conditioned) implement it.
type Scorer interface {
	Score(k Key) Prob
}

// Unigram is an add-α smoothed unigram model:
//
//	P(t) = (count(t) + α) / (N + α·V)
//
// where N is the token count and V the vocabulary size. Unseen tokens share
// the count=0 probability.
type Unigram struct {
	counts    *Counts
	smoothing float64
	table     map[string]Prob
	unknown   Prob
}

// NewUnigram builds the unigram model over a token stream.
func NewUnigram(tokens []string, smoothing float64) (*Unigram, error) {
	if smoothing <= 0 {
		return nil, fmt.Errorf("smoothing %v: %w", smoothing, internalerr.ErrInvalidConfig)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("unigram model: %w", internalerr.ErrEmptyCorpus)
	}

	counts := NewCounts(1)
	for _, t := range tokens {
		counts.Add(Uni(t))
	}

	denom := float64(counts.Total()) + smoothing*float64(counts.Len())
	table := make(map[string]Prob, counts.Len())
	for k, n := range counts.table {
		table[k[0]] = newProb((float64(n) + smoothing) / denom)
	}

	return &Unigram{
		counts:    counts,
		smoothing: smoothing,
		table:     table,
		unknown:   newProb(smoothing / denom),
	}, nil
}

// Score implements Scorer using k[0].
func (u *Unigram) Score(k Key) Prob {
	return u.Prob(k[0])
}

// Prob returns the smoothed probability of a token.
func (u *Unigram) Prob(token string) Prob {
	if p, ok := u.table[token]; ok {
		return p
	}
	return u.unknown
}

// Unknown returns the probability shared by unseen tokens.
func (u *Unigram) Unknown() Prob { return u.unknown }

// Counts returns the raw unigram counts.
func (u *Unigram) Counts() *Counts { return u.counts }

// Count returns the raw count of a token.
func (u *Unigram) Count(token string) int64 {
	return u.counts.Get(Uni(token))
}

// Bigram is P(w2 | w1) with stupid backoff to the unigram model of w2.
type Bigram struct{ chain Chain }

// NewBigram builds a left-conditioned bigram model.
func NewBigram(bigrams *Counts, uni *Unigram, backoff float64) *Bigram {
	return &Bigram{chain: Chain{
		stages:  []Estimator{LeftConditional{Joint: bigrams, Cond: uni.Counts()}},
		base:    uni,
		backoff: backoff,
	}}
}

// Score implements Scorer.
func (b *Bigram) Score(k Key) Prob { return b.chain.Score(k) }

// Prob scores the bigram (w1, w2).
func (b *Bigram) Prob(w1, w2 string) Prob { return b.chain.Score(Bi(w1, w2)) }

// Stages names the backoff order.
func (b *Bigram) Stages() []string { return b.chain.Stages() }

// RightBigram scores how well w1 fits before w2: count(w1,w2) / count(w2),
// backing off to the unigram model of w2.
type RightBigram struct{ chain Chain }

// NewRightBigram builds a right-conditioned bigram model.
func NewRightBigram(bigrams *Counts, uni *Unigram, backoff float64) *RightBigram {
	return &RightBigram{chain: Chain{
		stages:  []Estimator{RightConditional{Joint: bigrams, Cond: uni.Counts()}},
		base:    uni,
		backoff: backoff,
	}}
}

// Score implements Scorer.
func (r *RightBigram) Score(k Key) Prob { return r.chain.Score(k) }

// Prob scores the bigram (w1, w2).
func (r *RightBigram) Prob(w1, w2 string) Prob { return r.chain.Score(Bi(w1, w2)) }

// Stages names the backoff order.
func (r *RightBigram) Stages() []string { return r.chain.Stages() }

// Trigram is P(w3 | w1, w2), backing off to the bigram P(w3 | w2) and then to
// the unigram P(w3).
type Trigram struct{ chain Chain }

// NewTrigram builds a trigram model.
func NewTrigram(trigrams, bigrams *Counts, uni *Unigram, backoff float64) *Trigram {
	return &Trigram{chain: Chain{
		stages: []Estimator{
			TrigramConditional{Joint: trigrams, Cond: bigrams},
			LeftConditional{Joint: bigrams, Cond: uni.Counts()},
		},
		base:    uni,
		backoff: backoff,
	}}
}

// Score implements Scorer.
func (t *Trigram) Score(k Key) Prob { return t.chain.Score(k) }

// Prob scores the trigram (w1, w2, w3).
func (t *Trigram) Prob(w1, w2, w3 string) Prob { return t.chain.Score(Tri(w1, w2, w3)) }

// Stages names the backoff order.
func (t *Trigram) Stages() []string { return t.chain.Stages() }
