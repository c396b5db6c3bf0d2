// Package candidate proposes ranked replacements for a misspelled token.
package candidate

import (
	"sort"

	"github.com/cognicore/speller/pkg/speller/dictionary"
	"github.com/cognicore/speller/pkg/speller/ngram"
	"github.com/cognicore/speller/pkg/speller/phonetic"
)

// MaxEditDistance bounds the dictionary search. Words further away are
// never proposed.
const MaxEditDistance = 3

// DefaultThreshold is the context log-probability floor.
const DefaultThreshold = -12.0

// DefaultLimit caps the shortlist length.
const DefaultLimit = 10

// Pool is the candidate source. *dictionary.Dictionary satisfies it.
type Pool interface {
	Near(token string, max int) []dictionary.Match
}

// Scorer scores a context. *ngram.Models satisfies it.
type Scorer interface {
	ContextScore(w ngram.Weights, c ngram.Context) float64
}

// RankWeights weigh the terms of the ranking cost.
type RankWeights struct {
	EditDistance    float64 `yaml:"edit_distance"`
	DoubleMetaphone float64 `yaml:"double_metaphone"`
	ContextScore    float64 `yaml:"context_score"`
}

// DefaultRankWeights returns 1 / 1 / 0.5.
func DefaultRankWeights() RankWeights {
	return RankWeights{EditDistance: 1, DoubleMetaphone: 1, ContextScore: 0.5}
}

// Cost is lower for better candidates. The context term is subtracted so a
// likelier fit lowers the cost.
func (w RankWeights) Cost(c Candidate) float64 {
	return w.DoubleMetaphone*float64(c.PhoneticDistance) +
		w.EditDistance*float64(c.EditDistance) -
		w.ContextScore*c.ContextScore
}

// Candidate is one scored replacement.
type Candidate struct {
	Term             string  `json:"term"`
	EditDistance     int     `json:"edit_distance"`
	PhoneticDistance int     `json:"phonetic_distance"`
	ContextScore     float64 `json:"context_score"`
	Cost             float64 `json:"cost"`
}

// Options configures a Generator. A Limit below 1 selects DefaultLimit.
type Options struct {
	Context   ngram.Weights
	Rank      RankWeights
	Threshold float64
	Limit     int
}

// DefaultOptions returns the standard weights, threshold and limit.
func DefaultOptions() Options {
	return Options{
		Context:   ngram.DefaultWeights(),
		Rank:      DefaultRankWeights(),
		Threshold: DefaultThreshold,
		Limit:     DefaultLimit,
	}
}

// Generator is read-only after construction and safe for concurrent use.
type Generator struct {
	pool   Pool
	scorer Scorer
	opts   Options
}

// NewGenerator returns a generator over pool scored by scorer.
func NewGenerator(pool Pool, scorer Scorer, opts Options) *Generator {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &Generator{pool: pool, scorer: scorer, opts: opts}
}

// Options returns the generator configuration.
func (g *Generator) Options() Options { return g.opts }

// Formulate returns up to Limit replacement terms for token, best first.
// ctx is the token's own context; each candidate is substituted into it.
func (g *Generator) Formulate(token string, ctx ngram.Context) []string {
	scored := g.FormulateScored(token, ctx)
	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.Term
	}
	return out
}

// FormulateScored is Formulate with the individual scores kept.
func (g *Generator) FormulateScored(token string, ctx ngram.Context) []Candidate {
	matches := g.pool.Near(token, MaxEditDistance)

	kept := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		score := g.scorer.ContextScore(g.opts.Context, ctx.Substitute(m.Word))
		if score < g.opts.Threshold {
			continue
		}
		kept = append(kept, Candidate{Term: m.Word, EditDistance: m.Distance, ContextScore: score})
	}
	if len(kept) == 0 {
		return nil
	}

	code := phonetic.DoubleMetaphone(token)
	for i := range kept {
		kept[i].PhoneticDistance = phonetic.CodeDistance(code, phonetic.DoubleMetaphone(kept[i].Term))
		kept[i].Cost = g.opts.Rank.Cost(kept[i])
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Cost < kept[j].Cost })
	if len(kept) > g.opts.Limit {
		kept = kept[:g.opts.Limit]
	}
	return kept
}
