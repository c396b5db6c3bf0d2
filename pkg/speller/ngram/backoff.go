package ngram

// Estimator is one stage of a backoff chain. Estimate returns a raw
// conditional frequency, 0 meaning "no estimate at this order". Reduce maps
// the key onto the key the next, lower-order stage is asked about.
type Estimator interface {
	Name() string
	Estimate(k Key) float64
	Reduce(k Key) Key
}

// Chain tries its stages in order and multiplies by the backoff factor each
// time it falls through. The smoothed unigram base always yields a positive
// probability, so every n-gram gets a defined log score.
//
// A stage that computes exactly 0 falls through just like one whose
// conditioning count is 0: a trained zero and an unseen n-gram are treated
// the same.
type Chain struct {
	stages  []Estimator
	base    *Unigram
	backoff float64
}

// Score walks the chain.
func (c Chain) Score(k Key) Prob {
	factor := 1.0
	for _, s := range c.stages {
		if p := s.Estimate(k); p > 0 {
			return newProb(factor * p)
		}
		factor *= c.backoff
		k = s.Reduce(k)
	}
	return newProb(factor * c.base.Score(k).P)
}

// Stages returns the stage names in the order they are tried.
func (c Chain) Stages() []string {
	names := make([]string, 0, len(c.stages)+1)
	for _, s := range c.stages {
		names = append(names, s.Name())
	}
	return append(names, "unigram")
}

// LeftConditional estimates count(w1,w2) / count(w1).
type LeftConditional struct {
	Joint *Counts // bigram counts
	Cond  *Counts // unigram counts
}

func (e LeftConditional) Name() string { return "bigram" }

func (e LeftConditional) Estimate(k Key) float64 {
	return ratio(e.Joint.Get(Bi(k[0], k[1])), e.Cond.Get(Uni(k[0])))
}

func (e LeftConditional) Reduce(k Key) Key { return Uni(k[1]) }

// RightConditional estimates count(w1,w2) / count(w2).
type RightConditional struct {
	Joint *Counts // bigram counts
	Cond  *Counts // unigram counts
}

func (e RightConditional) Name() string { return "right-bigram" }

func (e RightConditional) Estimate(k Key) float64 {
	return ratio(e.Joint.Get(Bi(k[0], k[1])), e.Cond.Get(Uni(k[1])))
}

func (e RightConditional) Reduce(k Key) Key { return Uni(k[1]) }

// TrigramConditional estimates count(w1,w2,w3) / count(w1,w2).
type TrigramConditional struct {
	Joint *Counts // trigram counts
	Cond  *Counts // bigram counts
}

func (e TrigramConditional) Name() string { return "trigram" }

func (e TrigramConditional) Estimate(k Key) float64 {
	return ratio(e.Joint.Get(k), e.Cond.Get(Bi(k[0], k[1])))
}

func (e TrigramConditional) Reduce(k Key) Key { return Bi(k[1], k[2]) }

func ratio(joint, cond int64) float64 {
	if cond <= 0 {
		return 0
	}
	return float64(joint) / float64(cond)
}
