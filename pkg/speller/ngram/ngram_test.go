package ngram

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/speller/pkg/speller/internalerr"
)

const catCorpus = "The cat sat on the mat."

func mustBuild(t *testing.T, corpus string) *Models {
	t.Helper()
	m, err := Build(corpus, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestUnigramLaplace(t *testing.T) {
	m := mustBuild(t, catCorpus)

	// N=6 tokens, V=5 distinct -> denominator 11; "the" occurs twice
	tests := []struct {
		token string
		want  float64
	}{
		{"the", 3.0 / 11},
		{"cat", 2.0 / 11},
		{"unseen", 1.0 / 11},
	}
	for _, tt := range tests {
		got := m.Unigram.Prob(tt.token)
		if !approx(got.P, tt.want) {
			t.Errorf("P(%s) = %v, want %v", tt.token, got.P, tt.want)
		}
		if got.LogP != math.Log(got.P) {
			t.Errorf("LogP(%s) = %v, want ln(P) = %v", tt.token, got.LogP, math.Log(got.P))
		}
		if got.P <= 0 || got.P > 1 {
			t.Errorf("P(%s) = %v outside (0,1]", tt.token, got.P)
		}
	}
}

func TestCountsArePerSentence(t *testing.T) {
	m := mustBuild(t, "The cat sat. A dog ran.")
	bi := m.BigramCounts()

	if n := bi.Get(Bi("sat", "a")); n != 0 {
		t.Errorf("bigram crossing a sentence boundary counted %d times", n)
	}
	if n := bi.Get(Bi("sat", EndToken)); n != 1 {
		t.Errorf("count(sat, </s>) = %d, want 1", n)
	}
	if n := bi.Get(Bi(StartToken, "a")); n != 1 {
		t.Errorf("count(<s>, a) = %d, want 1", n)
	}
	tri := m.TrigramCounts()
	if n := tri.Get(Tri(StartToken, StartToken, "the")); n != 1 {
		t.Errorf("count(<s>, <s>, the) = %d, want 1", n)
	}
	if n := tri.Get(Tri("ran", EndToken, EndToken)); n != 1 {
		t.Errorf("count(ran, </s>, </s>) = %d, want 1", n)
	}
}

func TestBigramBackoff(t *testing.T) {
	m := mustBuild(t, catCorpus)

	if got := m.Bigram.Prob("the", "cat").P; !approx(got, 0.5) {
		t.Errorf("P(cat|the) = %v, want 0.5", got)
	}

	// Zero joint count backs off to the unigram of the second word
	if got := m.Bigram.Prob("cat", "dog").P; !approx(got, 0.4*m.Unigram.Prob("dog").P) {
		t.Errorf("P(dog|cat) = %v, want 0.4*P(dog)", got)
	}

	// Sentence start: <s> has no unigram count, so it always backs off
	got := m.Bigram.Prob(StartToken, "the")
	if !approx(got.P, 0.4*3.0/11) {
		t.Errorf("P(the|<s>) = %v, want %v", got.P, 0.4*3.0/11)
	}
	if got.LogP != math.Log(got.P) {
		t.Error("log probability must be ln(P)")
	}
}

func TestRightBigram(t *testing.T) {
	m := mustBuild(t, catCorpus)

	if got := m.RightBigram.Prob("cat", "sat").P; !approx(got, 1) {
		t.Errorf("right P(cat,sat) = %v, want 1", got)
	}
	// count(on, the)=1 and the conditioning count is count(the)=2
	if got := m.RightBigram.Prob("on", "the").P; !approx(got, 0.5) {
		t.Errorf("right P(on,the) = %v, want 0.5", got)
	}
	if got := m.RightBigram.Prob("mat", EndToken).P; !approx(got, 0.4*m.Unigram.Unknown().P) {
		t.Errorf("right P(mat,</s>) = %v, want 0.4*unknown", got)
	}
}

func TestTrigramBackoffChain(t *testing.T) {
	m := mustBuild(t, catCorpus)

	if got := m.Trigram.Prob("the", "cat", "sat").P; !approx(got, 1) {
		t.Errorf("P(sat|the,cat) = %v, want 1", got)
	}

	// Unseen conditioning bigram -> 0.4 * P(sat|cat)
	if got := m.Trigram.Prob("dog", "cat", "sat").P; !approx(got, 0.4*m.Bigram.Prob("cat", "sat").P) {
		t.Errorf("P(sat|dog,cat) = %v, want 0.4*P(sat|cat)", got)
	}

	// Two levels of backoff -> 0.4 * 0.4 * P(sat)
	if got := m.Trigram.Prob("dog", "cow", "sat").P; !approx(got, 0.16*m.Unigram.Prob("sat").P) {
		t.Errorf("P(sat|dog,cow) = %v, want 0.16*P(sat)", got)
	}

	// (<s>, <s>) is never a counted bigram, so sentence-initial trigrams back off
	if got := m.Trigram.Prob(StartToken, StartToken, "the").P; !approx(got, 0.4*m.Bigram.Prob(StartToken, "the").P) {
		t.Errorf("P(the|<s>,<s>) = %v, want 0.4*P(the|<s>)", got)
	}
}

func TestStagesOrder(t *testing.T) {
	m := mustBuild(t, catCorpus)

	if got, want := m.Trigram.Stages(), []string{"trigram", "bigram", "unigram"}; !reflect.DeepEqual(got, want) {
		t.Errorf("trigram stages = %v, want %v", got, want)
	}
	if got, want := m.Bigram.Stages(), []string{"bigram", "unigram"}; !reflect.DeepEqual(got, want) {
		t.Errorf("bigram stages = %v, want %v", got, want)
	}
	if got, want := m.RightBigram.Stages(), []string{"right-bigram", "unigram"}; !reflect.DeepEqual(got, want) {
		t.Errorf("right bigram stages = %v, want %v", got, want)
	}
}

func TestScoresAlwaysPositive(t *testing.T) {
	m := mustBuild(t, catCorpus)
	words := []string{StartToken, EndToken, "the", "cat", "zebra", ""}

	var scorers = []Scorer{m.Unigram, m.Bigram, m.RightBigram, m.Trigram}
	for _, s := range scorers {
		for _, a := range words {
			for _, b := range words {
				for _, c := range words {
					p := s.Score(Tri(a, b, c))
					if p.P <= 0 || p.P > 1 || math.IsInf(p.LogP, 0) || math.IsNaN(p.LogP) {
						t.Fatalf("%T.Score(%q,%q,%q) = %+v", s, a, b, c, p)
					}
				}
			}
		}
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	for _, corpus := range []string{"", "   ", "... !!! --"} {
		m, err := Build(corpus, Options{})
		if !errors.Is(err, internalerr.ErrEmptyCorpus) {
			t.Errorf("Build(%q) error = %v, want ErrEmptyCorpus", corpus, err)
		}
		if m != nil {
			t.Errorf("Build(%q) returned a partial model", corpus)
		}
	}
}

func TestBuildInvalidOptions(t *testing.T) {
	if _, err := Build(catCorpus, Options{Backoff: 1.5}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("backoff 1.5: error = %v, want ErrInvalidConfig", err)
	}
	if _, err := Build(catCorpus, Options{Smoothing: -1}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("smoothing -1: error = %v, want ErrInvalidConfig", err)
	}
}

func TestContextsAlignment(t *testing.T) {
	ctx := Contexts([]string{"a", "b", "c"})

	want := []Context{
		{Bigram: Bi(StartToken, "a"), RightBigram: Bi("a", "b"), Trigram: Tri(StartToken, StartToken, "a")},
		{Bigram: Bi("a", "b"), RightBigram: Bi("b", "c"), Trigram: Tri(StartToken, "a", "b")},
		{Bigram: Bi("b", "c"), RightBigram: Bi("c", EndToken), Trigram: Tri("a", "b", "c")},
	}
	if !reflect.DeepEqual(ctx, want) {
		t.Errorf("Contexts = %+v, want %+v", ctx, want)
	}

	sub := ctx[1].Substitute("x")
	if sub.Bigram != Bi("a", "x") || sub.RightBigram != Bi("x", "c") || sub.Trigram != Tri(StartToken, "a", "x") {
		t.Errorf("Substitute = %+v", sub)
	}
}

func TestContextScore(t *testing.T) {
	m := mustBuild(t, catCorpus)
	w := DefaultWeights()
	ctx := Contexts([]string{"the", "cat", "sat", "on", "the", "mat"})

	good := m.ContextScore(w, ctx[2])
	bad := m.ContextScore(w, ctx[2].Substitute("mat"))
	if good <= bad {
		t.Errorf("context score of trained word %v should beat %v", good, bad)
	}

	want := 0.30*m.Bigram.Prob("cat", "sat").LogP +
		0.15*m.RightBigram.Prob("sat", "on").LogP +
		0.55*m.Trigram.Prob("the", "cat", "sat").LogP
	if !approx(good, want) {
		t.Errorf("ContextScore = %v, want %v", good, want)
	}
}

func TestVocabularySkipsNumeric(t *testing.T) {
	m := mustBuild(t, "In 1990 the cat sat.")
	got := m.Vocabulary()
	want := []string{"cat", "in", "sat", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary = %v, want %v", got, want)
	}
}
