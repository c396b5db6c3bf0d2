package report

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/speller/pkg/speller/detect"
	"github.com/cognicore/speller/pkg/speller/internalerr"
)

// Builder stamps detection results with run identifiers
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Report is the outcome of checking one text
type Report struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	CharCount  int             `json:"char_count"`
	ErrorCount int             `json:"error_count"`
	NonWord    []detect.Record `json:"non_word_errors"`
	RealWord   []detect.Record `json:"real_word_errors"`
}

// Build wraps res in a report with a fresh ULID
func (b *Builder) Build(text string, res detect.Result) Report {
	now := time.Now().UTC()

	b.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	return Report{
		ID:         id,
		CreatedAt:  now,
		CharCount:  utf8.RuneCountInString(text),
		ErrorCount: res.Len(),
		NonWord:    res.NonWord,
		RealWord:   res.RealWord,
	}
}

// Find returns the record with the given id.
func (r Report) Find(id string) (detect.Record, bool) {
	for _, list := range [][]detect.Record{r.NonWord, r.RealWord} {
		for _, rec := range list {
			if rec.ID == id {
				return rec, true
			}
		}
	}
	return detect.Record{}, false
}

// Apply replaces the rune range of rec in text with replacement.
func Apply(text string, rec detect.Record, replacement string) (string, error) {
	runes := []rune(text)
	if rec.Start < 0 || rec.End <= rec.Start || rec.End > len(runes) {
		return "", fmt.Errorf("record %s range [%d,%d) outside text: %w", rec.ID, rec.Start, rec.End, internalerr.ErrInvalidInput)
	}
	return string(runes[:rec.Start]) + replacement + string(runes[rec.End:]), nil
}

// Corrected applies the top candidate of every record that has one. Records
// are applied from the end of the text backwards so earlier ranges stay
// valid.
func (r Report) Corrected(text string) (string, error) {
	recs := make([]detect.Record, 0, r.ErrorCount)
	for _, list := range [][]detect.Record{r.NonWord, r.RealWord} {
		for _, rec := range list {
			if len(rec.Candidates) > 0 {
				recs = append(recs, rec)
			}
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Start > recs[j].Start })

	var err error
	for _, rec := range recs {
		if text, err = Apply(text, rec, rec.Candidates[0]); err != nil {
			return "", err
		}
	}
	return text, nil
}
