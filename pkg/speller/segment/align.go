package segment

import (
	"strings"
	"unicode/utf8"
)

// Span is a token and its half-open [Start, End) range in the source text.
// A token that could not be located has Start == End == -1.
type Span struct {
	Text  string
	Start int
	End   int
}

// Valid reports whether the span points into the source text.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Align locates tokens in text, scanning forward from byte offset from. The
// cursor never moves backwards, so spans come out in token order and never
// overlap. It returns the spans (byte offsets) and the final cursor.
func Align(text string, tokens []string, from int) ([]Span, int) {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		from = len(text)
	}

	spans := make([]Span, 0, len(tokens))
	cursor := from
	for _, tok := range tokens {
		idx := indexFrom(text, tok, cursor)
		if idx < 0 {
			spans = append(spans, Span{Text: tok, Start: -1, End: -1})
			continue
		}
		end := idx + len(tok)
		spans = append(spans, Span{Text: tok, Start: idx, End: end})
		cursor = end
	}
	return spans, cursor
}

func indexFrom(text, tok string, from int) int {
	if tok == "" {
		return -1
	}
	if i := strings.Index(text[from:], tok); i >= 0 {
		return from + i
	}
	return -1
}

// RuneCounter converts ascending byte offsets of one string to rune offsets
// in a single forward pass.
type RuneCounter struct {
	text  string
	byteN int
	runeN int
}

// NewRuneCounter starts counting at the beginning of text.
func NewRuneCounter(text string) *RuneCounter {
	return &RuneCounter{text: text}
}

// Offset returns the rune offset of byte offset b. Offsets below the last one
// asked for are recounted from the start.
func (c *RuneCounter) Offset(b int) int {
	if b < c.byteN {
		c.byteN, c.runeN = 0, 0
	}
	if b > len(c.text) {
		b = len(c.text)
	}
	c.runeN += utf8.RuneCountInString(c.text[c.byteN:b])
	c.byteN = b
	return c.runeN
}
