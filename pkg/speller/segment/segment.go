// Package segment splits text into sentences and word tokens and maps the
// tokens back onto the text they came from.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segmenter is the tokenization capability the models and the detector share.
// Implementations must be deterministic: training and detection rely on
// identical splits.
type Segmenter interface {
	Sentences(text string) []string
	Words(sentence string) []string
}

var defaultAbbreviations = []string{
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "etc", "fig", "no",
	"vol", "ch", "pp", "ed", "eds", "e.g", "i.e", "cf", "al", "approx", "dept",
}

// Rules is a rule-based Segmenter for English prose.
type Rules struct {
	abbreviations map[string]struct{}
}

// NewRules creates a rule-based segmenter. Extra abbreviations (without the
// trailing period) are added to the built-in list.
func NewRules(extra ...string) *Rules {
	abbr := make(map[string]struct{}, len(defaultAbbreviations)+len(extra))
	for _, a := range defaultAbbreviations {
		abbr[a] = struct{}{}
	}
	for _, a := range extra {
		abbr[strings.ToLower(strings.TrimSuffix(a, "."))] = struct{}{}
	}
	return &Rules{abbreviations: abbr}
}

// Sentences splits text on terminal punctuation followed by whitespace and an
// upper-case letter, digit or opening quote. Periods after abbreviations and
// single-letter initials do not end a sentence.
func (s *Rules) Sentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isTerminal(r) {
			i += size
			continue
		}

		// Swallow runs like "?!" or "..." and closing quotes/brackets
		end := i + size
		for end < len(text) {
			next, n := utf8.DecodeRuneInString(text[end:])
			if !isTerminal(next) && !isCloser(next) {
				break
			}
			end += n
		}

		if r == '.' && s.isAbbreviation(text[start:i]) {
			i = end
			continue
		}

		if !startsNewSentence(text[end:]) {
			i = end
			continue
		}

		if sentence := strings.TrimSpace(text[start:end]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
		i = end
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// Words splits a sentence into word and punctuation tokens. Every token is a
// verbatim substring of the sentence, so Align can always locate it.
func (s *Rules) Words(sentence string) []string {
	var tokens []string
	fields := strings.Fields(sentence)

	for fi, field := range fields {
		if isURL(field) {
			tokens = append(tokens, field)
			continue
		}

		// Leading openers
		for field != "" {
			r, size := utf8.DecodeRuneInString(field)
			if !isOpener(r) {
				break
			}
			tokens = append(tokens, field[:size])
			field = field[size:]
		}

		// Trailing punctuation, kept in order
		var trailing []string
		for field != "" {
			if strings.HasSuffix(field, "...") {
				trailing = append(trailing, "...")
				field = field[:len(field)-3]
				continue
			}
			r, size := utf8.DecodeLastRuneInString(field)
			if r == '.' {
				core := field[:len(field)-size]
				if fi < len(fields)-1 && (strings.Contains(core, ".") || s.isAbbreviation(core)) {
					break
				}
			} else if !isCloser(r) && !isTrailingMark(r) {
				break
			}
			trailing = append(trailing, field[len(field)-size:])
			field = field[:len(field)-size]
		}

		tokens = append(tokens, splitInner(field)...)
		for i := len(trailing) - 1; i >= 0; i-- {
			tokens = append(tokens, trailing[i])
		}
	}
	return tokens
}

// splitInner breaks a core word on joiners (hyphens, dashes, slashes) and then
// splits English contractions off each part.
func splitInner(word string) []string {
	var out []string
	last := 0
	for i, r := range word {
		if !isJoiner(r) {
			continue
		}
		out = append(out, splitContraction(word[last:i])...)
		out = append(out, string(r))
		last = i + utf8.RuneLen(r)
	}
	return append(out, splitContraction(word[last:])...)
}

var contractionSuffixes = []string{"n't", "n’t", "'s", "’s", "'re", "’re", "'ve", "’ve", "'ll", "’ll", "'d", "’d", "'m", "’m"}

func splitContraction(word string) []string {
	if word == "" {
		return nil
	}
	lower := strings.ToLower(word)
	for _, suffix := range contractionSuffixes {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			cut := len(word) - len(suffix)
			return []string{word[:cut], word[cut:]}
		}
	}
	return []string{word}
}

// isAbbreviation checks the word immediately before a period.
func (s *Rules) isAbbreviation(before string) bool {
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}
	word := strings.TrimLeftFunc(fields[len(fields)-1], func(r rune) bool { return isOpener(r) })
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return unicode.IsUpper(r)
	}
	_, ok := s.abbreviations[strings.ToLower(word)]
	return ok
}

func startsNewSentence(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return false
	}
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	next, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.IsUpper(next) || unicode.IsDigit(next) || isOpener(next)
}

func isURL(field string) bool {
	lower := strings.ToLower(field)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "www.")
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' || r == '…' }

func isOpener(r rune) bool {
	return strings.ContainsRune("\"'([{“‘`«", r)
}

func isCloser(r rune) bool {
	return strings.ContainsRune("\"')]}”’»", r)
}

func isTrailingMark(r rune) bool {
	return strings.ContainsRune(",;:!?…", r)
}

func isJoiner(r rune) bool {
	return r == '-' || r == '–' || r == '—' || r == '/'
}
