// Package normalize turns raw word tokens into the cleaned tokens the models
// and dictionaries are keyed by. Training, dictionary bootstrap and detection
// all go through Token, so their vocabularies cannot drift apart.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NumericToken replaces every token made only of digits.
const NumericToken = "<numeric_token>"

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// punctuation mirrors the ASCII punctuation set plus the typographic marks
// common in scanned books.
var punctuation = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" {
		set[string(r)] = struct{}{}
	}
	for _, p := range []string{"....", "--", "“", "”", "’", "‘", "€", "…", "–", "—", "``", "''"} {
		set[p] = struct{}{}
	}
	return set
}()

// IsPunctuation reports whether raw is a punctuation-only token.
func IsPunctuation(raw string) bool {
	_, ok := punctuation[raw]
	return ok
}

// Token cleans a single raw token. It returns "" when nothing meaningful is
// left, and NumericToken for pure numbers.
func Token(raw string) string {
	if raw == "" || IsPunctuation(raw) {
		return ""
	}

	// Step 1: compatibility folding (ligatures, full-width forms)
	token := norm.NFKC.String(raw)

	// Step 2: drop URLs
	token = urlPattern.ReplaceAllString(token, "")

	// Step 3: keep word characters only
	token = strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return -1
	}, token)

	// Step 4: leading/trailing underscores, then case
	token = strings.Trim(token, "_")
	token = strings.ToLower(token)
	if token == "" || IsPunctuation(token) {
		return ""
	}

	if isNumericOnly(token) {
		return NumericToken
	}
	return token
}

// Tokens cleans a token stream, dropping tokens that clean to nothing.
func Tokens(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := Token(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsNumeric reports whether a cleaned token is the numeric placeholder.
func IsNumeric(token string) bool {
	return token == NumericToken
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
