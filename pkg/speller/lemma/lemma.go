// Package lemma maps inflected English nouns to a base form.
//
// Morphy follows the WordNet approach: an exception table for irregular forms,
// then ordered suffix substitutions, accepting the first candidate the
// vocabulary knows. Unknown words are returned unchanged.
package lemma

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lemmatizer returns the base form of a word.
type Lemmatizer interface {
	Lemma(word string) string
}

// substitution replaces a suffix when building lemma candidates.
type substitution struct {
	suffix      string
	replacement string
}

// Noun rules only. Longer suffixes are tried before "s" so "boxes" resolves
// to "box" rather than "boxe".
var substitutions = []substitution{
	{"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"},
	{"shes", "sh"}, {"men", "man"}, {"ies", "y"}, {"s", ""},
}

var defaultExceptions = map[string][]string{
	"child":  {"children"},
	"man":    {"men"},
	"woman":  {"women"},
	"person": {"people"},
	"mouse":  {"mice"},
	"foot":   {"feet"},
	"tooth":  {"teeth"},
	"goose":  {"geese"},
}

// Morphy is a rule-and-exception lemmatizer.
type Morphy struct {
	exceptions map[string]string // form -> lemma
	known      func(string) bool
}

// NewMorphy creates a lemmatizer that accepts suffix candidates for which
// known returns true. A nil known accepts nothing, so only exceptions apply.
func NewMorphy(known func(string) bool) *Morphy {
	m := &Morphy{
		exceptions: make(map[string]string),
		known:      known,
	}
	for lemma, forms := range defaultExceptions {
		m.AddException(lemma, forms...)
	}
	return m
}

// AddException registers irregular forms of lemma.
func (m *Morphy) AddException(lemma string, forms ...string) {
	lemma = strings.ToLower(lemma)
	for _, f := range forms {
		m.exceptions[strings.ToLower(f)] = lemma
	}
}

// Lemma returns the base form of word, or word itself when no rule applies.
func (m *Morphy) Lemma(word string) string {
	word = strings.ToLower(word)
	if lemma, ok := m.exceptions[word]; ok {
		return lemma
	}
	if m.known == nil {
		return word
	}
	if m.known(word) {
		return word
	}
	for _, sub := range substitutions {
		if !strings.HasSuffix(word, sub.suffix) || len(word) <= len(sub.suffix) {
			continue
		}
		candidate := word[:len(word)-len(sub.suffix)] + sub.replacement
		if m.known(candidate) {
			return candidate
		}
	}
	return word
}

// LoadExceptions reads irregular forms from a YAML file into m.
//
// Expected format:
//
//	irregular:
//	  - lemma: mouse
//	    forms: [mice]
//	  - lemma: criterion
//	    forms: [criteria]
func (m *Morphy) LoadExceptions(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var config struct {
		Irregular []struct {
			Lemma string   `yaml:"lemma"`
			Forms []string `yaml:"forms"`
		} `yaml:"irregular"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return err
	}

	for _, entry := range config.Irregular {
		m.AddException(entry.Lemma, entry.Forms...)
	}
	return nil
}
