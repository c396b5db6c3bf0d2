package store

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// ReadWordList reads one word per line. Blank lines are skipped and the
// result is sorted with duplicates removed.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Normalize(words), nil
}

// WriteWordList writes words sorted, one per line, each terminated by "\n".
func WriteWordList(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range Normalize(words) {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Normalize returns a sorted copy of words without blanks or duplicates.
func Normalize(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
