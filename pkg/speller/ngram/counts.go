package ngram

import "sort"

// Sentinels padding each sentence. Normalized tokens never contain '<', so
// these cannot collide with vocabulary.
const (
	StartToken = "<s>"
	EndToken   = "</s>"
)

// Key is an n-gram of up to three tokens. Unused trailing slots are empty.
type Key [3]string

// Uni builds a unigram key.
func Uni(w string) Key { return Key{w} }

// Bi builds a bigram key.
func Bi(a, b string) Key { return Key{a, b} }

// Tri builds a trigram key.
func Tri(a, b, c string) Key { return Key{a, b, c} }

// Counts is a count table for n-grams of a single order.
type Counts struct {
	order int
	table map[Key]int64
	total int64
}

// NewCounts creates an empty count table for n-grams of the given order (1..3).
func NewCounts(order int) *Counts {
	if order < 1 {
		order = 1
	}
	if order > 3 {
		order = 3
	}
	return &Counts{order: order, table: make(map[Key]int64)}
}

// Order returns n.
func (c *Counts) Order() int { return c.order }

// Add increments the count of k.
func (c *Counts) Add(k Key) {
	c.table[k]++
	c.total++
}

// AddSentence pads one sentence with order-1 sentinels on each side and
// counts every window. N-grams never span two sentences.
func (c *Counts) AddSentence(tokens []string) {
	for _, k := range Windows(Pad(tokens, c.order), c.order) {
		c.Add(k)
	}
}

// Get returns the count of k (0 when unseen).
func (c *Counts) Get(k Key) int64 {
	return c.table[k]
}

// Total returns the number of n-grams counted.
func (c *Counts) Total() int64 { return c.total }

// Len returns the number of distinct n-grams.
func (c *Counts) Len() int { return len(c.table) }

// Keys returns the distinct n-grams in lexical order.
func (c *Counts) Keys() []Key {
	keys := make([]Key, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		for s := 0; s < 3; s++ {
			if keys[i][s] != keys[j][s] {
				return keys[i][s] < keys[j][s]
			}
		}
		return false
	})
	return keys
}

// Pad surrounds tokens with n-1 start and n-1 end sentinels.
func Pad(tokens []string, n int) []string {
	if n <= 1 {
		out := make([]string, len(tokens))
		copy(out, tokens)
		return out
	}
	out := make([]string, 0, len(tokens)+2*(n-1))
	for i := 0; i < n-1; i++ {
		out = append(out, StartToken)
	}
	out = append(out, tokens...)
	for i := 0; i < n-1; i++ {
		out = append(out, EndToken)
	}
	return out
}

// Windows slides a window of size n over tokens.
func Windows(tokens []string, n int) []Key {
	if n < 1 || len(tokens) < n {
		return nil
	}
	keys := make([]Key, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		var k Key
		copy(k[:], tokens[i:i+n])
		keys = append(keys, k)
	}
	return keys
}
