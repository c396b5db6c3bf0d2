// Package distance implements the edit distances used to shortlist
// correction candidates.
package distance

// DamerauLevenshtein returns the unrestricted Damerau–Levenshtein distance
// between a and b, counting runes. Insertion, deletion, substitution and
// transposition of two adjacent runes each cost 1, and a transposed pair may
// be edited again afterwards (so "ca" -> "abc" is 2, not 3).
func DamerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// d is offset by one extra row/column holding maxDist, so the "-1"
	// sentinel row of the textbook algorithm is index 0 here.
	maxDist := la + lb
	d := make([][]int, la+2)
	for i := range d {
		d[i] = make([]int, lb+2)
	}
	d[0][0] = maxDist
	for i := 0; i <= la; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	lastRow := make(map[rune]int) // last row where each rune of a was seen
	for i := 1; i <= la; i++ {
		lastCol := 0
		for j := 1; j <= lb; j++ {
			i1 := lastRow[rb[j-1]]
			j1 := lastCol

			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
				lastCol = j
			}

			best := d[i][j] + cost // substitution
			if v := d[i+1][j] + 1; v < best {
				best = v // insertion
			}
			if v := d[i][j+1] + 1; v < best {
				best = v // deletion
			}
			if v := d[i1][j1] + (i - i1 - 1) + 1 + (j - j1 - 1); v < best {
				best = v // transposition
			}
			d[i+1][j+1] = best
		}
		lastRow[ra[i-1]] = i
	}
	return d[la+1][lb+1]
}

// Within reports the distance between a and b and whether it is at most max.
// Pairs whose rune lengths already differ by more than max are rejected
// without running the full computation.
func Within(a, b string, max int) (int, bool) {
	la, lb := runeLen(a), runeLen(b)
	if diff := la - lb; diff > max || -diff > max {
		return max + 1, false
	}
	d := DamerauLevenshtein(a, b)
	return d, d <= max
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
