// Package phonetic encodes words with Double Metaphone and compares the
// encodings.
package phonetic

import "strings"

// Code is a Double Metaphone encoding. Secondary is empty when the word has
// no alternate pronunciation distinct from Primary.
type Code struct {
	Primary   string
	Secondary string
}

// Distance counts mismatching code slots between the encodings of a and b,
// primary against primary and secondary against secondary. It is 0, 1 or 2.
func Distance(a, b string) int {
	return CodeDistance(DoubleMetaphone(a), DoubleMetaphone(b))
}

// CodeDistance compares two precomputed encodings slot by slot.
func CodeDistance(x, y Code) int {
	d := 0
	if x.Primary != y.Primary {
		d++
	}
	if x.Secondary != y.Secondary {
		d++
	}
	return d
}

// DoubleMetaphone encodes word using Lawrence Philips' Double Metaphone
// rules. Codes are not truncated.
func DoubleMetaphone(word string) Code {
	e := newEncoder(word)
	if len(e.value) == 0 {
		return Code{}
	}
	e.encode()

	primary := e.primary.String()
	secondary := strings.TrimSpace(e.secondary.String())
	if secondary == primary {
		secondary = ""
	}
	return Code{Primary: primary, Secondary: secondary}
}

type encoder struct {
	value         []rune
	primary       strings.Builder
	secondary     strings.Builder
	slavoGermanic bool
}

func newEncoder(word string) *encoder {
	value := []rune(strings.ToUpper(strings.TrimSpace(word)))
	upper := string(value)
	return &encoder{
		value: value,
		slavoGermanic: strings.ContainsRune(upper, 'W') || strings.ContainsRune(upper, 'K') ||
			strings.Contains(upper, "CZ") || strings.Contains(upper, "WITZ"),
	}
}

func (e *encoder) add(code string) {
	e.primary.WriteString(code)
	e.secondary.WriteString(code)
}

func (e *encoder) addPair(main, alt string) {
	e.primary.WriteString(main)
	e.secondary.WriteString(alt)
}

func (e *encoder) addPrimary(code string) {
	e.primary.WriteString(code)
}

func (e *encoder) addSecondary(code string) {
	e.secondary.WriteString(code)
}

func (e *encoder) at(i int) rune {
	if i < 0 || i >= len(e.value) {
		return 0
	}
	return e.value[i]
}

// has reports whether the length-n substring starting at start is one of
// options.
func (e *encoder) has(start, n int, options ...string) bool {
	if start < 0 || start+n > len(e.value) {
		return false
	}
	s := string(e.value[start : start+n])
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func (e *encoder) last() int { return len(e.value) - 1 }

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

func (e *encoder) germanic() bool {
	return e.has(0, 4, "VAN ", "VON ") || e.has(0, 3, "SCH")
}

func (e *encoder) encode() {
	i := 0
	if e.has(0, 2, "GN", "KN", "PN", "WR", "PS") {
		i = 1
	}

	for i < len(e.value) {
		switch e.value[i] {
		case 'A', 'E', 'I', 'O', 'U', 'Y':
			if i == 0 {
				e.add("A")
			}
			i++
		case 'B':
			e.add("P")
			i = e.skipDouble(i, 'B')
		case 'Ç':
			e.add("S")
			i++
		case 'C':
			i = e.c(i)
		case 'D':
			i = e.d(i)
		case 'F':
			e.add("F")
			i = e.skipDouble(i, 'F')
		case 'G':
			i = e.g(i)
		case 'H':
			if (i == 0 || isVowel(e.at(i-1))) && isVowel(e.at(i+1)) {
				e.add("H")
				i += 2
			} else {
				i++
			}
		case 'J':
			i = e.j(i)
		case 'K':
			e.add("K")
			i = e.skipDouble(i, 'K')
		case 'L':
			i = e.l(i)
		case 'M':
			e.add("M")
			if e.at(i+1) == 'M' || (e.has(i-1, 3, "UMB") && (i+1 == e.last() || e.has(i+2, 2, "ER"))) {
				i += 2
			} else {
				i++
			}
		case 'N':
			e.add("N")
			i = e.skipDouble(i, 'N')
		case 'Ñ':
			e.add("N")
			i++
		case 'P':
			if e.at(i+1) == 'H' {
				e.add("F")
				i += 2
			} else {
				e.add("P")
				if e.has(i+1, 1, "P", "B") {
					i += 2
				} else {
					i++
				}
			}
		case 'Q':
			e.add("K")
			i = e.skipDouble(i, 'Q')
		case 'R':
			i = e.r(i)
		case 'S':
			i = e.s(i)
		case 'T':
			i = e.t(i)
		case 'V':
			e.add("F")
			i = e.skipDouble(i, 'V')
		case 'W':
			i = e.w(i)
		case 'X':
			i = e.x(i)
		case 'Z':
			i = e.z(i)
		default:
			i++
		}
	}
}

func (e *encoder) skipDouble(i int, c rune) int {
	if e.at(i+1) == c {
		return i + 2
	}
	return i + 1
}

func (e *encoder) c(i int) int {
	switch {
	case e.cAsK(i):
		e.add("K")
		return i + 2
	case i == 0 && e.has(i, 6, "CAESAR"):
		e.add("S")
		return i + 2
	case e.has(i, 2, "CH"):
		return e.ch(i)
	case e.has(i, 2, "CZ") && !e.has(i-2, 4, "WICZ"):
		e.addPair("S", "X")
		return i + 2
	case e.has(i+1, 3, "CIA"):
		e.add("X")
		return i + 3
	case e.has(i, 2, "CC") && !(i == 1 && e.at(0) == 'M'):
		return e.cc(i)
	case e.has(i, 2, "CK", "CG", "CQ"):
		e.add("K")
		return i + 2
	case e.has(i, 2, "CI", "CE", "CY"):
		if e.has(i, 3, "CIO", "CIE", "CIA") {
			e.addPair("S", "X")
		} else {
			e.add("S")
		}
		return i + 2
	}

	e.add("K")
	switch {
	case e.has(i+1, 2, " C", " Q", " G"):
		return i + 3
	case e.has(i+1, 1, "C", "K", "Q") && !e.has(i+1, 2, "CE", "CI"):
		return i + 2
	}
	return i + 1
}

// cAsK covers Germanic "-ach-" ("bacher", "macher") and "chianti".
func (e *encoder) cAsK(i int) bool {
	if e.has(i, 4, "CHIA") {
		return true
	}
	if i <= 1 || isVowel(e.at(i-2)) || !e.has(i-1, 3, "ACH") {
		return false
	}
	next := e.at(i + 2)
	return (next != 'I' && next != 'E') || e.has(i-2, 6, "BACHER", "MACHER")
}

func (e *encoder) cc(i int) int {
	if e.has(i+2, 1, "I", "E", "H") && !e.has(i+2, 2, "HU") {
		if (i == 1 && e.at(i-1) == 'A') || e.has(i-1, 5, "UCCEE", "UCCES") {
			e.add("KS")
		} else {
			e.add("X")
		}
		return i + 3
	}
	e.add("K")
	return i + 2
}

func (e *encoder) ch(i int) int {
	switch {
	case i > 0 && e.has(i, 4, "CHAE"):
		e.addPair("K", "X")
	case e.chGreekStart(i), e.chAsK(i):
		e.add("K")
	case i > 0:
		if e.has(0, 2, "MC") {
			e.add("K")
		} else {
			e.addPair("X", "K")
		}
	default:
		e.add("X")
	}
	return i + 2
}

func (e *encoder) chGreekStart(i int) bool {
	if i != 0 {
		return false
	}
	if !e.has(i+1, 5, "HARAC", "HARIS") && !e.has(i+1, 3, "HOR", "HYM", "HIA", "HEM") {
		return false
	}
	return !e.has(0, 5, "CHORE")
}

func (e *encoder) chAsK(i int) bool {
	return e.germanic() ||
		e.has(i-2, 6, "ORCHES", "ARCHIT", "ORCHID") ||
		e.has(i+2, 1, "T", "S") ||
		((e.has(i-1, 1, "A", "O", "U", "E") || i == 0) &&
			(e.has(i+2, 1, "L", "R", "N", "M", "B", "H", "F", "V", "W", " ") || i+1 == e.last()))
}

func (e *encoder) d(i int) int {
	switch {
	case e.has(i, 2, "DG"):
		if e.has(i+2, 1, "I", "E", "Y") {
			e.add("J")
			return i + 3
		}
		e.add("TK")
		return i + 2
	case e.has(i, 2, "DT", "DD"):
		e.add("T")
		return i + 2
	}
	e.add("T")
	return i + 1
}

func (e *encoder) g(i int) int {
	next := e.at(i + 1)
	switch {
	case next == 'H':
		return e.gh(i)
	case next == 'N':
		switch {
		case i == 1 && isVowel(e.at(0)) && !e.slavoGermanic:
			e.addPair("KN", "N")
		case !e.has(i+2, 2, "EY") && e.at(i+1) != 'Y' && !e.slavoGermanic:
			e.addPair("N", "KN")
		default:
			e.add("KN")
		}
		return i + 2
	case e.has(i+1, 2, "LI") && !e.slavoGermanic:
		e.addPair("KL", "L")
		return i + 2
	case i == 0 && (next == 'Y' || e.has(i+1, 2, "ES", "EP", "EB", "EL", "EY", "IB", "IL", "IN", "IE", "EI", "ER")):
		e.addPair("K", "J")
		return i + 2
	case (e.has(i+1, 2, "ER") || next == 'Y') &&
		!e.has(0, 6, "DANGER", "RANGER", "MANGER") &&
		!e.has(i-1, 1, "E", "I") &&
		!e.has(i-1, 3, "RGY", "OGY"):
		e.addPair("K", "J")
		return i + 2
	case e.has(i+1, 1, "E", "I", "Y") || e.has(i-1, 4, "AGGI", "OGGI"):
		switch {
		case e.germanic() || e.has(i+1, 2, "ET"):
			e.add("K")
		case e.has(i+1, 3, "IER"):
			e.add("J")
		default:
			e.addPair("J", "K")
		}
		return i + 2
	case next == 'G':
		e.add("K")
		return i + 2
	}
	e.add("K")
	return i + 1
}

func (e *encoder) gh(i int) int {
	switch {
	case i > 0 && !isVowel(e.at(i-1)):
		e.add("K")
	case i == 0:
		if e.at(i+2) == 'I' {
			e.add("J")
		} else {
			e.add("K")
		}
	case (i > 1 && e.has(i-2, 1, "B", "H", "D")) ||
		(i > 2 && e.has(i-3, 1, "B", "H", "D")) ||
		(i > 3 && e.has(i-4, 1, "B", "H")):
		// silent, as in "hugh"
	case i > 2 && e.at(i-1) == 'U' && e.has(i-3, 1, "C", "G", "L", "R", "T"):
		e.add("F")
	case i > 0 && e.at(i-1) != 'I':
		e.add("K")
	}
	return i + 2
}

func (e *encoder) j(i int) int {
	if e.has(i, 4, "JOSE") || e.has(0, 4, "SAN ") {
		if (i == 0 && e.at(i+4) == ' ') || len(e.value) == 4 || e.has(0, 4, "SAN ") {
			e.add("H")
		} else {
			e.addPair("J", "H")
		}
		return i + 1
	}

	switch {
	case i == 0:
		e.addPair("J", "A")
	case isVowel(e.at(i-1)) && !e.slavoGermanic && (e.at(i+1) == 'A' || e.at(i+1) == 'O'):
		e.addPair("J", "H")
	case i == e.last():
		e.addPrimary("J")
	case !e.has(i+1, 1, "L", "T", "K", "S", "N", "M", "B", "Z") && !e.has(i-1, 1, "S", "K", "L"):
		e.add("J")
	}
	return e.skipDouble(i, 'J')
}

func (e *encoder) l(i int) int {
	if e.at(i+1) != 'L' {
		e.add("L")
		return i + 1
	}
	if e.spanishLL(i) {
		e.addPrimary("L")
	} else {
		e.add("L")
	}
	return i + 2
}

func (e *encoder) spanishLL(i int) bool {
	if i == len(e.value)-3 && e.has(i-1, 4, "ILLO", "ILLA", "ALLE") {
		return true
	}
	return (e.has(len(e.value)-2, 2, "AS", "OS") || e.has(len(e.value)-1, 1, "A", "O")) &&
		e.has(i-1, 4, "ALLE")
}

func (e *encoder) r(i int) int {
	if i == e.last() && !e.slavoGermanic && e.has(i-2, 2, "IE") && !e.has(i-4, 2, "ME", "MA") {
		e.addSecondary("R")
	} else {
		e.add("R")
	}
	return e.skipDouble(i, 'R')
}

func (e *encoder) s(i int) int {
	switch {
	case e.has(i-1, 3, "ISL", "YSL"):
		return i + 1
	case i == 0 && e.has(i, 5, "SUGAR"):
		e.addPair("X", "S")
		return i + 1
	case e.has(i, 2, "SH"):
		if e.has(i+1, 4, "HEIM", "HOEK", "HOLM", "HOLZ") {
			e.add("S")
		} else {
			e.add("X")
		}
		return i + 2
	case e.has(i, 3, "SIO", "SIA") || e.has(i, 4, "SIAN"):
		if e.slavoGermanic {
			e.add("S")
		} else {
			e.addPair("S", "X")
		}
		return i + 3
	case (i == 0 && e.has(i+1, 1, "M", "N", "L", "W")) || e.has(i+1, 1, "Z"):
		e.addPair("S", "X")
		if e.has(i+1, 1, "Z") {
			return i + 2
		}
		return i + 1
	case e.has(i, 2, "SC"):
		return e.sc(i)
	}

	if i == e.last() && e.has(i-2, 2, "AI", "OI") {
		e.addSecondary("S")
	} else {
		e.add("S")
	}
	if e.has(i+1, 1, "S", "Z") {
		return i + 2
	}
	return i + 1
}

func (e *encoder) sc(i int) int {
	switch {
	case e.at(i+2) == 'H':
		switch {
		case e.has(i+3, 2, "ER", "EN"):
			e.addPair("X", "SK")
		case e.has(i+3, 2, "OO", "UY", "ED", "EM"):
			e.add("SK")
		case i == 0 && !isVowel(e.at(3)) && e.at(3) != 'W':
			e.addPair("X", "S")
		default:
			e.add("X")
		}
	case e.has(i+2, 1, "I", "E", "Y"):
		e.add("S")
	default:
		e.add("SK")
	}
	return i + 3
}

func (e *encoder) t(i int) int {
	switch {
	case e.has(i, 4, "TION"), e.has(i, 3, "TIA", "TCH"):
		e.add("X")
		return i + 3
	case e.has(i, 2, "TH") || e.has(i, 3, "TTH"):
		if e.has(i+2, 2, "OM", "AM") || e.germanic() {
			e.add("T")
		} else {
			e.addPair("0", "T")
		}
		return i + 2
	}
	e.add("T")
	if e.has(i+1, 1, "T", "D") {
		return i + 2
	}
	return i + 1
}

func (e *encoder) w(i int) int {
	if e.has(i, 2, "WR") {
		e.add("R")
		return i + 2
	}
	switch {
	case i == 0 && (isVowel(e.at(i+1)) || e.has(i, 2, "WH")):
		if isVowel(e.at(i + 1)) {
			e.addPair("A", "F")
		} else {
			e.add("A")
		}
	case (i == e.last() && isVowel(e.at(i-1))) ||
		e.has(i-1, 5, "EWSKI", "EWSKY", "OWSKI", "OWSKY") ||
		e.has(0, 3, "SCH"):
		e.addSecondary("F")
	case e.has(i, 4, "WICZ", "WITZ"):
		e.addPair("TS", "FX")
		return i + 4
	}
	return i + 1
}

func (e *encoder) x(i int) int {
	if i == 0 {
		e.add("S")
		return i + 1
	}
	if !(i == e.last() && (e.has(i-3, 3, "IAU", "EAU") || e.has(i-2, 2, "AU", "OU"))) {
		e.add("KS")
	}
	if e.has(i+1, 1, "C", "X") {
		return i + 2
	}
	return i + 1
}

func (e *encoder) z(i int) int {
	if e.at(i+1) == 'H' {
		e.add("J")
		return i + 2
	}
	if e.has(i+1, 2, "ZO", "ZI", "ZA") || (e.slavoGermanic && i > 0 && e.at(i-1) != 'T') {
		e.addPair("S", "TS")
	} else {
		e.add("S")
	}
	return e.skipDouble(i, 'Z')
}
