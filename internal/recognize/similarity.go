package recognize

// Levenshtein computes the edit distance between two strings, by rune
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity scores two strings in [0,1]: 1 is identical, 0 shares nothing
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// spanMatch is the best fuzzy window found for one pattern
type spanMatch struct {
	Start, End int // Byte offsets into the searched text
	Score      float64
}

// bestSpan finds the substring of text most similar to pattern, trying window
// lengths within ±deviation of the pattern length. User questions misspell
// and abbreviate club names, so an exact-length window is not enough.
// Returns ok=false when nothing reaches floor.
func bestSpan(text, pattern string, deviation int, floor float64) (spanMatch, bool) {
	best, _ := scanWindows(text, pattern, deviation)
	if best.Score < floor {
		return spanMatch{}, false
	}
	return best, true
}

// imperfectSpan is bestSpan restricted to windows scoring below 1.0. The
// fuzzy pass falls back to it when the unrestricted best is a perfect
// interior window the deterministic passes never claimed: "bayerns"
// contains "bayern", and the inflected token's near-miss reading must not
// vanish behind the unclaimable exact hit inside it.
func imperfectSpan(text, pattern string, deviation int, floor float64) (spanMatch, bool) {
	_, imperfect := scanWindows(text, pattern, deviation)
	if imperfect.Score < floor {
		return spanMatch{}, false
	}
	return imperfect, true
}

// scanWindows sweeps every window within the deviation and tracks the best
// overall and the best below-perfect match. Windows never start or end on a
// space: patterns are normalized and cannot edge in one.
func scanWindows(text, pattern string, deviation int) (best, imperfect spanMatch) {
	best = spanMatch{Score: -1}
	imperfect = spanMatch{Score: -1}

	rt := []rune(text)
	rp := []rune(pattern)
	n, m := len(rt), len(rp)
	if n == 0 || m == 0 {
		return best, imperfect
	}

	lo := m - deviation
	if lo < 1 {
		lo = 1
	}
	hi := m + deviation
	if hi > n {
		hi = n
	}

	for win := lo; win <= hi; win++ {
		for i := 0; i+win <= n; i++ {
			if rt[i] == ' ' || rt[i+win-1] == ' ' {
				continue
			}
			score := Similarity(pattern, string(rt[i:i+win]))
			if score > best.Score {
				best = spanMatch{
					Start: len(string(rt[:i])),
					End:   len(string(rt[:i+win])),
					Score: score,
				}
			}
			if score < 1.0 && score > imperfect.Score {
				imperfect = spanMatch{
					Start: len(string(rt[:i])),
					End:   len(string(rt[:i+win])),
					Score: score,
				}
			}
		}
	}
	return best, imperfect
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
