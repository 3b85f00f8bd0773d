package recognize

import (
	"strings"
	"unicode"
)

// Span is a text region a tagger considers a possible entity mention
type Span struct {
	Text  string
	Start int // Byte offset into the original question
	End   int
	Label string // e.g. "ORG", "LOC", "MISC"
}

// Tagger is an optional general-purpose entity tagger. It is advisory: the
// recognizer works correctly with the no-op default, and tagger output is
// only ever used as a hint for gazetteer lookup, never as ground truth.
type Tagger interface {
	Tag(text string) []Span
}

// NopTagger is the default when no tagger is configured
type NopTagger struct{}

func (NopTagger) Tag(string) []Span { return nil }

// HeuristicTagger tags maximal runs of capitalized tokens as candidate
// entity mentions. It has no Bundesliga knowledge and plenty of false
// positives ("Who", sentence starts), which is fine: spans only feed a
// gazetteer lookup that rejects non-clubs.
type HeuristicTagger struct{}

func (HeuristicTagger) Tag(text string) []Span {
	var spans []Span

	type token struct {
		text       string
		start, end int
	}
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{text: text[start:i], start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}

	runStart := -1
	flush := func(endIdx int) {
		if runStart < 0 {
			return
		}
		first := tokens[runStart]
		last := tokens[endIdx]
		spans = append(spans, Span{
			Text:  text[first.start:last.end],
			Start: first.start,
			End:   last.end,
			Label: "MISC",
		})
		runStart = -1
	}

	for i, tok := range tokens {
		if isCapitalized(tok.text) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(len(tokens) - 1)

	return spans
}

func isCapitalized(tok string) bool {
	trimmed := strings.TrimLeft(tok, ".")
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

// NewTagger maps a config name to a tagger implementation
func NewTagger(name string) Tagger {
	switch strings.ToLower(name) {
	case "heuristic":
		return HeuristicTagger{}
	default:
		return NopTagger{}
	}
}
