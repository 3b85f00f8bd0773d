package gazetteer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes text for matching: lowercase, German sharp s to
// "ss", diacritics stripped, punctuation mapped to spaces, whitespace
// collapsed. Every comparison in the pipeline happens in this form.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "ß", "ss")

	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
