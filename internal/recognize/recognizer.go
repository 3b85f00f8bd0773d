package recognize

import (
	"sort"
	"strings"

	"github.com/ligacoach/ligacoach/internal/gazetteer"
	"github.com/ligacoach/ligacoach/internal/model"
)

// Recognizer finds club mentions in question text. It combines deterministic
// gazetteer matching with a fuzzy pass for misspellings and an optional
// tagger pass. Exact matches always win over approximate ones covering the
// same text.
type Recognizer struct {
	store  *gazetteer.Store
	tagger Tagger
	cfg    model.ThresholdsConfig
}

// New creates a Recognizer. Pass NopTagger{} when no tagger is available.
func New(store *gazetteer.Store, tagger Tagger, cfg model.ThresholdsConfig) *Recognizer {
	if tagger == nil {
		tagger = NopTagger{}
	}
	return &Recognizer{store: store, tagger: tagger, cfg: cfg}
}

type interval struct{ start, end int }

func overlaps(covered []interval, start, end int) bool {
	for _, iv := range covered {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}

// Recognize returns candidate club mentions ordered by descending
// confidence, one candidate per club. Empty means no plausible mention.
func (r *Recognizer) Recognize(question string) []model.MatchCandidate {
	normalized := gazetteer.Normalize(question)
	if normalized == "" {
		return nil
	}

	var candidates []model.MatchCandidate
	var covered []interval

	// Pass 1: exact and alias matches. Aliases come longest-first, so
	// "bayern munich" claims its span before "bayern" can.
	for _, entry := range r.store.Aliases() {
		for _, iv := range wordOccurrences(normalized, entry.Text) {
			if overlaps(covered, iv.start, iv.end) {
				continue
			}
			confidence := 0.95
			method := model.MatchAlias
			if entry.Canonical {
				confidence = 1.0
				method = model.MatchExact
			}
			candidates = append(candidates, model.MatchCandidate{
				Club:       entry.Club,
				Span:       normalized[iv.start:iv.end],
				Start:      iv.start,
				End:        iv.end,
				Confidence: confidence,
				Method:     method,
			})
			covered = append(covered, iv)
		}
	}

	// Pass 2: city names. A city fans out to every club it hosts, each at
	// alias confidence; a city with two clubs is genuine ambiguity and is
	// left for the resolver to surface.
	for _, entry := range r.store.Cities() {
		for _, iv := range wordOccurrences(normalized, entry.Text) {
			if overlaps(covered, iv.start, iv.end) {
				continue
			}
			for _, club := range entry.Clubs {
				candidates = append(candidates, model.MatchCandidate{
					Club:       club,
					Span:       normalized[iv.start:iv.end],
					Start:      iv.start,
					End:        iv.end,
					Confidence: 0.95,
					Method:     model.MatchAlias,
				})
			}
			covered = append(covered, iv)
		}
	}

	// Pass 3: fuzzy matching over whatever the deterministic passes left
	// uncovered ("Koln" for "Köln", "Bayren" for "Bayern").
	candidates = append(candidates, r.fuzzyPass(normalized, covered)...)

	// Pass 4: tagger hints, capped below deterministic confidence.
	candidates = append(candidates, r.taggerPass(question)...)

	return dedupe(candidates)
}

func (r *Recognizer) fuzzyPass(normalized string, covered []interval) []model.MatchCandidate {
	var out []model.MatchCandidate

	for _, entry := range r.store.Aliases() {
		match, ok := r.fuzzySpan(normalized, entry.Text, covered)
		if !ok {
			continue
		}
		out = append(out, model.MatchCandidate{
			Club:       entry.Club,
			Span:       normalized[match.Start:match.End],
			Start:      match.Start,
			End:        match.End,
			Confidence: match.Score,
			Method:     model.MatchFuzzy,
		})
	}

	for _, entry := range r.store.Cities() {
		match, ok := r.fuzzySpan(normalized, entry.Text, covered)
		if !ok {
			continue
		}
		for _, club := range entry.Clubs {
			out = append(out, model.MatchCandidate{
				Club:       club,
				Span:       normalized[match.Start:match.End],
				Start:      match.Start,
				End:        match.End,
				Confidence: match.Score,
				Method:     model.MatchFuzzy,
			})
		}
	}

	return out
}

// fuzzySpan finds the fuzzy reading of one pattern. A perfect window the
// deterministic passes claimed is theirs. A perfect window they never
// claimed sits inside an inflected token ("bayerns" contains "bayern"); the
// surrounding token's near-miss reading stands in for it.
func (r *Recognizer) fuzzySpan(normalized, pattern string, covered []interval) (spanMatch, bool) {
	match, ok := bestSpan(normalized, pattern, r.cfg.WindowDeviation, r.cfg.FuzzyFloor)
	if !ok {
		return spanMatch{}, false
	}
	if match.Score >= 1.0 {
		if overlaps(covered, match.Start, match.End) {
			return spanMatch{}, false
		}
		match, ok = imperfectSpan(normalized, pattern, r.cfg.WindowDeviation, r.cfg.FuzzyFloor)
		if !ok {
			return spanMatch{}, false
		}
	}
	if overlaps(covered, match.Start, match.End) {
		return spanMatch{}, false
	}
	return match, true
}

// taggerPass runs the optional tagger over the raw question and tries a
// gazetteer lookup restricted to each tagged span. The tagger has no
// Bundesliga knowledge, so confidence is capped: its spans are hints.
func (r *Recognizer) taggerPass(question string) []model.MatchCandidate {
	spans := r.tagger.Tag(question)
	if len(spans) == 0 {
		return nil
	}

	ceiling := r.cfg.TaggerCap
	var out []model.MatchCandidate

	emit := func(club model.ClubIdentity, span Span, score float64) {
		if score > ceiling {
			score = ceiling
		}
		out = append(out, model.MatchCandidate{
			Club:       club,
			Span:       span.Text,
			Start:      span.Start,
			End:        span.End,
			Confidence: score,
			Method:     model.MatchTagger,
		})
	}

	for _, span := range spans {
		text := gazetteer.Normalize(span.Text)
		if text == "" {
			continue
		}

		if club, ok := r.store.LookupExact(text); ok {
			emit(club, span, 1.0)
			continue
		}
		if clubs := r.store.LookupCity(text); len(clubs) > 0 {
			for _, club := range clubs {
				emit(club, span, 1.0)
			}
			continue
		}

		// Fuzzy lookup restricted to the span.
		for _, entry := range r.store.Aliases() {
			if score := Similarity(text, entry.Text); score >= r.cfg.FuzzyFloor {
				emit(entry.Club, span, score)
			}
		}
		for _, entry := range r.store.Cities() {
			if score := Similarity(text, entry.Text); score >= r.cfg.FuzzyFloor {
				for _, club := range entry.Clubs {
					emit(club, span, score)
				}
			}
		}
	}

	return out
}

// wordOccurrences finds every occurrence of pattern in text that sits on
// word boundaries. Both inputs are already normalized.
func wordOccurrences(text, pattern string) []interval {
	var out []interval
	offset := 0
	for {
		idx := strings.Index(text[offset:], pattern)
		if idx < 0 {
			return out
		}
		start := offset + idx
		end := start + len(pattern)
		boundedLeft := start == 0 || text[start-1] == ' '
		boundedRight := end == len(text) || text[end] == ' '
		if boundedLeft && boundedRight {
			out = append(out, interval{start, end})
		}
		offset = start + 1
	}
}

var methodRank = map[model.MatchMethod]int{
	model.MatchExact:  0,
	model.MatchAlias:  1,
	model.MatchFuzzy:  2,
	model.MatchTagger: 3,
}

// dedupe keeps the single best candidate per club and orders the result by
// descending confidence. Ties break on method trustworthiness then club key,
// so identical input always yields identical output.
func dedupe(candidates []model.MatchCandidate) []model.MatchCandidate {
	best := make(map[string]model.MatchCandidate)
	for _, c := range candidates {
		cur, seen := best[c.Club.Key]
		if !seen || better(c, cur) {
			best[c.Club.Key] = c
		}
	}

	out := make([]model.MatchCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if methodRank[out[i].Method] != methodRank[out[j].Method] {
			return methodRank[out[i].Method] < methodRank[out[j].Method]
		}
		return out[i].Club.Key < out[j].Club.Key
	})
	return out
}

func better(a, b model.MatchCandidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return methodRank[a.Method] < methodRank[b.Method]
}
