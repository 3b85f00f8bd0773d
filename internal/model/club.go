package model

// ClubIdentity is the canonical identity of a Bundesliga club.
// Loaded once at startup from the gazetteer table and never mutated.
type ClubIdentity struct {
	Key     string   `json:"key" yaml:"key"`         // Stable identifier (Wikidata QID, e.g. "Q15789")
	Name    string   `json:"name" yaml:"name"`       // Canonical display name (e.g. "1. FC Köln")
	City    string   `json:"city" yaml:"city"`       // Home city (e.g. "Köln")
	Aliases []string `json:"aliases" yaml:"aliases"` // Known variant spellings, short forms, transliterations
}

// MatchMethod tags how a candidate was found
type MatchMethod string

const (
	MatchExact  MatchMethod = "exact"  // Canonical name matched verbatim
	MatchAlias  MatchMethod = "alias"  // Non-canonical alias or city name matched verbatim
	MatchFuzzy  MatchMethod = "fuzzy"  // Approximate string match above the similarity floor
	MatchTagger MatchMethod = "tagger" // Found via the optional entity tagger
)

// MatchCandidate is one possible club mention found in a question.
// Created per recognition attempt and discarded after resolution.
type MatchCandidate struct {
	Club ClubIdentity `json:"club"`
	Span string       `json:"span"` // The matched question text

	// Start and End are byte offsets of Span. Gazetteer and fuzzy matches
	// index the normalized question; tagger matches carry the tagger's
	// offsets into the raw question.
	Start int `json:"start"`
	End   int `json:"end"`

	Confidence float64     `json:"confidence"` // In [0,1]
	Method     MatchMethod `json:"method"`
}

// OutcomeKind classifies a resolution outcome
type OutcomeKind string

const (
	OutcomeResolved  OutcomeKind = "resolved"
	OutcomeAmbiguous OutcomeKind = "ambiguous"
	OutcomeNotFound  OutcomeKind = "not_found"
)

// ResolutionOutcome is the resolver's verdict for one query.
// Exactly one of the payload fields is meaningful for each kind:
// Club/Confidence for resolved, Candidates for ambiguous.
type ResolutionOutcome struct {
	Kind       OutcomeKind      `json:"kind"`
	Club       ClubIdentity     `json:"club,omitempty"`
	Confidence float64          `json:"confidence,omitempty"`
	Candidates []MatchCandidate `json:"candidates,omitempty"`
}

// Resolved builds a resolved outcome
func Resolved(club ClubIdentity, confidence float64) ResolutionOutcome {
	return ResolutionOutcome{Kind: OutcomeResolved, Club: club, Confidence: confidence}
}

// Ambiguous builds an ambiguous outcome carrying the competing candidates
func Ambiguous(candidates []MatchCandidate) ResolutionOutcome {
	return ResolutionOutcome{Kind: OutcomeAmbiguous, Candidates: candidates}
}

// NotFound builds a not-found outcome
func NotFound() ResolutionOutcome {
	return ResolutionOutcome{Kind: OutcomeNotFound}
}
