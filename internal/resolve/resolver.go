package resolve

import (
	"github.com/ligacoach/ligacoach/internal/model"
)

// Resolver picks a single club from the recognizer's candidates, or declares
// the question ambiguous or unanswerable. Thresholds keep low-confidence
// fuzzy noise from silently producing wrong answers; the margin rule surfaces
// genuine ambiguity instead of arbitrarily picking one club.
type Resolver struct {
	cfg model.ThresholdsConfig
}

// New creates a Resolver with the given thresholds
func New(cfg model.ThresholdsConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve applies the acceptance and margin rules to an ordered candidate
// list (highest confidence first, as the recognizer emits them):
//
//   - no candidates, or best below the accept threshold: not found
//   - two or more candidates above the threshold within the margin of the
//     best: ambiguous, all tied candidates returned
//   - otherwise: the best candidate wins by strict dominance
//
// Resolution is deterministic: identical input always yields the same
// outcome.
func (r *Resolver) Resolve(candidates []model.MatchCandidate) model.ResolutionOutcome {
	if len(candidates) == 0 {
		return model.NotFound()
	}

	best := candidates[0]
	if best.Confidence < r.cfg.Accept {
		return model.NotFound()
	}

	tied := []model.MatchCandidate{best}
	for _, c := range candidates[1:] {
		if c.Confidence < r.cfg.Accept {
			break // Ordered input: everything after is weaker still
		}
		if best.Confidence-c.Confidence < r.cfg.AmbiguityMargin {
			tied = append(tied, c)
		}
	}

	if len(tied) > 1 {
		return model.Ambiguous(tied)
	}
	return model.Resolved(best.Club, best.Confidence)
}
