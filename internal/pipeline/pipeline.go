package pipeline

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/ligacoach/ligacoach/internal/gazetteer"
	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/recognize"
	"github.com/ligacoach/ligacoach/internal/resolve"
	"github.com/ligacoach/ligacoach/internal/retrieve"
	"github.com/ligacoach/ligacoach/internal/worker"
)

// Pipeline sequences recognition, resolution and retrieval for one question.
// It is stateless apart from the immutable gazetteer, so concurrent queries
// need no locking.
type Pipeline struct {
	recognizer *recognize.Recognizer
	resolver   *resolve.Resolver
	retriever  *retrieve.Retriever
}

// Result is the uniform record handed to the prompt layer. Exactly which
// fields are populated follows the outcome kind: a resolved query carries a
// Record, an ambiguous one carries the tied candidates inside the Outcome,
// and a not-found query carries neither.
type Result struct {
	Question   string                  `json:"question"`
	Candidates []model.MatchCandidate  `json:"candidates,omitempty"` // Everything the recognizer saw, for debugging
	Outcome    model.ResolutionOutcome `json:"outcome"`
	Record     *model.ManagerRecord    `json:"record,omitempty"`
}

// New assembles a pipeline from explicit stages
func New(recognizer *recognize.Recognizer, resolver *resolve.Resolver, retriever *retrieve.Retriever) *Pipeline {
	return &Pipeline{recognizer: recognizer, resolver: resolver, retriever: retriever}
}

// NewFromConfig wires the pipeline with the live Wikidata and Wikipedia
// clients sharing one rate limiter
func NewFromConfig(cfg *model.Config, store *gazetteer.Store) *Pipeline {
	limiter := worker.NewLimiter(cfg.HTTP.RatePerSecond, cfg.HTTP.RateBurst)
	managers := retrieve.NewWikidataClient(cfg.Sources.SPARQLEndpoint, cfg.HTTP, limiter)
	bios := retrieve.NewWikipediaClient(cfg.Sources, cfg.HTTP, limiter)

	return New(
		recognize.New(store, recognize.NewTagger(cfg.Gazetteer.Tagger), cfg.Thresholds),
		resolve.New(cfg.Thresholds),
		retrieve.New(managers, bios, cfg.HTTP.RetryBackoff),
	)
}

// Process answers one question. Retrieval only happens on the resolved path:
// ambiguity and no-match return immediately, keeping the slow network calls
// off those paths entirely.
func (p *Pipeline) Process(ctx context.Context, question string) Result {
	result := Result{Question: question}

	result.Candidates = p.recognizer.Recognize(question)
	log.Debug("recognized", "question", question, "candidates", len(result.Candidates))

	result.Outcome = p.resolver.Resolve(result.Candidates)
	switch result.Outcome.Kind {
	case model.OutcomeResolved:
		log.Debug("resolved", "club", result.Outcome.Club.Name, "confidence", result.Outcome.Confidence)
		record := p.retriever.Retrieve(ctx, result.Outcome.Club)
		result.Record = &record
		log.Debug("retrieved", "club", record.Club.Name, "status", record.Status)
	case model.OutcomeAmbiguous:
		log.Debug("ambiguous", "candidates", len(result.Outcome.Candidates))
	case model.OutcomeNotFound:
		log.Debug("no club recognized", "question", question)
	}

	return result
}
