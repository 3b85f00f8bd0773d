package prompt

import (
	"fmt"
	"strings"

	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/pipeline"
)

// FormatResponse renders a deterministic, human-readable answer from the
// pipeline result. Used by the console when no LLM provider is configured.
func FormatResponse(result pipeline.Result) string {
	switch result.Outcome.Kind {
	case model.OutcomeAmbiguous:
		names := make([]string, 0, len(result.Outcome.Candidates))
		for _, c := range result.Outcome.Candidates {
			names = append(names, c.Club.Name)
		}
		return fmt.Sprintf(
			"Your question could mean more than one club: %s. Which one did you mean?",
			strings.Join(names, " or "),
		)
	case model.OutcomeNotFound:
		return "I couldn't identify a specific Bundesliga club from your question."
	}

	record := result.Record
	if record == nil {
		return "I couldn't identify a specific Bundesliga club from your question."
	}

	switch record.Status {
	case model.StatusNotCurrentMember:
		return fmt.Sprintf("%s is not playing in the Bundesliga this season.", record.Club.Name)
	case model.StatusManagerVacant:
		return fmt.Sprintf("I found %s but the manager position is currently vacant.", record.Club.Name)
	case model.StatusSourceUnavailable:
		return fmt.Sprintf("I found %s but the knowledge source is unavailable right now. Please try again.", record.Club.Name)
	}

	response := fmt.Sprintf("%s is currently coaching %s.", record.Manager, record.Club.Name)
	if record.Biography != "" {
		response += "\n\nBackground: " + record.Biography
	}
	return response
}
