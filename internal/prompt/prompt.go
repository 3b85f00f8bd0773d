package prompt

import (
	"fmt"
	"strings"

	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/pipeline"
)

const systemPrompt = "You are a German Bundesliga football expert assistant. " +
	"You have access to current, verified information about football clubs and their coaches. " +
	"Answer questions about coaches clearly and concisely using only the provided context. " +
	"Be specific about coach names and include relevant background information."

const errorSystemPrompt = "You are a helpful assistant for German Bundesliga information. " +
	"When you cannot access the required information, explain the limitation clearly and suggest alternatives."

// Prompt is a structured system/user message pair for a chat completion API,
// with the resolved context attached for logging and verification.
type Prompt struct {
	System  string            `json:"system"`
	User    string            `json:"user"`
	Context map[string]string `json:"context,omitempty"`
}

// Build turns a pipeline result into the prompt for the downstream model.
// Every outcome gets a well-formed prompt; there is no case that renders
// nothing.
func Build(result pipeline.Result) Prompt {
	switch result.Outcome.Kind {
	case model.OutcomeResolved:
		record := result.Record
		if record != nil && record.HasManager() {
			return buildManagerPrompt(result.Question, *record)
		}
		return buildErrorPrompt(result.Question, statusMessage(result))
	case model.OutcomeAmbiguous:
		return buildErrorPrompt(result.Question, statusMessage(result))
	default:
		return buildErrorPrompt(result.Question, statusMessage(result))
	}
}

func buildManagerPrompt(question string, record model.ManagerRecord) Prompt {
	background := record.Biography
	if background == "" {
		background = "Additional information not available"
	}

	context := fmt.Sprintf(
		"CONTEXT: Club: %s City: %s Current Manager: %s Manager Background: %s",
		record.Club.Name, record.Club.City, record.Manager, background,
	)

	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf("%s USER QUESTION: %s", context, question),
		Context: map[string]string{
			"club_name":    record.Club.Name,
			"city_name":    record.Club.City,
			"manager_name": record.Manager,
			"manager_info": record.Biography,
		},
	}
}

func buildErrorPrompt(question, message string) Prompt {
	return Prompt{
		System: errorSystemPrompt,
		User: fmt.Sprintf(
			"I asked: %s System message: %s Please explain why this information isn't available and suggest how I can rephrase my question.",
			question, message,
		),
		Context: map[string]string{"error": message},
	}
}

// statusMessage renders the non-success outcome as a short factual sentence
// the error prompt (and the offline formatter) can reuse
func statusMessage(result pipeline.Result) string {
	switch result.Outcome.Kind {
	case model.OutcomeAmbiguous:
		names := make([]string, 0, len(result.Outcome.Candidates))
		for _, c := range result.Outcome.Candidates {
			names = append(names, c.Club.Name)
		}
		return fmt.Sprintf("The question matches more than one club: %s.", strings.Join(names, ", "))
	case model.OutcomeNotFound:
		return "No Bundesliga club could be identified in the question."
	}

	if result.Record == nil {
		return "No Bundesliga club could be identified in the question."
	}
	switch result.Record.Status {
	case model.StatusNotCurrentMember:
		return fmt.Sprintf("%s is not currently a Bundesliga member.", result.Record.Club.Name)
	case model.StatusManagerVacant:
		return fmt.Sprintf("The manager position at %s is currently vacant.", result.Record.Club.Name)
	case model.StatusSourceUnavailable:
		return "The knowledge source is currently unavailable."
	}
	return "The requested information is not available."
}
