package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ligacoach/ligacoach/internal/llm"
	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/pipeline"
	"github.com/ligacoach/ligacoach/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	askTimeout   time.Duration
	askJSON      bool
	llmProvider  string
	llmModel     string
	taggerName   string
	gazetteerTab string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question about a Bundesliga manager",
	Long: `Ask resolves the club mentioned in the question, retrieves the current
manager from Wikidata and the manager's biography from Wikipedia, and prints
the answer.

Without --llm the answer is rendered deterministically from the retrieved
facts. With --llm the assembled prompt is sent to the configured provider.

Example:
  ligacoach ask "Who is coaching Köln?"
  ligacoach ask --json "Who is it for Pauli?"
  ligacoach ask --llm openai --llm-model gpt-4o-mini "What about munich?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "overall query timeout")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result record as JSON")
	askCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for answer generation (openai, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	askCmd.Flags().StringVar(&taggerName, "tagger", "", "entity tagger (heuristic, none)")
	askCmd.Flags().StringVar(&gazetteerTab, "gazetteer", "", "gazetteer table file (default: embedded)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAskFlags(cfg)

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	p := pipeline.NewFromConfig(cfg, store)
	result := p.Process(ctx, question)

	if askJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Println(renderAnswer(ctx, cfg, result))
	return nil
}

func applyAskFlags(cfg *model.Config) {
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if taggerName != "" {
		cfg.Gazetteer.Tagger = taggerName
	}
	if gazetteerTab != "" {
		cfg.Gazetteer.TablePath = gazetteerTab
	}
}

// renderAnswer produces the final response: through the configured LLM
// provider when one is set up, otherwise via the deterministic formatter.
// Provider failures fall back to the formatter rather than losing the
// retrieved facts.
func renderAnswer(ctx context.Context, cfg *model.Config, result pipeline.Result) string {
	built := prompt.Build(result)

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		log.Warn("LLM provider unavailable", "err", err)
		provider = nil
	}
	if provider == nil {
		return prompt.FormatResponse(result)
	}

	resp, err := provider.Answer(ctx, llm.AnswerRequest{Prompt: built})
	if err != nil {
		log.Warn("answer generation failed", "provider", provider.Name(), "err", err)
		return prompt.FormatResponse(result)
	}
	return resp.Answer
}
