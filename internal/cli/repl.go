package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ligacoach/ligacoach/internal/pipeline"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive console for Bundesliga manager questions",
	Long: `Repl starts an interactive question loop.

Commands inside the console:
  /debug   toggle printing of the raw result record
  /help    show the welcome screen again
  /quit    exit (also /exit, /q, Ctrl-D)`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "per-question timeout")
	replCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for answer generation (openai, ollama)")
	replCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	replCmd.Flags().StringVar(&taggerName, "tagger", "", "entity tagger (heuristic, none)")
	replCmd.Flags().StringVar(&gazetteerTab, "gazetteer", "", "gazetteer table file (default: embedded)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAskFlags(cfg)

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	p := pipeline.NewFromConfig(cfg, store)

	printWelcome()
	showDebug := false
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nYour question: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			switch strings.ToLower(input) {
			case "/quit", "/exit", "/q":
				fmt.Println("Goodbye!")
				return nil
			case "/debug":
				showDebug = !showDebug
				fmt.Printf("Debug mode %s\n", onOff(showDebug))
			case "/help":
				printWelcome()
			default:
				fmt.Printf("Unknown command: %s\n", input)
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		result := p.Process(ctx, input)
		answer := renderAnswer(ctx, cfg, result)
		cancel()

		fmt.Println(answer)
		if showDebug {
			raw, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				log.Error("marshal result", "err", err)
				continue
			}
			fmt.Println(string(raw))
		}
	}
}

func printWelcome() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("BUNDESLIGA COACHING ASSISTANT")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Ask about current Bundesliga coaches or clubs.")
	fmt.Println("Commands: /debug, /help, /quit")
	fmt.Println(strings.Repeat("-", 60))
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
