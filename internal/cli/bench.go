package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ligacoach/ligacoach/internal/pipeline"
	"github.com/ligacoach/ligacoach/internal/worker"
	"github.com/spf13/cobra"
)

var (
	benchConcurrency int
	benchFailures    string
	benchType        string
	benchTimeout     time.Duration
)

// benchEntry is one labeled example in the benchmark dataset
type benchEntry struct {
	Question     string `json:"question"`
	ManagerLabel string `json:"managerLabel"`
	Type         string `json:"type"`
}

type benchOutcome struct {
	index    int
	entry    benchEntry
	response string
	correct  bool
}

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench <dataset.json>",
	Short: "Measure pipeline accuracy against a labeled dataset",
	Long: `Bench runs every question in a labeled dataset through the pipeline and
compares the retrieved manager against the expected label.

The dataset is a JSON array of {"question", "managerLabel", "type"} objects.
Failures are written to a CSV for inspection.

Example:
  ligacoach bench manager_dataset.json
  ligacoach bench manager_dataset.json --type spelling_error --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 0, "number of concurrent queries (default: config)")
	benchCmd.Flags().StringVar(&benchFailures, "failures", "", "CSV path for failed queries (default: config)")
	benchCmd.Flags().StringVar(&benchType, "type", "", "only run entries of this question type")
	benchCmd.Flags().DurationVar(&benchTimeout, "timeout", 10*time.Minute, "total benchmark timeout")
	benchCmd.Flags().StringVar(&gazetteerTab, "gazetteer", "", "gazetteer table file (default: embedded)")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if gazetteerTab != "" {
		cfg.Gazetteer.TablePath = gazetteerTab
	}
	if benchConcurrency > 0 {
		cfg.Bench.Concurrency = benchConcurrency
	}
	if benchFailures != "" {
		cfg.Bench.FailuresCSV = benchFailures
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	var dataset []benchEntry
	if err := json.Unmarshal(data, &dataset); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	var selected []benchEntry
	for _, entry := range dataset {
		if benchType == "" || entry.Type == benchType {
			selected = append(selected, entry)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("dataset has no entries of type %q", benchType)
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	p := pipeline.NewFromConfig(cfg, store)

	ctx, cancel := context.WithTimeout(context.Background(), benchTimeout)
	defer cancel()

	start := time.Now()
	outcomes := worker.Run(ctx, cfg.Bench.Concurrency, selected, func(ctx context.Context, entry benchEntry) benchOutcome {
		result := p.Process(ctx, entry.Question)
		response := ""
		if result.Record != nil {
			response = result.Record.Manager
		}
		return benchOutcome{entry: entry, response: response, correct: scoreResponse(response, entry.ManagerLabel)}
	})
	elapsed := time.Since(start)

	correct := 0
	var failed []benchOutcome
	for i, outcome := range outcomes {
		outcome.index = i
		if outcome.correct {
			correct++
		} else {
			failed = append(failed, outcome)
		}
	}

	if len(failed) > 0 {
		if err := writeFailures(cfg.Bench.FailuresCSV, failed); err != nil {
			return err
		}
	}

	accuracy := float64(correct) / float64(len(selected)) * 100
	fmt.Printf("Total queries:      %d\n", len(selected))
	fmt.Printf("Correct responses:  %d\n", correct)
	fmt.Printf("Accuracy:           %.2f%%\n", accuracy)
	fmt.Printf("Total time:         %.2fs\n", elapsed.Seconds())
	fmt.Printf("Avg time per query: %.3fs\n", elapsed.Seconds()/float64(len(selected)))
	if len(failed) > 0 {
		fmt.Printf("Failed queries saved in %s\n", cfg.Bench.FailuresCSV)
	}
	return nil
}

// scoreResponse checks a retrieved manager against the dataset label. An
// empty label means the entry expects no manager (vacancy, relegated club);
// any returned name is then a wrong answer.
func scoreResponse(response, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return response == ""
	}
	return response != "" &&
		strings.Contains(strings.ToLower(response), strings.ToLower(expected))
}

func writeFailures(path string, failed []benchOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create failures CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "question", "expected", "response", "type"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, outcome := range failed {
		row := []string{
			strconv.Itoa(outcome.index),
			outcome.entry.Question,
			outcome.entry.ManagerLabel,
			outcome.response,
			outcome.entry.Type,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
