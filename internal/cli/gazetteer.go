package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ligacoach/ligacoach/internal/gazetteer"
	"github.com/ligacoach/ligacoach/internal/retrieve"
	"github.com/ligacoach/ligacoach/internal/worker"
	"github.com/spf13/cobra"
)

var (
	syncOut     string
	syncTimeout time.Duration
)

// gazetteerCmd represents the gazetteer command group
var gazetteerCmd = &cobra.Command{
	Use:   "gazetteer",
	Short: "Inspect or regenerate the club gazetteer",
}

// gazetteerSyncCmd regenerates the club table from Wikidata
var gazetteerSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerate the club table from the live Wikidata club list",
	Long: `Sync queries Wikidata for every current Bundesliga club with its city and
English aliases and writes the result as a YAML gazetteer table. Point the
gazetteer.table_path config key (or the --gazetteer flag of other commands)
at the file to use it instead of the embedded table.`,
	Args: cobra.NoArgs,
	RunE: runGazetteerSync,
}

// gazetteerShowCmd lists the active gazetteer contents
var gazetteerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the clubs and aliases in the active gazetteer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadStore(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("%d clubs\n\n", store.Len())
		for _, entry := range store.Aliases() {
			kind := "alias"
			if entry.Canonical {
				kind = "name"
			}
			fmt.Printf("%-30s %-5s -> %s\n", entry.Text, kind, entry.Club.Name)
		}
		for _, entry := range store.Cities() {
			for _, club := range entry.Clubs {
				fmt.Printf("%-30s %-5s -> %s\n", entry.Text, "city", club.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gazetteerCmd)
	gazetteerCmd.AddCommand(gazetteerSyncCmd)
	gazetteerCmd.AddCommand(gazetteerShowCmd)

	gazetteerSyncCmd.Flags().StringVar(&syncOut, "out", "clubs.yaml", "output path for the YAML table")
	gazetteerSyncCmd.Flags().DurationVar(&syncTimeout, "timeout", 2*time.Minute, "sync timeout")
}

func runGazetteerSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	limiter := worker.NewLimiter(cfg.HTTP.RatePerSecond, cfg.HTTP.RateBurst)
	client := retrieve.NewWikidataClient(cfg.Sources.SPARQLEndpoint, cfg.HTTP, limiter)

	clubs, err := client.CurrentClubs(ctx)
	if err != nil {
		return fmt.Errorf("fetch club list: %w", err)
	}

	// Fail before writing if the fetched table would not load.
	if _, err := gazetteer.NewStore(clubs); err != nil {
		return fmt.Errorf("fetched table is not usable: %w", err)
	}

	table := gazetteer.Table{Clubs: clubs}
	if err := gazetteer.WriteTable(syncOut, table); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %d clubs to %s\n", len(clubs), syncOut)
	return nil
}
