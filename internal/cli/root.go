package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ligacoach/ligacoach/internal/gazetteer"
	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ligacoach",
	Short: "Ligacoach - who is coaching that Bundesliga club?",
	Long: `Ligacoach answers natural-language questions about which manager
currently coaches a Bundesliga club.

A question is resolved against a club gazetteer (exact, alias and fuzzy
matching), the current manager is fetched from Wikidata, the manager's
biography from Wikipedia, and the result is packaged as a structured
prompt for an optional language model.

Ambiguity and missing data are answers too: a city with two clubs, a
vacant manager post or a club outside the league all produce explicit,
well-formed results.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ligacoach v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ligacoach/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.ligacoach")
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	viper.SetEnvPrefix("LIGACOACH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// loadConfig builds the effective configuration: defaults overlaid with the
// config file and LIGACOACH_* environment variables
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// loadStore loads the gazetteer, preferring a configured table file over the
// embedded default
func loadStore(cfg *model.Config) (*gazetteer.Store, error) {
	if cfg.Gazetteer.TablePath != "" {
		store, err := gazetteer.LoadFile(cfg.Gazetteer.TablePath)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		return store, nil
	}
	store, err := gazetteer.Load()
	if err != nil {
		return nil, fmt.Errorf("load embedded gazetteer: %w", err)
	}
	return store, nil
}
