package model

import "time"

// Config holds the full process configuration. Values are static for the
// lifetime of the process: built once from defaults, config file, environment
// and flags, then passed explicitly into the pipeline.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Sources    SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Gazetteer  GazetteerConfig  `yaml:"gazetteer" mapstructure:"gazetteer"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Bench      BenchConfig      `yaml:"bench" mapstructure:"bench"`
}

// HTTPConfig controls the outbound HTTP clients
type HTTPConfig struct {
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`                   // Per-request timeout
	RetryBackoff   time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`       // Delay before the single retry
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSecond  float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`   // Per-host request rate
	RateBurst      int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// SourcesConfig points at the external knowledge endpoints
type SourcesConfig struct {
	SPARQLEndpoint   string `yaml:"sparql_endpoint" mapstructure:"sparql_endpoint"`
	WikidataAPI      string `yaml:"wikidata_api" mapstructure:"wikidata_api"`
	WikipediaAPI     string `yaml:"wikipedia_api" mapstructure:"wikipedia_api"`
}

// ThresholdsConfig holds the recognition and resolution tuning values.
// These are design defaults to be tuned empirically, not contracts.
type ThresholdsConfig struct {
	FuzzyFloor      float64 `yaml:"fuzzy_floor" mapstructure:"fuzzy_floor"`             // Minimum similarity for a fuzzy candidate
	Accept          float64 `yaml:"accept" mapstructure:"accept"`                       // Minimum confidence to resolve
	AmbiguityMargin float64 `yaml:"ambiguity_margin" mapstructure:"ambiguity_margin"`   // Max gap that still counts as a tie
	TaggerCap       float64 `yaml:"tagger_cap" mapstructure:"tagger_cap"`               // Ceiling for tagger-sourced confidence
	WindowDeviation int     `yaml:"window_deviation" mapstructure:"window_deviation"`   // Fuzzy window length slack around alias length
}

// GazetteerConfig controls where the club table comes from
type GazetteerConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"` // Optional YAML override; empty = embedded table
	Tagger    string `yaml:"tagger" mapstructure:"tagger"`         // "heuristic" or "none"
}

// LLMConfig configures the optional answer-generation provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`         // Never serialized; prefer OPENAI_API_KEY
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`   // Seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// BenchConfig configures the benchmark command
type BenchConfig struct {
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	FailuresCSV string `yaml:"failures_csv" mapstructure:"failures_csv"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       5 * time.Second,
			RetryBackoff:  500 * time.Millisecond,
			UserAgent:     "ligacoach/0.1 (+https://github.com/ligacoach/ligacoach)",
			RatePerSecond: 2,
			RateBurst:     4,
		},
		Sources: SourcesConfig{
			SPARQLEndpoint: "https://query.wikidata.org/sparql",
			WikidataAPI:    "https://www.wikidata.org/w/api.php",
			WikipediaAPI:   "https://en.wikipedia.org/w/api.php",
		},
		Thresholds: ThresholdsConfig{
			FuzzyFloor:      0.75,
			Accept:          0.80,
			AmbiguityMargin: 0.05,
			TaggerCap:       0.90,
			WindowDeviation: 3,
		},
		Gazetteer: GazetteerConfig{
			Tagger: "heuristic",
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Model:     "",
			Timeout:   30,
			MaxTokens: 500,
		},
		Bench: BenchConfig{
			Concurrency: 4,
			FailuresCSV: "failed_queries.csv",
		},
	}
}
