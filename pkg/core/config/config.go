// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     config
// Description: TOML configuration with environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// DefaultSeed seeds the shuffles when the config sets no seed
const DefaultSeed int64 = 4242

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig           `toml:"general"`
	Sentences  SentenceConfig          `toml:"sentences"`
	Interleave InterleaveConfig        `toml:"interleave"`
	Phoneme    PhonemeConfig           `toml:"phoneme"`
	Scraping   ScrapingConfig          `toml:"scraping"`
	Annotate   AnnotateConfig          `toml:"annotate"`
	Sources    map[string]SourceConfig `toml:"sources"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	DataDir      string `toml:"data_dir" env:"TALETEKST_DATA_DIR"`
	RawDir       string `toml:"raw_dir"`
	ProcessedDir string `toml:"processed_dir"`
	LogLevel     string `toml:"log_level" env:"TALETEKST_LOG_LEVEL"`
	LogFormat    string `toml:"log_format" env:"TALETEKST_LOG_FORMAT"`
	LogFile      string `toml:"log_file" env:"TALETEKST_LOG_FILE"`
	Seed         int64  `toml:"seed" env:"TALETEKST_SEED"`
	Workers      int    `toml:"workers" env:"TALETEKST_WORKERS"`
}

// SentenceConfig holds sentence extraction settings
type SentenceConfig struct {
	MinSentenceLength int    `toml:"min_sentence_length" env:"TALETEKST_MIN_SENTENCE_LENGTH"`
	PunktModel        string `toml:"punkt_model" env:"TALETEKST_PUNKT_MODEL"`
}

// InterleaveConfig holds the sampling plan for the final dataset
type InterleaveConfig struct {
	SamplingProbabilities map[string]float64 `toml:"sampling_probabilities"`
	IncludeEntireDataset  []string           `toml:"include_entire_dataset"`
	Exhaustion            string             `toml:"exhaustion"`
	MaxSamples            int                `toml:"max_samples" env:"TALETEKST_MAX_SAMPLES"`
	OutputFile            string             `toml:"output_file"`
}

// PhonemeConfig holds phoneme covering settings
type PhonemeConfig struct {
	InventoryFile     string   `toml:"inventory_file"`
	CorpusFile        string   `toml:"corpus_file"`
	StorePath         string   `toml:"store_path"`
	SortStrategy      string   `toml:"sort_strategy" env:"TALETEKST_SORT_STRATEGY"`
	MinDocsPerPhoneme int      `toml:"min_docs_per_phoneme"`
	SplitStrings      []string `toml:"split_strings"`
	OutputFile        string   `toml:"output_file"`
	FoldCase          bool     `toml:"fold_case"`
}

// ScrapingConfig holds settings of the HTTP collaborators
type ScrapingConfig struct {
	Retries   int      `toml:"retries"`
	RetryWait Duration `toml:"retry_wait"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
	MaxPages  int      `toml:"max_pages"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

// AnnotateConfig holds settings of the manual filtering tool
type AnnotateConfig struct {
	InputFile  string `toml:"input_file"`
	OutputFile string `toml:"output_file"`
	Username   string `toml:"username" env:"TALETEKST_USERNAME"`
	NumSamples int    `toml:"num_samples"`
	StartIndex int    `toml:"start_index"`
}

// SourceConfig describes one named sub-dataset
type SourceConfig struct {
	Kind      string `toml:"kind"`
	Path      string `toml:"path"`
	URL       string `toml:"url"`
	Scope     string `toml:"scope"`
	Container string `toml:"container"`
	Column    string `toml:"column"`
	MaxPages  int    `toml:"max_pages"`
	Refresh   bool   `toml:"refresh"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from a TOML file, applies defaults and
// environment overrides
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, tterr.Newf(tterr.CodeMissingConfig, "config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeInvalidConfig, "failed to parse config").
			WithDetail("path", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeInvalidConfig, "failed to read environment overrides")
	}

	// 0 is a valid seed, so only a missing key gets the default
	_, seedFromEnv := os.LookupEnv("TALETEKST_SEED")
	if !md.IsDefined("general", "seed") && !seedFromEnv {
		cfg.General.Seed = DefaultSeed
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// Resolve loads the config from an explicit path, TALETEKST_CONFIG or the
// default locations, in that order
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	path := os.Getenv("TALETEKST_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/taletekst/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, tterr.New(tterr.CodeMissingConfig,
			"no config file found, set TALETEKST_CONFIG or create configs/config.toml")
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.RawDir == "" {
		c.General.RawDir = "raw"
	}
	if c.General.ProcessedDir == "" {
		c.General.ProcessedDir = "processed"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.General.Workers <= 0 {
		c.General.Workers = 4
	}

	// Sentences
	if c.Sentences.MinSentenceLength == 0 {
		c.Sentences.MinSentenceLength = 5
	}

	// Interleave
	if c.Interleave.Exhaustion == "" {
		c.Interleave.Exhaustion = ExhaustionStop
	}
	if c.Interleave.OutputFile == "" {
		c.Interleave.OutputFile = "dataset.txt"
	}

	// Phoneme
	if c.Phoneme.InventoryFile == "" {
		c.Phoneme.InventoryFile = "phonemes.json"
	}
	if c.Phoneme.CorpusFile == "" {
		c.Phoneme.CorpusFile = "wiki40b-da.txt"
	}
	if c.Phoneme.StorePath == "" {
		c.Phoneme.StorePath = "ranked.db"
	}
	if c.Phoneme.SortStrategy == "" {
		c.Phoneme.SortStrategy = "all"
	}
	if c.Phoneme.MinDocsPerPhoneme == 0 {
		c.Phoneme.MinDocsPerPhoneme = 1
	}
	if c.Phoneme.SplitStrings == nil {
		c.Phoneme.SplitStrings = []string{
			"_START_ARTICLE_", "_START_SECTION_", "_START_PARAGRAPH_", "_NEWLINE_",
		}
	}
	if c.Phoneme.OutputFile == "" {
		c.Phoneme.OutputFile = "phoneme_covering_set.txt"
	}

	// Scraping
	if c.Scraping.Retries == 0 {
		c.Scraping.Retries = 3
	}
	if c.Scraping.RetryWait.Duration == 0 {
		c.Scraping.RetryWait.Duration = 2 * time.Second
	}
	if c.Scraping.Timeout.Duration == 0 {
		c.Scraping.Timeout.Duration = 30 * time.Second
	}
	if c.Scraping.UserAgent == "" {
		c.Scraping.UserAgent = "taletekst/0.1 (+corpus builder)"
	}
	if c.Scraping.MaxPages == 0 {
		c.Scraping.MaxPages = 500
	}
	if c.Scraping.CacheTTL.Duration == 0 {
		c.Scraping.CacheTTL.Duration = 10 * time.Minute
	}

	// Annotate
	if c.Annotate.InputFile == "" {
		c.Annotate.InputFile = "reddit_comments.txt"
	}
	if c.Annotate.OutputFile == "" {
		c.Annotate.OutputFile = "filtered_comments.csv"
	}
	if c.Annotate.NumSamples == 0 {
		c.Annotate.NumSamples = 1000
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Sentences.PunktModel = os.ExpandEnv(c.Sentences.PunktModel)
	for name, src := range c.Sources {
		src.Path = os.ExpandEnv(src.Path)
		c.Sources[name] = src
	}
}

// RawPath returns a path inside the raw data directory. Absolute names are
// returned unchanged.
func (c *Config) RawPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.General.DataDir, c.General.RawDir, name)
}

// ProcessedPath returns a path inside the processed data directory
func (c *Config) ProcessedPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.General.DataDir, c.General.ProcessedDir, name)
}

// SourceNames returns the configured source names in sorted order
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
