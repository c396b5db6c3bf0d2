package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/speller/pkg/speller/candidate"
	"github.com/cognicore/speller/pkg/speller/corpus"
	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/ngram"
)

// Config is the full speller configuration.
type Config struct {
	Model      Model      `yaml:"model"`
	Context    Context    `yaml:"context"`
	Ranking    Ranking    `yaml:"ranking"`
	Detect     Detect     `yaml:"detect"`
	Corpus     Corpus     `yaml:"corpus"`
	Dictionary Dictionary `yaml:"dictionary"`
	Lemma      Lemma      `yaml:"lemma"`
}

// Model holds n-gram smoothing parameters.
type Model struct {
	Smoothing float64 `yaml:"smoothing"`
	Backoff   float64 `yaml:"backoff"`
}

// Context weighs the three context models and sets the detection floor.
type Context struct {
	ngram.Weights `yaml:",inline"`
	Threshold     float64 `yaml:"threshold"`
}

// Ranking weighs candidate ranking terms.
type Ranking struct {
	candidate.RankWeights `yaml:",inline"`
	Candidates            int `yaml:"candidates"`
}

// Detect tunes the detector.
type Detect struct {
	Workers int `yaml:"workers"`
}

// Corpus lists the raw books and where processed text goes.
type Corpus struct {
	RawDir       string          `yaml:"raw_dir"`
	ProcessedDir string          `yaml:"processed_dir"`
	MergedFile   string          `yaml:"merged_file"`
	Sources      []corpus.Source `yaml:"sources"`
}

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Dictionary selects and configures the word-list store.
type Dictionary struct {
	Backend         string `yaml:"backend"`
	Dir             string `yaml:"dir"`
	DomainFile      string `yaml:"domain_file"`
	CombinedFile    string `yaml:"combined_file"`
	SQLitePath      string `yaml:"sqlite_path"`
	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`
	RedisDB         int    `yaml:"redis_db"`
	RedisPrefix     string `yaml:"redis_prefix"`
	GeneralWordlist string `yaml:"general_wordlist"`
}

// Lemma points at extra irregular forms.
type Lemma struct {
	Exceptions string `yaml:"exceptions"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Model: Model{Smoothing: ngram.DefaultSmoothing, Backoff: ngram.DefaultBackoff},
		Context: Context{
			Weights:   ngram.DefaultWeights(),
			Threshold: candidate.DefaultThreshold,
		},
		Ranking: Ranking{
			RankWeights: candidate.DefaultRankWeights(),
			Candidates:  candidate.DefaultLimit,
		},
		Corpus: Corpus{
			RawDir:       "Corpora/raw",
			ProcessedDir: "Corpora/processed",
			MergedFile:   "merged_cleaned_corpus.txt",
		},
		Dictionary: Dictionary{
			Backend:     BackendFile,
			Dir:         "Dictionary",
			SQLitePath:  "speller.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "speller",
		},
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the models cannot work with.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), internalerr.ErrInvalidConfig)
	}

	if c.Model.Smoothing <= 0 {
		return invalid("model.smoothing must be positive, got %v", c.Model.Smoothing)
	}
	if c.Model.Backoff <= 0 || c.Model.Backoff > 1 {
		return invalid("model.backoff must be in (0,1], got %v", c.Model.Backoff)
	}

	w := c.Context.Weights
	if w.Bigram < 0 || w.RightBigram < 0 || w.Trigram < 0 {
		return invalid("context weights must not be negative")
	}
	if w.Bigram+w.RightBigram+w.Trigram == 0 {
		return invalid("context weights are all zero")
	}
	if c.Context.Threshold >= 0 {
		return invalid("context.threshold is a log probability and must be negative, got %v", c.Context.Threshold)
	}

	r := c.Ranking.RankWeights
	if r.EditDistance < 0 || r.DoubleMetaphone < 0 || r.ContextScore < 0 {
		return invalid("ranking weights must not be negative")
	}
	if c.Ranking.Candidates < 1 {
		return invalid("ranking.candidates must be at least 1, got %d", c.Ranking.Candidates)
	}
	if c.Detect.Workers < 0 {
		return invalid("detect.workers must not be negative")
	}

	switch c.Dictionary.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return invalid("unknown dictionary backend %q", c.Dictionary.Backend)
	}
	return nil
}

// ApplyEnv lets the environment override the store address.
// Recognized: REDIS_ADDR, REDIS_PASSWORD, REDIS_DB.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Dictionary.RedisAddr = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Dictionary.RedisPassword = v
	}
	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB %q: %w", v, internalerr.ErrInvalidConfig)
		}
		c.Dictionary.RedisDB = db
	}
	return nil
}

// CorpusBuilder returns a builder for the configured sources.
func (c *Config) CorpusBuilder(logf func(string, ...any)) *corpus.Builder {
	return &corpus.Builder{
		RawDir:       c.Corpus.RawDir,
		ProcessedDir: c.Corpus.ProcessedDir,
		MergedFile:   c.Corpus.MergedFile,
		Sources:      c.Corpus.Sources,
		Logf:         logf,
	}
}
