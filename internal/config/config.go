// Package config loads specdoc configuration from .specdoc.yml with
// SPECDOC_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

const (
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
	EmbeddingNone   EmbeddingProvider = ""
)

// Config is the top-level specdoc configuration, corresponding to
// .specdoc.yml.
type Config struct {
	Port            int      `yaml:"port" koanf:"port"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ExamplesDir     string   `yaml:"examples_dir" koanf:"examples_dir"`
	ExamplesInclude []string `yaml:"examples_include" koanf:"examples_include"`
	ExamplesExclude []string `yaml:"examples_exclude" koanf:"examples_exclude"`

	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaBaseURL     string            `yaml:"ollama_base_url" koanf:"ollama_base_url"`

	// ChatModel is the OpenAI model used to refine chat answers; empty
	// keeps the bot fully rule-based.
	ChatModel string `yaml:"chat_model" koanf:"chat_model"`

	SearchLimit     int     `yaml:"search_limit" koanf:"search_limit"`
	SearchThreshold float64 `yaml:"search_threshold" koanf:"search_threshold"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8000,
		DataDir:           ".specdoc",
		AllowAllOrigins:   true,
		ExamplesDir:       "examples",
		EmbeddingProvider: EmbeddingNone,
		EmbeddingModel:    "text-embedding-3-small",
		SearchLimit:       10,
		SearchThreshold:   0.5,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SPECDOC_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("SPECDOC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SPECDOC_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validEmbeddingProviders = map[EmbeddingProvider]bool{
	EmbeddingNone:   true,
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !validEmbeddingProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be openai, ollama, or empty", c.EmbeddingProvider)
	}
	if c.EmbeddingProvider != EmbeddingNone && c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required when embedding_provider is set")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		return fmt.Errorf("search_threshold must be between 0 and 1")
	}
	return nil
}

// OpenAIKey returns the conventional API key environment variable's
// value.
func OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }
