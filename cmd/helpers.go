package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/config"
	"github.com/specdoc/specdoc/internal/embeddings"
	"github.com/specdoc/specdoc/internal/store"
	"github.com/specdoc/specdoc/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `specdoc init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on
// config. Returns nil, nil when no embedding provider is configured;
// semantic search is then disabled.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.EmbeddingOpenAI:
		apiKey := config.OpenAIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	case config.EmbeddingOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, cfg.OllamaBaseURL), nil
	default:
		return nil, nil
	}
}

// openVectorStore creates the vector store and loads any persisted
// index from the data directory. Returns nil when embeddings are not
// configured.
func openVectorStore(ctx context.Context, cfg *config.Config) (vectordb.Store, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, nil
	}

	vs, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	vectorDir := filepath.Join(cfg.DataDir, "vectordb")
	if err := vs.Load(ctx, vectorDir); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", vectorDir, err)
		}
	}
	return vs, nil
}

// openStore opens the sqlite database under the data directory,
// creating the directory if needed.
func openStore(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := store.Open(filepath.Join(cfg.DataDir, "specdoc.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// readSpecFile parses and normalizes a spec file from disk.
func readSpecFile(path string) (*apispec.Spec, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := apispec.ParseAndNormalize(content)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return spec, content, nil
}
