package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/specdoc/specdoc/internal/examples"
)

// RunWizard interactively builds a Config and saves it to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to specdoc! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	dataPrompt := promptui.Prompt{Label: "Data directory", Default: cfg.DataDir}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}

	examplesPrompt := promptui.Prompt{Label: "Examples directory", Default: cfg.ExamplesDir}
	if cfg.ExamplesDir, err = examplesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("examples dir prompt: %w", err)
	}
	if found, err := examples.Discover(cfg.ExamplesDir, nil, nil); err == nil && len(found) > 0 {
		fmt.Printf("Found %d example spec(s) in %s\n", len(found), cfg.ExamplesDir)
	}

	providerPrompt := promptui.Select{
		Label: "Embedding provider for semantic search",
		Items: []string{"none", "openai", "ollama"},
	}
	_, provider, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	switch provider {
	case "openai":
		cfg.EmbeddingProvider = EmbeddingOpenAI
		cfg.EmbeddingModel = "text-embedding-3-small"
		if OpenAIKey() == "" {
			fmt.Fprintln(os.Stderr, "Note: OPENAI_API_KEY is not set; semantic search will fail until it is.")
		}
	case "ollama":
		cfg.EmbeddingProvider = EmbeddingOllama
		modelPrompt := promptui.Prompt{Label: "Ollama embedding model", Default: "nomic-embed-text"}
		if cfg.EmbeddingModel, err = modelPrompt.Run(); err != nil {
			return nil, fmt.Errorf("model prompt: %w", err)
		}
	default:
		cfg.EmbeddingProvider = EmbeddingNone
	}

	chatPrompt := promptui.Select{
		Label: "Chat answers",
		Items: []string{"rule-based only", "refine with OpenAI"},
	}
	idx, _, err := chatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chat selection: %w", err)
	}
	if idx == 1 {
		cfg.ChatModel = "gpt-4o-mini"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
