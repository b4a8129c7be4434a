package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/progress"
	"github.com/specdoc/specdoc/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index [spec-file]",
	Short: "Build the embeddings index for semantic search",
	Long: `Embeds every endpoint of the spec and persists the index under the
data directory. Without an argument the most recently uploaded spec is
indexed. Requires embedding_provider to be configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return err
		}
		if embedder == nil {
			return fmt.Errorf("indexing requires an embedding provider; set embedding_provider in %s", cfgFile)
		}

		var spec *apispec.Spec
		if len(args) == 1 {
			spec, _, err = readSpecFile(args[0])
			if err != nil {
				return err
			}
		} else {
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			rec, err := db.LatestSpec(ctx)
			if err != nil {
				return fmt.Errorf("no spec to index: %w", err)
			}
			var s apispec.Spec
			if err := json.Unmarshal([]byte(rec.Normalized), &s); err != nil {
				return fmt.Errorf("decoding stored spec: %w", err)
			}
			spec = &s
		}

		docs := vectordb.EndpointDocuments(spec)
		if len(docs) == 0 {
			fmt.Println("Spec has no endpoints to index.")
			return nil
		}

		vs, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		reporter := progress.NewReporter()
		reporter.Start(len(docs))
		for i, doc := range docs {
			if err := vs.Add(ctx, []vectordb.Document{doc}); err != nil {
				reporter.Finish()
				return fmt.Errorf("embedding %s: %w", doc.ID, err)
			}
			reporter.Update(i+1, doc.ID)
		}
		reporter.Finish()

		vectorDir := filepath.Join(cfg.DataDir, "vectordb")
		if err := os.MkdirAll(vectorDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", vectorDir, err)
		}
		if err := vs.Persist(ctx, vectorDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}

		color.Green("Indexed %d endpoints with %s", len(docs), embedder.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
