package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/config"
	"github.com/specdoc/specdoc/internal/search"
	"github.com/specdoc/specdoc/internal/vectordb"
)

var (
	searchFile     string
	searchSemantic bool
	searchJSON     bool
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search the uploaded API spec for a keyword",
	Long: `Searches endpoints and components of an API spec. By default the most
recently uploaded spec is searched; pass --file to search a spec file
directly. With --semantic the query runs against the embeddings index
built by ` + "`specdoc index`" + ` instead of keyword matching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "search this spec file instead of the stored spec")
	searchCmd.Flags().BoolVar(&searchSemantic, "semantic", false, "semantic search over the embeddings index")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of semantic results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if searchSemantic {
		return runSemanticSearch(ctx, cfg, query)
	}

	var spec *apispec.Spec
	if searchFile != "" {
		spec, _, err = readSpecFile(searchFile)
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
		if err == nil {
			var s apispec.Spec
			if err := json.Unmarshal([]byte(rec.Normalized), &s); err != nil {
				return fmt.Errorf("decoding stored spec: %w", err)
			}
			spec = &s
		}
	}

	result := search.Keyword(spec, query)
	if result.Error != "" {
		return fmt.Errorf("%s", result.Error)
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printKeywordResult(result)
	return nil
}

func runSemanticSearch(ctx context.Context, cfg *config.Config, query string) error {
	vs, err := openVectorStore(ctx, cfg)
	if err != nil {
		return err
	}
	if vs == nil {
		return fmt.Errorf("semantic search requires an embedding provider; set embedding_provider in %s", cfgFile)
	}
	if vs.Count() == 0 {
		fmt.Println("Embeddings index is empty. Run `specdoc index` first.")
		return nil
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.SearchLimit
	}
	matches, err := vectordb.Semantic(ctx, vs, query, limit, float32(cfg.SearchThreshold))
	if err != nil {
		return fmt.Errorf("semantic search: %w", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	fmt.Printf("Found %d match(es):\n\n", len(matches))
	for i, m := range matches {
		color.New(color.Bold).Printf("  %d. [%.1f%%] %s %s\n",
			i+1, m.Similarity*100, m.Document.Metadata.Method, m.Document.Metadata.Path)
		fmt.Printf("     %s\n\n", m.Document.Content)
	}
	return nil
}

func printKeywordResult(result *search.Result) {
	if result.TotalMatches == 0 {
		fmt.Printf("No matches for %q.\n", result.Keyword)
		return
	}

	fmt.Printf("Found %d match(es) for %q:\n\n", result.TotalMatches, result.Keyword)

	paths := make([]string, 0, len(result.Endpoints))
	for path := range result.Endpoints {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	bold := color.New(color.Bold)
	for _, path := range paths {
		methods := make([]string, 0, len(result.Endpoints[path]))
		for method := range result.Endpoints[path] {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			bold.Printf("  %s %s\n", method, path)
			fmt.Printf("     %s\n", result.Endpoints[path][method].Description)
		}
	}

	if len(result.Components) > 0 {
		names := make([]string, 0, len(result.Components))
		for name := range result.Components {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("\nComponents:")
		for _, name := range names {
			c := result.Components[name]
			fmt.Printf("  - %s (%s)\n", c.Name, c.Type)
		}
	}
}
