package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "specdoc",
	Short: "API spec summarizer with search and chat",
	Long: `Specdoc turns an API specification (OpenAPI, Swagger, or Postman
collection) into a readable markdown summary with endpoint and
parameter tables, authentication notes, and a Mermaid flow diagram.
It serves the summary over HTTP with keyword and semantic search, a
documentation chat bot, and exposes the spec to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".specdoc.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
