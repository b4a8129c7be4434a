package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/specdoc/specdoc/internal/mcp"
	"github.com/specdoc/specdoc/internal/store"
)

var mcpSpecFile string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the
uploaded API spec's summary, endpoints, search, and flow diagram as
tools for AI agents. Pass --spec to load a spec file instead of relying
on a previous upload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if mcpSpecFile != "" {
			spec, raw, err := readSpecFile(mcpSpecFile)
			if err != nil {
				return err
			}
			normalized, err := json.Marshal(spec)
			if err != nil {
				return fmt.Errorf("encoding spec: %w", err)
			}
			_, err = db.SaveSpec(context.Background(), &store.SpecRecord{
				Title:      spec.Info.Title,
				Version:    spec.Info.Version,
				PathCount:  spec.PathCount(),
				Raw:        string(raw),
				Normalized: string(normalized),
			})
			if err != nil {
				return fmt.Errorf("storing spec: %w", err)
			}
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "specdoc MCP server started on stdio (data=%s)\n", cfg.DataDir)

		srv := mcpserver.NewServer(db)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpSpecFile, "spec", "", "spec file to load before serving")
	rootCmd.AddCommand(mcpCmd)
}
