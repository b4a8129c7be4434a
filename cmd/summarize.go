package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specdoc/specdoc/internal/summary"
)

var summarizeOut string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <spec-file>",
	Short: "Generate a markdown summary of an API spec",
	Long: `Parses an OpenAPI, Swagger, or Postman spec file and writes the
markdown summary document to stdout, or to a file with --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, _, err := readSpecFile(args[0])
		if err != nil {
			return err
		}

		doc := summary.Build(spec)

		if summarizeOut != "" {
			if err := os.WriteFile(summarizeOut, []byte(doc+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", summarizeOut, err)
			}
			color.Green("Summary written to %s", summarizeOut)
			color.New(color.Faint).Printf("  %s %s, %d paths\n",
				spec.Info.Title, spec.Info.Version, spec.PathCount())
			return nil
		}

		fmt.Println(doc)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeOut, "out", "o", "", "write the summary to a file instead of stdout")
	rootCmd.AddCommand(summarizeCmd)
}
