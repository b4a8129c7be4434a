package cmd

import (
	"github.com/spf13/cobra"

	"github.com/specdoc/specdoc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize specdoc configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure specdoc and generates a .specdoc.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
