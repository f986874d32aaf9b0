package cli

import (
	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/examples"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [category]",
	Short: "Print curated example queries as JSON",
	Long: `Examples prints the curated query catalog, optionally filtered to one
category. The catalog is static: no database access happens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) > 0 {
			category = args[0]
		}
		set, err := examples.Filter(category)
		if err != nil {
			return reportAndFail(err)
		}
		return printJSON(set)
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
