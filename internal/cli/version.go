package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gateway version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cumcp", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
