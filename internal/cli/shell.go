package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive query shell",
	Long: `Shell starts a line-edited console against the gateway. Statements go
through the same validation, deadline and row cap as served requests;
results render as aligned tables. Type .help inside the shell for the
meta commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, eng, rd, err := openGateway(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		return shell.New(eng, rd, cfg.Query.Timeout, os.Stdout).Run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
