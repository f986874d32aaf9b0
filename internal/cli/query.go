package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/errors"
)

var (
	flagTimeout time.Duration
	flagMaxRows int
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Execute one statement and print the result as JSON",
	Long: `Query runs a single read-only statement through the gateway and prints
the materialized result as JSON. Pass - to read the statement from
stdin. Failures print a translated error report and exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Query.Timeout = flagTimeout
		}
		if cmd.Flags().Changed("max-rows") {
			cfg.Query.MaxRows = flagMaxRows
		}

		statement := args[0]
		if statement == "-" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read statement from stdin: %w", err)
			}
			statement = string(raw)
		}

		st, eng, _, err := openGateway(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := eng.Execute(context.Background(), statement)
		if err != nil {
			return reportAndFail(err)
		}
		return printJSON(res)
	},
}

// reportAndFail prints the translated report to stderr and returns a
// bare error so cobra exits non-zero without repeating the message.
func reportAndFail(err error) error {
	rep := errors.Translate(err)
	data, merr := json.MarshalIndent(rep, "", "  ")
	if merr != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, string(data))
	return fmt.Errorf("%s error", rep.Kind)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	queryCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-statement deadline (overrides CUMCP_QUERY_TIMEOUT)")
	queryCmd.Flags().IntVar(&flagMaxRows, "max-rows", 0, "Result row cap (overrides CUMCP_QUERY_MAX_ROWS)")
	rootCmd.AddCommand(queryCmd)
}
