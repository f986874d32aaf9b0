package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [table]",
	Short: "Print schema information as JSON",
	Long: `Schema lists every table and view with a short description. Given a
name it prints that object's columns, row count and a few recent sample
rows instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, _, rd, err := openGateway(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		if len(args) == 0 {
			list, err := rd.List(ctx)
			if err != nil {
				return reportAndFail(err)
			}
			return printJSON(list)
		}

		ts, err := rd.Describe(ctx, args[0])
		if err != nil {
			return reportAndFail(err)
		}
		return printJSON(ts)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
