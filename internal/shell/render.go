package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/examples"
	"github.com/kylelegare/cu-MCP/internal/types"
)

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  .help               Show this help message")
	fmt.Fprintln(s.out, "  .tables             List tables and views")
	fmt.Fprintln(s.out, "  .schema <table>     Describe one table or view")
	fmt.Fprintln(s.out, "  .examples [cat]     Show example queries, optionally one category")
	fmt.Fprintln(s.out, "  .timeout            Show the query deadline")
	fmt.Fprintln(s.out, "  .exit               Leave the shell")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Anything else is executed as a read-only SQL statement.")
}

func (s *Shell) printTables() {
	list, err := s.reader.List(context.Background())
	if err != nil {
		s.printReport(errors.Translate(err))
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDESCRIPTION")
	for _, tb := range list.Tables {
		fmt.Fprintf(w, "%s\t%s\t%s\n", tb.Name, tb.Kind, tb.Description)
	}
	w.Flush()
	fmt.Fprintf(s.out, "\n%s\n", list.Recommendation)
}

func (s *Shell) printSchema(name string) {
	ts, err := s.reader.Describe(context.Background(), name)
	if err != nil {
		s.printReport(errors.Translate(err))
		return
	}

	fmt.Fprintf(s.out, "%s (%s)", ts.Name, ts.Kind)
	if ts.Description != "" {
		fmt.Fprintf(s.out, " - %s", ts.Description)
	}
	fmt.Fprintf(s.out, "\nrows: %d\n\n", ts.RowCount)

	w := tabwriter.NewWriter(s.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tTYPE\tDESCRIPTION")
	for _, col := range ts.Columns {
		fmt.Fprintf(w, "%s\t%s\t%s\n", col.Name, col.Type, col.Description)
	}
	w.Flush()

	if len(ts.SampleRows) > 0 {
		fmt.Fprintln(s.out, "\nsample rows:")
		cols := make([]string, len(ts.Columns))
		for i, col := range ts.Columns {
			cols[i] = col.Name
		}
		s.printGrid(cols, ts.SampleRows)
	}
}

func (s *Shell) printExamples(category string) {
	set, err := examples.Filter(category)
	if err != nil {
		s.printReport(errors.Translate(err))
		return
	}

	for _, ex := range set.Examples {
		fmt.Fprintf(s.out, "[%s] %s\n", ex.Category, ex.Title)
		fmt.Fprintf(s.out, "  %s\n", ex.Description)
		for _, line := range strings.Split(ex.SQL, "\n") {
			fmt.Fprintf(s.out, "    %s\n", line)
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprintf(s.out, "%d examples. %s\n", len(set.Examples), set.Note)
}

func (s *Shell) printResult(res *types.Result) {
	s.printGrid(res.Columns, res.Rows)
	fmt.Fprintf(s.out, "(%d rows)\n", res.RowCount)
	if res.Warning != "" {
		fmt.Fprintf(s.out, "warning: %s\n", res.Warning)
	}
}

func (s *Shell) printGrid(columns []string, rows [][]any) {
	w := tabwriter.NewWriter(s.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
