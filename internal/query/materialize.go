package query

import (
	"database/sql"
	"fmt"

	"github.com/kylelegare/cu-MCP/internal/types"
)

const warningFmt = "Results limited to %d rows; narrow the query with additional filters or a LIMIT clause"

// materialize drains rows into a bounded Result. It reads at most
// maxRows+1 rows: the extra row only proves more data exists and is
// discarded, so the result carries exactly maxRows rows plus the
// truncated flag. Column names are captured before iteration so a
// zero-row result still describes its shape.
func materialize(rows *sql.Rows, maxRows int) (*types.Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	res := &types.Result{
		Columns: cols,
		Rows:    make([][]any, 0, 16),
	}

	for len(res.Rows) <= maxRows && rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(res.Rows) > maxRows {
		res.Rows = res.Rows[:maxRows]
		res.Truncated = true
		res.Warning = fmt.Sprintf(warningFmt, maxRows)
	}
	res.RowCount = len(res.Rows)

	return res, nil
}
