// Package catalog reads live structure from the store and joins it with
// curated descriptions. Nothing is cached: every call reflects the store
// as it is at that moment.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kylelegare/cu-MCP/internal/config"
	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/store"
	"github.com/kylelegare/cu-MCP/internal/types"
)

const listObjectsSQL = `
	SELECT name, type
	FROM sqlite_schema
	WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
	ORDER BY name`

// Reader performs schema introspection over the shared store. Each call
// checks out its own session and runs under the same fixed deadline as
// query execution.
type Reader struct {
	store   *store.Store
	cfg     config.CatalogConfig
	timeout time.Duration
}

func NewReader(st *store.Store, cfg config.CatalogConfig, timeout time.Duration) *Reader {
	return &Reader{store: st, cfg: cfg, timeout: timeout}
}

// List returns every user table and view in name order, annotated with
// its curated description, plus the standing recommendation.
func (r *Reader) List(ctx context.Context) (*types.SchemaList, error) {
	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.store.Session(qctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(qctx, listObjectsSQL)
	if err != nil {
		return nil, r.mapError(qctx, err)
	}
	defer rows.Close()

	list := &types.SchemaList{
		Tables:         make([]types.SchemaListing, 0, 20),
		Recommendation: Recommendation,
	}
	for rows.Next() {
		var name, kind string
		if err := rows.Scan(&name, &kind); err != nil {
			return nil, r.mapError(qctx, err)
		}
		list.Tables = append(list.Tables, types.SchemaListing{
			Name:        name,
			Kind:        kind,
			Description: tableDescriptions[name],
		})
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(qctx, err)
	}
	return list, nil
}

// Describe resolves a single object case-insensitively and builds its
// descriptor: columns with engine-reported types, total row count and a
// small sample. When the object carries a recency column the sample is
// pinned to the most recent value of that column; otherwise row order is
// whatever the engine returns.
func (r *Reader) Describe(ctx context.Context, name string) (*types.TableSchema, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New(errors.Validation, "table name must not be empty").
			WithHint(errors.HintListing)
	}

	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.store.Session(qctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var resolved, kind string
	row := conn.QueryRowContext(qctx, `
		SELECT name, type
		FROM sqlite_schema
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		  AND lower(name) = lower(?)
		LIMIT 1`, trimmed)
	if err := row.Scan(&resolved, &kind); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Newf(errors.NotFound, "table or view %q not found", trimmed)
		}
		return nil, r.mapError(qctx, err)
	}

	cols, err := r.columns(qctx, conn, resolved)
	if err != nil {
		return nil, err
	}

	quoted := quoteIdentifier(resolved)
	var count int64
	if err := conn.QueryRowContext(qctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted)).Scan(&count); err != nil {
		return nil, r.mapError(qctx, err)
	}

	samples, err := r.sampleRows(qctx, conn, quoted, cols)
	if err != nil {
		return nil, err
	}

	return &types.TableSchema{
		Name:        resolved,
		Kind:        kind,
		Description: tableDescriptions[resolved],
		Columns:     cols,
		RowCount:    count,
		SampleRows:  samples,
	}, nil
}

func (r *Reader) columns(qctx context.Context, conn *sql.Conn, name string) ([]types.ColumnInfo, error) {
	rows, err := conn.QueryContext(qctx, "SELECT name, type FROM pragma_table_info(?) ORDER BY cid", name)
	if err != nil {
		return nil, r.mapError(qctx, err)
	}
	defer rows.Close()

	var cols []types.ColumnInfo
	for rows.Next() {
		var col types.ColumnInfo
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, r.mapError(qctx, err)
		}
		col.Description = columnDescriptions[strings.ToLower(col.Name)]
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(qctx, err)
	}
	return cols, nil
}

// sampleRows fetches up to the configured number of rows. The first
// configured recency column present on the object pins the sample to its
// maximum value, so the rows shown are from the latest reporting cycle.
func (r *Reader) sampleRows(qctx context.Context, conn *sql.Conn, quoted string, cols []types.ColumnInfo) ([][]any, error) {
	sampleSQL := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoted, r.cfg.SampleRows)
	if recency := r.recencyColumn(cols); recency != "" {
		qr := quoteIdentifier(recency)
		sampleSQL = fmt.Sprintf(
			"SELECT * FROM %s WHERE %s = (SELECT MAX(%s) FROM %s) LIMIT %d",
			quoted, qr, qr, quoted, r.cfg.SampleRows,
		)
	}

	rows, err := conn.QueryContext(qctx, sampleSQL)
	if err != nil {
		return nil, r.mapError(qctx, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, r.mapError(qctx, err)
	}

	samples := make([][]any, 0, r.cfg.SampleRows)
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, r.mapError(qctx, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		samples = append(samples, values)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(qctx, err)
	}
	return samples, nil
}

func (r *Reader) recencyColumn(cols []types.ColumnInfo) string {
	for _, want := range r.cfg.RecencyColumns {
		for _, col := range cols {
			if strings.EqualFold(col.Name, want) {
				return col.Name
			}
		}
	}
	return ""
}

func (r *Reader) mapError(qctx context.Context, err error) error {
	if qctx.Err() == context.DeadlineExceeded {
		return errors.Newf(errors.Timeout, "schema introspection exceeded the %s deadline", r.timeout)
	}
	return errors.Wrap(errors.Execution, "schema introspection failed", err)
}

// quoteIdentifier wraps a name in double quotes, doubling any embedded
// quote, so resolved names can be spliced into introspection statements.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
