// Package query runs validated statements against the shared read-only
// store. Every execution gets a dedicated session and a fixed deadline;
// results come back bounded by the configured row cap. Failed or timed
// out statements are never retried.
package query

import (
	"context"

	"github.com/kylelegare/cu-MCP/internal/config"
	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/metrics"
	"github.com/kylelegare/cu-MCP/internal/store"
	"github.com/kylelegare/cu-MCP/internal/types"
	"github.com/kylelegare/cu-MCP/internal/validate"
)

// Engine coordinates validation, session scoping and materialization for
// one statement at a time.
type Engine struct {
	store *store.Store
	cfg   config.QueryConfig
}

func New(st *store.Store, cfg config.QueryConfig) *Engine {
	return &Engine{store: st, cfg: cfg}
}

// MaxRows returns the configured result row cap.
func (e *Engine) MaxRows() int { return e.cfg.MaxRows }

// Execute validates the statement, runs it on a dedicated session under
// the configured deadline and returns the bounded result. The session is
// released on every exit path. A deadline hit maps to a timeout error; a
// session acquisition failure maps to an execution error, never a
// timeout.
func (e *Engine) Execute(ctx context.Context, statement string) (*types.Result, error) {
	if err := validate.Validate(statement); err != nil {
		return nil, err
	}

	qctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	conn, err := e.store.Session(qctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(qctx, statement)
	if err != nil {
		return nil, e.mapError(qctx, err)
	}
	defer rows.Close()

	res, err := materialize(rows, e.cfg.MaxRows)
	if err != nil {
		return nil, e.mapError(qctx, err)
	}

	metrics.RowsReturned.Observe(float64(res.RowCount))
	if res.Truncated {
		metrics.TruncationsTotal.Inc()
	}
	return res, nil
}

// mapError classifies an execution failure. The deadline check comes
// first: drivers wrap context errors in engine-specific text, so the
// context itself is the reliable signal.
func (e *Engine) mapError(qctx context.Context, err error) error {
	if qctx.Err() == context.DeadlineExceeded {
		return errors.Newf(errors.Timeout, "query exceeded the %s execution deadline", e.cfg.Timeout)
	}
	return errors.Wrap(errors.Execution, "query failed", err)
}
