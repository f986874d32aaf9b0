// Package errors defines the gateway error taxonomy and the single external
// error shape. Every failure surface (validator rejection, execution
// timeout, engine error, catalog lookup miss) is translated to a Report
// before it crosses the boundary; no internal error value leaks through
// untranslated.
package errors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation marks statements rejected before any execution.
	Validation Kind = "validation"
	// Timeout marks executions that exceeded the configured deadline.
	Timeout Kind = "timeout"
	// Execution marks engine rejections and resource-acquisition failures.
	Execution Kind = "execution"
	// NotFound marks schema lookups for nonexistent catalog objects.
	NotFound Kind = "not_found"
)

// Remediation hints attached to translated reports.
const (
	HintSchema   = "Check table and column names using the get_schema tool"
	HintNarrow   = "Simplify filters or aggregate before returning large result sets"
	HintListing  = "Call get_schema without arguments to list available tables and views"
	HintReadOnly = "Only read-only SELECT or WITH queries are accepted"
)

// E wraps an error with its kind, a human-friendly message and an optional
// remediation hint.
type E struct {
	Kind    Kind
	Message string
	Hint    string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *E { return &E{Kind: kind, Message: msg} }

func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }

// WithHint sets the remediation hint and returns e for chaining.
func (e *E) WithHint(hint string) *E {
	e.Hint = hint
	return e
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	var e *E
	return errors.As(err, &e) && e.Kind == kind
}

// Report is the one external error shape. Terminal: reported failures are
// never retried automatically.
type Report struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Translate maps any failure to a Report. Errors without a kind become
// execution reports; missing hints are filled from the kind's default so
// every report stays actionable.
func Translate(err error) Report {
	var e *E
	if errors.As(err, &e) {
		hint := e.Hint
		if hint == "" {
			hint = defaultHint(e.Kind)
		}
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return Report{Kind: e.Kind, Message: msg, Hint: hint}
	}
	return Report{Kind: Execution, Message: err.Error(), Hint: HintSchema}
}

func defaultHint(kind Kind) string {
	switch kind {
	case Validation:
		return HintReadOnly
	case Timeout:
		return HintNarrow
	case NotFound:
		return HintListing
	default:
		return HintSchema
	}
}
