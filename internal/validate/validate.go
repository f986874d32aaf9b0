// Package validate decides whether caller-supplied query text is safe to
// execute. It is pure: no I/O, no store access, and the text handed
// downstream is never altered. Matching works on lexical tokens, never on
// substrings, so a forbidden word inside a string literal, a quoted
// identifier, or a longer name is not a match, while a bare keyword is a
// match regardless of case, comments, or whitespace tricks.
package validate

import (
	"strings"

	"github.com/kylelegare/cu-MCP/internal/errors"
)

// forbidden holds statement keywords that must never appear as whole
// tokens. Covers the common write/DDL verbs plus TRUNCATE and REINDEX.
// REPLACE is deliberately absent: replace() is a scalar function in the
// query dialect, and a REPLACE INTO statement already fails the
// SELECT/WITH prefix rule.
var forbidden = map[string]struct{}{
	"DROP":     {},
	"DELETE":   {},
	"UPDATE":   {},
	"INSERT":   {},
	"ALTER":    {},
	"CREATE":   {},
	"ATTACH":   {},
	"DETACH":   {},
	"COPY":     {},
	"PRAGMA":   {},
	"EXPORT":   {},
	"IMPORT":   {},
	"CALL":     {},
	"GRANT":    {},
	"REVOKE":   {},
	"VACUUM":   {},
	"TRUNCATE": {},
	"REINDEX":  {},
}

// Validate accepts or rejects one statement of query text. A nil return
// means accepted. Rejections carry a validation-kind error naming the
// exact rule that failed so the caller can self-correct. A forbidden
// keyword is reported ahead of the other rules: it is the reason the
// caller most needs to see.
func Validate(query string) error {
	lx := newLexer(query)

	first := lx.scan()
	if first.kind == tokenEOF {
		return errors.New(errors.Validation, "query is empty").
			WithHint("Provide a SELECT statement to execute")
	}

	var keyword string
	terminated := false
	stacked := false
	for tok := first; tok.kind != tokenEOF; tok = lx.scan() {
		switch tok.kind {
		case tokenWord:
			if terminated {
				stacked = true
			}
			up := strings.ToUpper(tok.text)
			if _, ok := forbidden[up]; ok && keyword == "" {
				keyword = up
			}
		case tokenSymbol:
			if terminated {
				stacked = true
			} else if tok.text == ";" {
				terminated = true
			}
		default:
			if terminated {
				stacked = true
			}
		}
	}

	if keyword != "" {
		return errors.Newf(errors.Validation, "query contains forbidden keyword: %s", keyword)
	}
	if first.kind != tokenWord {
		return errors.New(errors.Validation, "statement must begin with SELECT or WITH")
	}
	switch strings.ToUpper(first.text) {
	case "SELECT", "WITH":
	default:
		return errors.New(errors.Validation, "statement must begin with SELECT or WITH")
	}
	if stacked {
		return errors.New(errors.Validation, "query must contain a single statement").
			WithHint("Remove everything after the statement-terminating semicolon")
	}

	return nil
}
