package shell

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kylelegare/cu-MCP/internal/catalog"
	"github.com/kylelegare/cu-MCP/internal/config"
	"github.com/kylelegare/cu-MCP/internal/query"
	"github.com/kylelegare/cu-MCP/internal/store"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cu.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	stmts := []string{
		`CREATE TABLE foicu (cu_number INTEGER, cycle_date TEXT, cu_name TEXT)`,
		`INSERT INTO foicu VALUES
			(1, '2024-12-31', 'Alpha FCU'),
			(2, '2025-03-31', 'Beta CU'),
			(3, '2025-03-31', 'Gamma FCU')`,
		`CREATE TABLE nums (n INTEGER)`,
		`INSERT INTO nums VALUES (1), (2), (3), (4), (5)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture %q: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	st, err := store.Open(config.StoreConfig{Path: path, MaxSessions: 4})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	qcfg := config.QueryConfig{Timeout: 5 * time.Second, MaxRows: 3}
	eng := query.New(st, qcfg)
	rd := catalog.NewReader(st, config.CatalogConfig{
		SampleRows:     3,
		RecencyColumns: []string{"cycle_date"},
	}, qcfg.Timeout)

	out := &bytes.Buffer{}
	return New(eng, rd, qcfg.Timeout, out), out
}

func TestDispatchQueryPrintsRows(t *testing.T) {
	sh, out := newTestShell(t)

	if exit := sh.dispatch("SELECT cu_name FROM foicu ORDER BY cu_number"); exit {
		t.Fatal("query asked the shell to exit")
	}

	got := out.String()
	for _, want := range []string{"cu_name", "Alpha FCU", "Gamma FCU", "(3 rows)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "warning:") {
		t.Errorf("result at the cap should not warn:\n%s", got)
	}
}

func TestDispatchQueryTruncation(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("SELECT n FROM nums ORDER BY n")

	got := out.String()
	if !strings.Contains(got, "(3 rows)") {
		t.Errorf("expected capped row count in output:\n%s", got)
	}
	if !strings.Contains(got, "warning:") || !strings.Contains(got, "3 rows") {
		t.Errorf("expected truncation warning in output:\n%s", got)
	}
}

func TestDispatchRejectsUnsafe(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("DROP TABLE foicu")

	got := out.String()
	for _, want := range []string{"ERROR", "forbidden keyword: DROP", "hint:", "SELECT or WITH"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDispatchTables(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".tables")

	got := out.String()
	for _, want := range []string{"NAME", "foicu", "nums", "table", "cu_with_ratios view"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDispatchSchema(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".schema foicu")

	got := out.String()
	for _, want := range []string{"foicu (table)", "rows: 3", "cu_name", "TEXT", "sample rows:", "2025-03-31"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "2024-12-31") {
		t.Errorf("samples should pin to the latest cycle:\n%s", got)
	}
}

func TestDispatchSchemaUsage(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".schema")

	if got := out.String(); !strings.Contains(got, "usage: .schema <table>") {
		t.Errorf("expected usage message, got:\n%s", got)
	}
}

func TestDispatchSchemaNotFound(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".schema fs999")

	got := out.String()
	for _, want := range []string{"ERROR", "not found", "without arguments"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDispatchExamples(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".examples ranking")

	got := out.String()
	if !strings.Contains(got, "[ranking]") {
		t.Errorf("expected ranking examples in output:\n%s", got)
	}
	if !strings.Contains(got, "4 examples") {
		t.Errorf("expected example count in output:\n%s", got)
	}
}

func TestDispatchExamplesUnknown(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".examples nope")

	got := out.String()
	if !strings.Contains(got, "ERROR") || !strings.Contains(got, "unknown example category") {
		t.Errorf("expected category error in output:\n%s", got)
	}
}

func TestDispatchMetaCommands(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch(".help")
	if got := out.String(); !strings.Contains(got, ".tables") || !strings.Contains(got, ".schema") {
		t.Errorf("help should list commands:\n%s", got)
	}

	out.Reset()
	sh.dispatch(".timeout")
	if got := out.String(); !strings.Contains(got, "5s") {
		t.Errorf("expected deadline in output:\n%s", got)
	}

	out.Reset()
	sh.dispatch(".bogus")
	if got := out.String(); !strings.Contains(got, "unknown command: .bogus") {
		t.Errorf("expected unknown command error:\n%s", got)
	}
}

func TestDispatchExit(t *testing.T) {
	sh, _ := newTestShell(t)

	if !sh.dispatch(".exit") {
		t.Error(".exit should end the shell")
	}
	if !sh.dispatch(".quit") {
		t.Error(".quit should end the shell")
	}
	if sh.dispatch("SELECT 1") {
		t.Error("a query should not end the shell")
	}
}

func TestCompleteWord(t *testing.T) {
	sh, _ := newTestShell(t)
	sh.loadCompletions()

	line := "SELECT * FROM fo"
	head, matches, tail := sh.completeWord(line, len(line))
	if head != "SELECT * FROM " || tail != "" {
		t.Errorf("unexpected head/tail: %q / %q", head, tail)
	}
	found := false
	for _, m := range matches {
		if m == "foicu" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected foicu in completions, got %v", matches)
	}

	_, matches, _ = sh.completeWord("sel", 3)
	if len(matches) == 0 || matches[0] != "SELECT" {
		t.Errorf("expected SELECT completion, got %v", matches)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{int64(42), "42"},
		{float64(3.5), "3.5"},
		{"Alpha FCU", "Alpha FCU"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
