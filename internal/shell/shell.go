// Package shell is the interactive console for the gateway. It drives
// the same validation, execution and catalog paths as the stdio server,
// rendering results as aligned tables instead of JSON frames.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/kylelegare/cu-MCP/internal/catalog"
	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/query"
)

const (
	prompt      = "cu> "
	historyFile = ".cumcp_history"
)

type Shell struct {
	engine      *query.Engine
	reader      *catalog.Reader
	timeout     time.Duration
	out         io.Writer
	completions []string
}

func New(engine *query.Engine, reader *catalog.Reader, timeout time.Duration, out io.Writer) *Shell {
	return &Shell{engine: engine, reader: reader, timeout: timeout, out: out}
}

// Run reads lines until .exit or EOF. Ctrl-C clears the current line
// instead of killing the shell.
func (s *Shell) Run() error {
	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)
	s.loadCompletions()
	rl.SetWordCompleter(s.completeWord)

	path := historyPath()
	loadHistory(rl, path)
	defer saveHistory(rl, path)

	fmt.Fprintf(s.out, "Credit union query gateway. Type '.help' for commands.\n\n")

	for {
		input, err := rl.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		rl.AppendHistory(input)

		if s.dispatch(trimmed) {
			return nil
		}
	}
}

// dispatch runs one line and reports whether the shell should exit.
// Lines starting with a dot are meta commands; everything else goes to
// the query engine.
func (s *Shell) dispatch(line string) bool {
	if !strings.HasPrefix(line, ".") {
		s.runQuery(line)
		return false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ".help":
		s.printHelp()
	case ".tables":
		s.printTables()
	case ".schema":
		if len(fields) < 2 {
			s.printError("usage: .schema <table>")
			return false
		}
		s.printSchema(strings.Join(fields[1:], " "))
	case ".examples":
		category := ""
		if len(fields) > 1 {
			category = fields[1]
		}
		s.printExamples(category)
	case ".timeout":
		fmt.Fprintf(s.out, "query deadline: %s\n", s.timeout)
	case ".exit", ".quit":
		return true
	default:
		s.printError(fmt.Sprintf("unknown command: %s (try .help)", fields[0]))
	}
	return false
}

func (s *Shell) runQuery(statement string) {
	res, err := s.engine.Execute(context.Background(), statement)
	if err != nil {
		s.printReport(errors.Translate(err))
		return
	}
	s.printResult(res)
}

func (s *Shell) printError(msg string) {
	fmt.Fprintln(s.out, "ERROR")
	fmt.Fprintln(s.out, msg)
}

func (s *Shell) printReport(rep errors.Report) {
	s.printError(fmt.Sprintf("%s: %s", rep.Kind, rep.Message))
	if rep.Hint != "" {
		fmt.Fprintf(s.out, "hint: %s\n", rep.Hint)
	}
}

// completeWord offers dot commands, known object names and a few SQL
// keywords for the word under the cursor.
func (s *Shell) completeWord(line string, pos int) (string, []string, string) {
	start := pos
	for start > 0 && !isWordBreak(line[start-1]) {
		start--
	}
	head, word, tail := line[:start], line[start:pos], line[pos:]
	if word == "" {
		return head, nil, tail
	}

	var matches []string
	for _, cand := range s.completions {
		if len(cand) >= len(word) && strings.EqualFold(cand[:len(word)], word) {
			matches = append(matches, cand)
		}
	}
	return head, matches, tail
}

// loadCompletions seeds the completer with commands, SQL keywords and
// whatever object names the catalog can provide right now.
func (s *Shell) loadCompletions() {
	s.completions = []string{
		".help", ".tables", ".schema", ".examples", ".timeout", ".exit", ".quit",
		"SELECT", "FROM", "WHERE", "ORDER BY", "GROUP BY", "LIMIT", "WITH", "JOIN", "AND", "OR",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if list, err := s.reader.List(ctx); err == nil {
		for _, tb := range list.Tables {
			s.completions = append(s.completions, tb.Name)
		}
	}
}

func isWordBreak(c byte) bool {
	switch c {
	case ' ', '\t', '(', ')', ',', ';', '=', '<', '>':
		return true
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func loadHistory(rl *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	rl.ReadHistory(f)
}

func saveHistory(rl *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	rl.WriteHistory(f)
}
