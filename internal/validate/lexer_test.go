package validate

import "testing"

func scanAll(input string) []token {
	lx := newLexer(input)
	var toks []token
	for {
		tok := lx.scan()
		if tok.kind == tokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerTokenStream(t *testing.T) {
	type tk struct {
		kind tokenKind
		text string
	}
	cases := []struct {
		name  string
		input string
		want  []tk
	}{
		{
			name:  "words and symbols",
			input: "SELECT a, b FROM t;",
			want: []tk{
				{tokenWord, "SELECT"}, {tokenWord, "a"}, {tokenSymbol, ","},
				{tokenWord, "b"}, {tokenWord, "FROM"}, {tokenWord, "t"},
				{tokenSymbol, ";"},
			},
		},
		{
			name:  "string literal with escaped quote",
			input: "'it''s'",
			want:  []tk{{tokenString, "it's"}},
		},
		{
			name:  "double quoted identifier with escape",
			input: `"dr""op"`,
			want:  []tk{{tokenQuoted, `dr"op`}},
		},
		{
			name:  "backtick identifier",
			input: "`drop`",
			want:  []tk{{tokenQuoted, "drop"}},
		},
		{
			name:  "bracket identifier",
			input: "[drop]",
			want:  []tk{{tokenQuoted, "drop"}},
		},
		{
			name:  "dotted path folds into one word",
			input: "t.drop",
			want:  []tk{{tokenWord, "t.drop"}},
		},
		{
			name:  "decimal number",
			input: "12.5",
			want:  []tk{{tokenNumber, "12.5"}},
		},
		{
			name:  "line comment",
			input: "a -- drop everything\nb",
			want:  []tk{{tokenWord, "a"}, {tokenWord, "b"}},
		},
		{
			name:  "block comment",
			input: "a /* drop */ b",
			want:  []tk{{tokenWord, "a"}, {tokenWord, "b"}},
		},
		{
			name:  "unterminated block comment swallows rest",
			input: "a /* b",
			want:  []tk{{tokenWord, "a"}},
		},
		{
			name:  "unterminated string swallows rest",
			input: "'abc",
			want:  []tk{{tokenString, "abc"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scanAll(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("scanAll(%q) returned %d tokens, want %d: %+v", tc.input, len(got), len(tc.want), got)
			}
			for i, w := range tc.want {
				if got[i].kind != w.kind || got[i].text != w.text {
					t.Fatalf("token %d of %q = {%d %q}, want {%d %q}", i, tc.input, got[i].kind, got[i].text, w.kind, w.text)
				}
			}
		})
	}
}

func TestLexerTracksPositions(t *testing.T) {
	toks := scanAll("SELECT  x")
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}
	if toks[0].pos != 0 {
		t.Fatalf("first token pos = %d, want 0", toks[0].pos)
	}
	if toks[1].pos != 8 {
		t.Fatalf("second token pos = %d, want 8", toks[1].pos)
	}
}
