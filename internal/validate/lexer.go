package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenKind is intentionally small: validation only needs to tell bare
// words apart from quoted material and punctuation.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenWord
	tokenNumber
	tokenString // single-quoted literal, '' escape
	tokenQuoted // quoted identifier: "..." `...` [...]
	tokenSymbol
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in input
}

type lexer struct {
	s   string
	pos int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.s[lx.pos:])
	return r
}

func (lx *lexer) peekAt(n int) rune {
	p := lx.pos
	for i := 0; i < n; i++ {
		if p >= len(lx.s) {
			return 0
		}
		_, sz := utf8.DecodeRuneInString(lx.s[p:])
		p += sz
	}
	if p >= len(lx.s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.s[p:])
	return r
}

func (lx *lexer) next() rune {
	if lx.pos >= len(lx.s) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(lx.s[lx.pos:])
	lx.pos += size
	return r
}

// skipSpace consumes whitespace and SQL comments: -- to end of line and
// /* ... */ blocks. An unterminated block comment swallows the rest of
// the input.
func (lx *lexer) skipSpace() {
	for {
		r := lx.peek()
		if r == 0 {
			return
		}
		if unicode.IsSpace(r) {
			lx.next()
			continue
		}
		if r == '-' && lx.peekAt(1) == '-' {
			lx.next()
			lx.next()
			for {
				r2 := lx.next()
				if r2 == 0 || r2 == '\n' {
					break
				}
			}
			continue
		}
		if r == '/' && lx.peekAt(1) == '*' {
			lx.next()
			lx.next()
			for {
				r2 := lx.next()
				if r2 == 0 {
					return
				}
				if r2 == '*' && lx.peek() == '/' {
					lx.next()
					break
				}
			}
			continue
		}
		return
	}
}

// scan returns the next token. Dotted paths (t.col) fold into a single
// word so a qualified name never matches a bare keyword. An unterminated
// literal swallows the rest of the input; the engine reports the syntax
// error in that case.
func (lx *lexer) scan() token {
	lx.skipSpace()
	start := lx.pos
	r := lx.peek()
	if r == 0 {
		return token{kind: tokenEOF, pos: start}
	}

	switch r {
	case '\'':
		lx.next()
		var sb strings.Builder
		for {
			ch := lx.next()
			if ch == 0 {
				return token{kind: tokenString, text: sb.String(), pos: start}
			}
			if ch == '\'' {
				if lx.peek() == '\'' {
					lx.next()
					sb.WriteRune('\'')
					continue
				}
				return token{kind: tokenString, text: sb.String(), pos: start}
			}
			sb.WriteRune(ch)
		}
	case '"', '`':
		quote := lx.next()
		var sb strings.Builder
		for {
			ch := lx.next()
			if ch == 0 {
				return token{kind: tokenQuoted, text: sb.String(), pos: start}
			}
			if ch == quote {
				if lx.peek() == quote {
					lx.next()
					sb.WriteRune(quote)
					continue
				}
				return token{kind: tokenQuoted, text: sb.String(), pos: start}
			}
			sb.WriteRune(ch)
		}
	case '[':
		lx.next()
		var sb strings.Builder
		for {
			ch := lx.next()
			if ch == 0 || ch == ']' {
				return token{kind: tokenQuoted, text: sb.String(), pos: start}
			}
			sb.WriteRune(ch)
		}
	}

	if unicode.IsDigit(r) {
		var sb strings.Builder
		dot := false
		for unicode.IsDigit(lx.peek()) || (!dot && lx.peek() == '.') {
			if lx.peek() == '.' {
				dot = true
			}
			sb.WriteRune(lx.next())
		}
		return token{kind: tokenNumber, text: sb.String(), pos: start}
	}

	if unicode.IsLetter(r) || r == '_' {
		var sb strings.Builder
		for {
			ch := lx.peek()
			if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '.' {
				sb.WriteRune(lx.next())
			} else {
				break
			}
		}
		return token{kind: tokenWord, text: sb.String(), pos: start}
	}

	lx.next()
	return token{kind: tokenSymbol, text: string(r), pos: start}
}
