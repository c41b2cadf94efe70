package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Lexeme is one scanned token: its kind, its text and its span.
// For string literals Lit holds the decoded content.
type Lexeme struct {
	Tok Token
	Lit string
	Pos Pos // position of the first character
	End Pos // position immediately after the token
}

func (l Lexeme) String() string {
	switch l.Tok {
	case _Name, _Int, _String, _Error:
		return fmt.Sprintf("%s %s %q", l.Pos, l.Tok, l.Lit)
	}
	return fmt.Sprintf("%s %s", l.Pos, l.Tok)
}

// Scanner performs lexical analysis on CatScript source code.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token  // token type
	lit    string // token literal (identifier name, digits, decoded string)
	tokPos Pos    // token start position

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for malformed literals; if nil, errors are
// silently ignored. Unrecognized characters are not reported through errh;
// they are returned as ERROR tokens for the parser to reject.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()
	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// scanOperator returned true, meaning we skipped a comment
			goto redo
		}

	default:
		s.tok = _Error
		s.lit = string(s.ch)
		s.nextch()
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Lexeme returns the current token together with its span.
func (s *Scanner) Lexeme() Lexeme {
	return Lexeme{Tok: s.tok, Lit: s.lit, Pos: s.tokPos, End: s.pos()}
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a decimal integer literal. Range checking is left to the
// parser, which knows where to attach the error.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = _Int
}

// scanString scans a string literal.
// The resulting literal is the decoded string content (escape sequences are interpreted).
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _String
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _String
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case -1:
		return 0, false
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok, s.lit = _Add, "+"
	case '-':
		s.tok, s.lit = _Sub, "-"
	case '*':
		s.tok, s.lit = _Mul, "*"
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		s.tok, s.lit = _Div, "/"
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Leq, "<="
		} else {
			s.tok, s.lit = _Lss, "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Geq, ">="
		} else {
			s.tok, s.lit = _Gtr, ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Eql, "=="
		} else {
			s.tok, s.lit = _Assign, "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Neq, "!="
		} else {
			// A lone '!' is not an operator; "not" is spelled out.
			s.tok, s.lit = _Error, "!"
		}
	case ':':
		s.tok, s.lit = _Colon, ":"
	case '(':
		s.tok, s.lit = _Lparen, "("
	case ')':
		s.tok, s.lit = _Rparen, ")"
	case '[':
		s.tok, s.lit = _Lbrack, "["
	case ']':
		s.tok, s.lit = _Rbrack, "]"
	case '{':
		s.tok, s.lit = _Lbrace, "{"
	case '}':
		s.tok, s.lit = _Rbrace, "}"
	case ',':
		s.tok, s.lit = _Comma, ","
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the first /
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
