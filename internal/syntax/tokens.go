package syntax

import (
	"io"
	"strings"
)

// TokenList is a rewindable sequence of lexemes. The last lexeme is always
// EOF, so lookahead never runs off the end.
type TokenList struct {
	toks []Lexeme
	idx  int
}

// Tokenize scans src to completion and returns the resulting token list.
// The errh function receives malformed-literal errors (see NewScanner).
func Tokenize(filename string, src io.Reader, errh func(line, col uint32, msg string)) *TokenList {
	s := NewScanner(filename, src, errh)
	var toks []Lexeme
	for {
		s.Next()
		toks = append(toks, s.Lexeme())
		if s.Token() == _EOF {
			break
		}
	}
	return &TokenList{toks: toks}
}

// TokenizeString is a convenience wrapper around Tokenize.
func TokenizeString(src string) *TokenList {
	return Tokenize("", strings.NewReader(src), nil)
}

// Current returns the lexeme at the cursor.
func (l *TokenList) Current() Lexeme {
	return l.toks[l.idx]
}

// Previous returns the lexeme before the cursor, or the first lexeme if the
// cursor is at the start.
func (l *TokenList) Previous() Lexeme {
	if l.idx == 0 {
		return l.toks[0]
	}
	return l.toks[l.idx-1]
}

// Match reports whether the current token is one of kinds.
func (l *TokenList) Match(kinds ...Token) bool {
	cur := l.toks[l.idx].Tok
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// MatchAndConsume consumes the current token if it is tok.
func (l *TokenList) MatchAndConsume(tok Token) bool {
	if l.Match(tok) {
		l.Consume()
		return true
	}
	return false
}

// Consume returns the current lexeme and advances the cursor.
// The cursor never moves past EOF.
func (l *TokenList) Consume() Lexeme {
	lx := l.toks[l.idx]
	if lx.Tok != _EOF {
		l.idx++
	}
	return lx
}

// HasMoreTokens reports whether the cursor is before EOF.
func (l *TokenList) HasMoreTokens() bool {
	return l.toks[l.idx].Tok != _EOF
}

// Reset rewinds the cursor to the first lexeme.
func (l *TokenList) Reset() {
	l.idx = 0
}

// Len returns the number of lexemes, including the trailing EOF.
func (l *TokenList) Len() int {
	return len(l.toks)
}

// Lexemes returns all lexemes, including the trailing EOF.
func (l *TokenList) Lexemes() []Lexeme {
	return l.toks
}
