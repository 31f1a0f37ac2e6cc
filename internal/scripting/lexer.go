// Package scripting implements the fallback expression language: a small,
// persistently scoped calculator over numbers, strings, and dataset column
// vectors. It is the only path by which arbitrary computation reaches a
// session, and it sits behind the narrow Evaluator interface so the
// dispatcher can disable or replace it independently of the command table.
package scripting

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokOp     // + - * / ^
	tokCmp    // < <= > >= == !=
	tokAssign // =
	tokLParen
	tokRParen
	tokComma
	tokAnd // &
	tokOr  // |
	tokNot // !
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t':
			l.pos++
		case c >= '0' && c <= '9' || c == '.' && l.peekDigit():
			l.number()
		case c == '"':
			if err := l.stringLit(); err != nil {
				return nil, err
			}
		case isIdentStart(rune(c)):
			l.ident()
		default:
			if err := l.operator(); err != nil {
				return nil, err
			}
		}
	}
	l.toks = append(l.toks, token{kind: tokEOF, pos: l.pos})
	return l.toks, nil
}

func (l *lexer) peekDigit() bool {
	return l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9'
}

func (l *lexer) number() {
	start := l.pos
	seenDot := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c >= '0' && c <= '9' {
			l.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			l.pos++
			continue
		}
		break
	}
	l.toks = append(l.toks, token{kind: tokNumber, text: l.src[start:l.pos], pos: start})
}

func (l *lexer) stringLit() error {
	start := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			l.toks = append(l.toks, token{kind: tokString, text: b.String(), pos: start})
			return nil
		}
		b.WriteByte(c)
		l.pos++
	}
	return fmt.Errorf("unterminated string starting at position %d", start)
}

func (l *lexer) ident() {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
		l.pos++
	}
	l.toks = append(l.toks, token{kind: tokIdent, text: l.src[start:l.pos], pos: start})
}

func (l *lexer) operator() error {
	start := l.pos
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "<=", ">=", "==", "!=":
		l.toks = append(l.toks, token{kind: tokCmp, text: two, pos: start})
		l.pos += 2
		return nil
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case '+', '-', '*', '/', '^':
		l.toks = append(l.toks, token{kind: tokOp, text: string(c), pos: start})
	case '<', '>':
		l.toks = append(l.toks, token{kind: tokCmp, text: string(c), pos: start})
	case '=':
		l.toks = append(l.toks, token{kind: tokAssign, text: "=", pos: start})
	case '(':
		l.toks = append(l.toks, token{kind: tokLParen, text: "(", pos: start})
	case ')':
		l.toks = append(l.toks, token{kind: tokRParen, text: ")", pos: start})
	case ',':
		l.toks = append(l.toks, token{kind: tokComma, text: ",", pos: start})
	case '&':
		l.toks = append(l.toks, token{kind: tokAnd, text: "&", pos: start})
	case '|':
		l.toks = append(l.toks, token{kind: tokOr, text: "|", pos: start})
	case '!':
		l.toks = append(l.toks, token{kind: tokNot, text: "!", pos: start})
	default:
		return fmt.Errorf("unexpected character %q at position %d", c, start)
	}
	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
