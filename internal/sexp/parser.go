package sexp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseError reports a malformed source form. Pos is a byte offset into the
// original text, or -1 when the error is not tied to a position (empty
// input).
type ParseError struct {
	Msg string
	Pos int
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return "sexp: " + e.Msg
	}
	return fmt.Sprintf("sexp: %s at offset %d", e.Msg, e.Pos)
}

type token struct {
	text string // decoded for strings, raw otherwise
	kind tokenKind
	pos  int
}

type tokenKind int

const (
	tokAtom tokenKind = iota
	tokString
	tokOpen
	tokClose
)

// tokenize splits src into tokens, skipping whitespace and ;-comments.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '(':
			toks = append(toks, token{kind: tokOpen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokClose, pos: i})
			i++
		case c == '"':
			decoded, end, err := readString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{text: decoded, kind: tokString, pos: i})
			i = end
		default:
			start := i
			for i < len(src) && !isDelim(src[i]) {
				i++
			}
			toks = append(toks, token{text: src[start:i], kind: tokAtom, pos: start})
		}
	}
	return toks, nil
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '"', ';':
		return true
	}
	return false
}

// readString consumes a double-quoted token starting at src[start] and
// returns its decoded contents plus the offset just past the closing quote.
func readString(src string, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		if c == '"' {
			return b.String(), i + 1, nil
		}
		if c == '\\' {
			if i+1 >= len(src) {
				break
			}
			i++
			switch src[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte(src[i])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(src[i:])
		b.WriteRune(r)
		i += size
	}
	return "", 0, &ParseError{Msg: "unterminated string", Pos: start}
}

// atom coerces a bare token: integer first, then float if the token
// contains a decimal point, otherwise a symbol.
func atom(t token) Value {
	if n, err := strconv.ParseInt(t.text, 10, 64); err == nil {
		return n
	}
	if strings.Contains(t.text, ".") {
		if f, err := strconv.ParseFloat(t.text, 64); err == nil {
			return f
		}
	}
	return Symbol(t.text)
}

// Parse reads src into an expression tree. A single top-level expression
// is returned bare; multiple top-level expressions are wrapped into one
// aggregate list. Parsing is pure: no side effects and no partial state on
// failure.
func Parse(src string) (Value, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &ParseError{Msg: "empty input", Pos: -1}
	}
	pos := 0
	var read func() (Value, error)
	read = func() (Value, error) {
		t := toks[pos]
		pos++
		switch t.kind {
		case tokOpen:
			lst := List{}
			for pos < len(toks) && toks[pos].kind != tokClose {
				sub, err := read()
				if err != nil {
					return nil, err
				}
				lst = append(lst, sub)
			}
			if pos >= len(toks) {
				return nil, &ParseError{Msg: "unterminated list", Pos: t.pos}
			}
			pos++ // consume close
			return lst, nil
		case tokClose:
			return nil, &ParseError{Msg: "close paren with no matching open", Pos: t.pos}
		case tokString:
			return t.text, nil
		default:
			return atom(t), nil
		}
	}

	var exprs []Value
	for pos < len(toks) {
		e, err := read()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return List(exprs), nil
}
