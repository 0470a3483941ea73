// Package sexp implements the symbolic-expression layer: a parser for the
// parenthesized form notation, a canonicalizer, and a 128-bit content hash.
// Expressions are immutable once parsed and shared by reference between the
// designer, the compiler and the runtime loop.
package sexp

import (
	"strconv"
	"strings"
)

// CommutativeMarker is the head symbol that declares a node's children
// order-insensitive for hashing purposes.
const CommutativeMarker = Symbol("#:commutative")

// Symbol is a bare (unquoted) atom.
type Symbol string

// List is an ordered, immutable sequence of sub-expressions.
type List []Value

// Value is a parsed expression node. Concrete types:
//
//	Symbol  - bare atom
//	string  - double-quoted atom, escapes decoded
//	int64   - integer atom
//	float64 - float atom (token contained a decimal point)
//	List    - parenthesized group
type Value interface{}

// Encode renders v in its deterministic textual form. Symbols print bare,
// strings print quoted with escapes, lists print space-joined in parens.
// This is the encoding the content hash is computed over, so it must stay
// stable across releases.
func Encode(v Value) string {
	var b strings.Builder
	encode(&b, v)
	return b.String()
}

func encode(b *strings.Builder, v Value) {
	switch n := v.(type) {
	case List:
		b.WriteByte('(')
		for i, c := range n {
			if i > 0 {
				b.WriteByte(' ')
			}
			encode(b, c)
		}
		b.WriteByte(')')
	case Symbol:
		b.WriteString(string(n))
	case string:
		b.WriteString(strconv.Quote(n))
	case int64:
		b.WriteString(strconv.FormatInt(n, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	default:
		// Unreachable for parser output; kept total for hand-built trees.
		b.WriteString("#<opaque>")
	}
}

// Text renders an atom in its plain form: symbols and strings without
// quoting, numbers as printed by Encode. Lists fall back to Encode. Used
// for path derivation and event details, where quoting would leak into
// namespace keys.
func Text(v Value) string {
	switch n := v.(type) {
	case Symbol:
		return string(n)
	case string:
		return n
	default:
		return Encode(v)
	}
}

// ToPath derives a namespace path from an expression: an atom maps to a
// root-relative literal path, a list maps to the slash-joined plain forms
// of its top-level elements.
func ToPath(v Value) string {
	list, ok := v.(List)
	if !ok {
		return "/" + Text(v)
	}
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = Text(e)
	}
	return "/" + strings.Join(parts, "/")
}

// Symbols returns the distinct non-numeric leaf atoms of v in first
// occurrence pre-order. Both bare symbols and quoted strings count; the
// compiler keys kernels by these.
func Symbols(v Value) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Value)
	walk = func(e Value) {
		switch n := e.(type) {
		case List:
			for _, c := range n {
				walk(c)
			}
		case Symbol:
			if !seen[string(n)] {
				seen[string(n)] = true
				out = append(out, string(n))
			}
		case string:
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	walk(v)
	return out
}
