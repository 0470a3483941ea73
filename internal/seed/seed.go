// Package seed implements the staged bootstrap chain: a seed manifest
// expression expands through pattern, symbol and evaluator stages, each
// stage hash-chained to its predecessor for traceability.
package seed

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"formos/internal/sexp"
)

// ErrAtomSeed is returned when the seed source parses to a bare atom
// instead of a list-like manifest.
var ErrAtomSeed = errors.New("seed: manifest must be a list-like expression")

// Stage0 is the parsed seed manifest: self reference, structure and
// computation entries, plus the seed hash.
type Stage0 struct {
	Self        sexp.Value
	Structure   sexp.Value
	Computation sexp.Value
	Hash        string
}

// Stage1 scaffolds pattern matching: structure tokens mapped to action
// templates.
type Stage1 struct {
	Seed     *Stage0
	Patterns map[string]string
	Hash     string
}

// Stage2 assigns stable numeric ids to the pattern set.
type Stage2 struct {
	Stage1  *Stage1
	Symbols map[string]int
	Hash    string
}

// Stage3 carries a tiny applicative evaluator over the symbol table. It
// understands (seq ...) sequencing and the (count-symbols) primitive;
// anything else evaluates element-wise.
type Stage3 struct {
	Stage2 *Stage2
	Hash   string
}

// Chain holds all four stages produced from one seed source.
type Chain struct {
	Stage0 *Stage0
	Stage1 *Stage1
	Stage2 *Stage2
	Stage3 *Stage3
}

// Parse reads a seed manifest. Entries are two-or-more element lists; the
// recognized heads are self, *structure (fallback *layers) and
// **computation (fallback **heads). Other entries are skipped.
func Parse(src string) (*Stage0, error) {
	expr, err := sexp.Parse(src)
	if err != nil {
		return nil, err
	}
	list, ok := expr.(sexp.List)
	if !ok {
		return nil, ErrAtomSeed
	}
	mapping := make(map[string]sexp.Value)
	for _, entry := range list {
		sub, ok := entry.(sexp.List)
		if !ok || len(sub) < 2 {
			continue
		}
		var body sexp.Value
		if len(sub) == 2 {
			body = sub[1]
		} else {
			body = sexp.List(sub[1:])
		}
		mapping[sexp.Text(sub[0])] = body
	}
	s0 := &Stage0{
		Self:        mapping["self"],
		Structure:   pick(mapping, "*structure", "*layers"),
		Computation: pick(mapping, "**computation", "**heads"),
	}
	s0.Hash = sexp.HashBytes([]byte(
		encodeOrNil(s0.Self) + "\x00" + encodeOrNil(s0.Structure) + "\x00" + encodeOrNil(s0.Computation)))
	return s0, nil
}

func pick(m map[string]sexp.Value, key, fallback string) sexp.Value {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return m[fallback]
}

func encodeOrNil(v sexp.Value) string {
	if v == nil {
		return "nil"
	}
	return sexp.Encode(v)
}

// Next derives the pattern scaffold: up to eight structure tokens, each
// mapped to its action template. The stage hash chains the seed hash with
// the sorted pattern set.
func (s *Stage0) Next() *Stage1 {
	var tokens []string
	switch v := s.Structure.(type) {
	case sexp.List:
		for _, t := range v {
			tokens = append(tokens, sexp.Text(t))
		}
	case nil:
	default:
		tokens = []string{sexp.Text(v)}
	}
	if len(tokens) > 8 {
		tokens = tokens[:8]
	}
	patterns := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		patterns[tok] = "ACTION:" + tok
	}
	return &Stage1{
		Seed:     s,
		Patterns: patterns,
		Hash:     sexp.HashBytes([]byte(s.Hash + "\x00" + sortedPairs(patterns))),
	}
}

// Next assigns incremental ids in sorted pattern order.
func (s *Stage1) Next() *Stage2 {
	keys := make([]string, 0, len(s.Patterns))
	for k := range s.Patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	symbols := make(map[string]int, len(keys))
	var enc strings.Builder
	for i, k := range keys {
		symbols[k] = i
		fmt.Fprintf(&enc, "%s=%d;", k, i)
	}
	return &Stage2{
		Stage1:  s,
		Symbols: symbols,
		Hash:    sexp.HashBytes([]byte(s.Hash + "\x00" + enc.String())),
	}
}

// Next builds the evaluator stage.
func (s *Stage2) Next() *Stage3 {
	return &Stage3{
		Stage2: s,
		Hash:   sexp.HashBytes([]byte(fmt.Sprintf("%s\x00eval\x00%d", s.Hash, len(s.Symbols)))),
	}
}

// Eval applies the stage-3 evaluator: (seq a b c) evaluates its parts and
// yields the last, (count-symbols) yields the symbol-table size, any other
// list evaluates element-wise, atoms are self-evaluating.
func (s *Stage3) Eval(expr sexp.Value) sexp.Value {
	list, ok := expr.(sexp.List)
	if !ok || len(list) == 0 {
		return expr
	}
	if head, ok := list[0].(sexp.Symbol); ok {
		switch head {
		case "seq":
			var last sexp.Value
			for _, sub := range list[1:] {
				last = s.Eval(sub)
			}
			return last
		case "count-symbols":
			return int64(len(s.Stage2.Symbols))
		}
	}
	out := make(sexp.List, len(list))
	for i, sub := range list {
		out[i] = s.Eval(sub)
	}
	return out
}

// Bootstrap produces all stages from a seed source string.
func Bootstrap(src string) (*Chain, error) {
	s0, err := Parse(src)
	if err != nil {
		return nil, err
	}
	s1 := s0.Next()
	s2 := s1.Next()
	s3 := s2.Next()
	return &Chain{Stage0: s0, Stage1: s1, Stage2: s2, Stage3: s3}, nil
}

func sortedPairs(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
		b.WriteByte(';')
	}
	return b.String()
}
