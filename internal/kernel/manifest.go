// Package kernel implements the incremental compiler: it turns the leaf
// symbols of an expression into content-addressed kernel artifacts, derives
// the dependency proof tree, validates its edges against the goal resolver
// and persists the whole as a manifest in the namespace.
package kernel

import (
	"fmt"

	"formos/internal/sexp"
)

// Well-known namespace paths produced and consumed by the pipeline.
const (
	SourcePath      = "/form/source.scm"
	ManifestPath    = "/form/manifest.json"
	LastMessagePath = "/last/msg.path"
	DrawPath        = "/dev/draw"
)

// Path returns the namespace path holding a symbol's bytecode.
func Path(symbol string) string {
	return "/form/" + symbol + ".kernel"
}

// Metadata describes one compiled kernel. It is a pure function of the
// symbol name: two occurrences of the same symbol in different expressions
// always produce identical metadata (modulo the informational Changed
// flag, which compares against the previously persisted manifest).
type Metadata struct {
	Symbol   string `json:"symbol"`
	Kernel   string `json:"kernel"`
	Hash     string `json:"hash"`
	Changed  bool   `json:"changed"`
	Bytecode []byte `json:"-"`
}

// FromSymbol derives kernel metadata for a single symbol. The hash covers
// the symbol text alone; the bytecode is its deterministic textual
// encoding.
func FromSymbol(symbol string) Metadata {
	h := sexp.Hash(sexp.Symbol(symbol))
	return Metadata{
		Symbol:   symbol,
		Kernel:   "kernel::" + symbol,
		Hash:     h,
		Changed:  true,
		Bytecode: []byte(fmt.Sprintf("BYTECODE(%s:%s)", symbol, h)),
	}
}

// ProofEdge links a non-empty interior node to the head symbols of its
// immediate children (or the raw atom where a child is atomic).
type ProofEdge struct {
	Node string        `json:"node"`
	Deps []interface{} `json:"deps"`
}

// Manifest is the persisted compile artifact, fully replacing its
// predecessor at ManifestPath on every compile.
type Manifest struct {
	Kernels   []Metadata  `json:"kernels"`
	ProofTree []ProofEdge `json:"proof_tree"`
	ProofHash string      `json:"proof_hash"`
}

// ProofTree extracts the deduplicated structural edges of expr in
// pre-order. Dedup is by exact (node, deps) equality; the first occurrence
// wins and original order is preserved.
func ProofTree(expr sexp.Value) []ProofEdge {
	var edges []ProofEdge
	var walk func(sexp.Value)
	walk = func(node sexp.Value) {
		list, ok := node.(sexp.List)
		if !ok || len(list) == 0 {
			return
		}
		deps := make([]interface{}, 0, len(list)-1)
		for _, child := range list[1:] {
			if sub, ok := child.(sexp.List); ok && len(sub) > 0 {
				deps = append(deps, headValue(sub[0]))
			} else {
				deps = append(deps, headValue(child))
			}
		}
		edges = append(edges, ProofEdge{Node: sexp.Text(list[0]), Deps: deps})
		for _, child := range list[1:] {
			walk(child)
		}
	}
	walk(expr)

	uniq := make([]ProofEdge, 0, len(edges))
	seen := make(map[string]bool)
	for _, e := range edges {
		key := edgeKey(e)
		if !seen[key] {
			seen[key] = true
			uniq = append(uniq, e)
		}
	}
	return uniq
}

// headValue keeps numeric atoms numeric in deps while flattening symbols
// and nested heads to their plain text.
func headValue(v sexp.Value) interface{} {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return n
	default:
		return sexp.Text(n)
	}
}

func edgeKey(e ProofEdge) string {
	key := e.Node + "\x00"
	for _, d := range e.Deps {
		key += fmt.Sprintf("%T:%v\x00", d, d)
	}
	return key
}
