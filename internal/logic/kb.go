// Package logic implements ground-term backward chaining with memoization.
// There is no unification and no variables: goals are concrete tuples, and
// rules are Go functions that expand a goal into alternative conjunctions
// of subgoals. Failures are memoized, so an unprovable goal is derived at
// most once.
package logic

import (
	"strconv"
	"strings"
)

// Goal is a ground tuple: a predicate name followed by its arguments.
// Arguments may be strings, integers or floats.
type Goal []interface{}

// Conjunction is one AND-group of subgoals. A rule yields a sequence of
// conjunctions, enumerating its OR-alternatives in order.
type Conjunction []Goal

// RuleFn expands a goal into zero or more alternative conjunctions.
type RuleFn func(goal Goal) []Conjunction

// Predicate returns the goal's predicate name: its first term when that is
// a string, empty otherwise.
func (g Goal) Predicate() string {
	if len(g) == 0 {
		return ""
	}
	if s, ok := g[0].(string); ok {
		return s
	}
	return ""
}

// Key returns a deterministic encoding of the goal used as a memo-table
// key. Distinct tuples encode distinctly.
func (g Goal) Key() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, term := range g {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch v := term.(type) {
		case string:
			b.WriteString(strconv.Quote(v))
		case int:
			b.WriteString(strconv.Itoa(v))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case float64:
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case bool:
			b.WriteString(strconv.FormatBool(v))
		default:
			b.WriteString("#<opaque>")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// KB is a knowledge base of facts and rules with a memo table. It is not
// safe for concurrent use; like the compiler's kernel cache it is touched
// only from the synchronous compile path.
type KB struct {
	facts      map[string]bool
	rules      map[string][]RuleFn
	memo       map[string]bool
	inProgress map[string]bool
}

// NewKB returns an empty knowledge base.
func NewKB() *KB {
	return &KB{
		facts:      make(map[string]bool),
		rules:      make(map[string][]RuleFn),
		memo:       make(map[string]bool),
		inProgress: make(map[string]bool),
	}
}

// AddFact asserts the goal built from terms as unconditionally true.
func (kb *KB) AddFact(terms ...interface{}) {
	kb.facts[Goal(terms).Key()] = true
}

// AddRule registers fn under a predicate name. Rules for the same
// predicate are tried in registration order.
func (kb *KB) AddRule(name string, fn RuleFn) {
	kb.rules[name] = append(kb.rules[name], fn)
}

// Prove derives goal by backward chaining. Memoized outcomes are returned
// directly; known facts succeed; otherwise each rule registered under the
// goal's predicate is tried in order, and each alternative it yields
// succeeds if every subgoal proves true, short-circuiting on the first
// failure. First success wins. Re-entering a goal that is still being
// derived fails immediately instead of recursing forever; that inner
// failure is not memoized, since the outer derivation may yet succeed
// through another alternative.
func (kb *KB) Prove(goal Goal) bool {
	key := goal.Key()
	if v, ok := kb.memo[key]; ok {
		return v
	}
	if kb.facts[key] {
		kb.memo[key] = true
		return true
	}
	if kb.inProgress[key] {
		return false
	}
	kb.inProgress[key] = true
	defer delete(kb.inProgress, key)

	for _, rule := range kb.rules[goal.Predicate()] {
		for _, conj := range rule(goal) {
			if kb.proveAll(conj) {
				kb.memo[key] = true
				return true
			}
		}
	}
	kb.memo[key] = false
	return false
}

func (kb *KB) proveAll(conj Conjunction) bool {
	for _, sub := range conj {
		if !kb.Prove(sub) {
			return false
		}
	}
	return true
}

// Stats reports table sizes, handy for logging after a compile pass.
func (kb *KB) Stats() (facts, rules, memoized int) {
	for _, fns := range kb.rules {
		rules += len(fns)
	}
	return len(kb.facts), rules, len(kb.memo)
}
