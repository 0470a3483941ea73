package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProve_FactsAndChain(t *testing.T) {
	kb := ExampleKB()

	assert.True(t, kb.Prove(Goal{"bootstrap", "gcc"}))
	assert.True(t, kb.Prove(Goal{"build", "libc"}))
	assert.True(t, kb.Prove(Goal{"build", "glib"}))

	// gtk needs cairo, which nothing provides.
	assert.False(t, kb.Prove(Goal{"build", "gtk"}))
	assert.False(t, kb.Prove(Goal{"build", "emacs"}))
	assert.False(t, kb.Prove(Goal{"build", "unknown"}))
}

func TestProve_MemoizesFailure(t *testing.T) {
	kb := NewKB()
	calls := 0
	kb.AddRule("build", func(goal Goal) []Conjunction {
		calls++
		return nil
	})

	assert.False(t, kb.Prove(Goal{"build", "unknown"}))
	assert.Equal(t, 1, calls)

	// Second call answers from the memo table without re-deriving.
	assert.False(t, kb.Prove(Goal{"build", "unknown"}))
	assert.Equal(t, 1, calls)
}

func TestProve_MemoizesSuccess(t *testing.T) {
	kb := NewKB()
	kb.AddFact("have", "x")
	calls := 0
	kb.AddRule("need", func(goal Goal) []Conjunction {
		calls++
		return []Conjunction{{Goal{"have", "x"}}}
	})

	assert.True(t, kb.Prove(Goal{"need", "x"}))
	assert.True(t, kb.Prove(Goal{"need", "x"}))
	assert.Equal(t, 1, calls)
}

func TestProve_OrAlternativesInOrder(t *testing.T) {
	kb := NewKB()
	kb.AddFact("have", "b")
	kb.AddRule("get", func(goal Goal) []Conjunction {
		return []Conjunction{
			{Goal{"have", "a"}}, // fails
			{Goal{"have", "b"}}, // succeeds
		}
	})
	assert.True(t, kb.Prove(Goal{"get", "it"}))
}

func TestProve_RulesTriedInRegistrationOrder(t *testing.T) {
	kb := NewKB()
	kb.AddFact("have", "x")
	var order []string
	kb.AddRule("get", func(goal Goal) []Conjunction {
		order = append(order, "first")
		return nil
	})
	kb.AddRule("get", func(goal Goal) []Conjunction {
		order = append(order, "second")
		return []Conjunction{{Goal{"have", "x"}}}
	})
	kb.AddRule("get", func(goal Goal) []Conjunction {
		order = append(order, "third")
		return nil
	})

	// First success wins: the failing rule is tried first, the third is
	// never reached.
	assert.True(t, kb.Prove(Goal{"get", "x"}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestProve_ConjunctionShortCircuit(t *testing.T) {
	kb := NewKB()
	probed := 0
	kb.AddRule("second", func(goal Goal) []Conjunction {
		probed++
		return nil
	})
	kb.AddRule("pair", func(goal Goal) []Conjunction {
		return []Conjunction{{Goal{"first"}, Goal{"second"}}}
	})

	assert.False(t, kb.Prove(Goal{"pair"}))
	// The first subgoal already failed, so the second was never posed.
	assert.Equal(t, 0, probed)
}

func TestProve_CyclicRulesTerminate(t *testing.T) {
	kb := NewKB()
	kb.AddRule("loop", func(goal Goal) []Conjunction {
		return []Conjunction{{Goal{"loop", "self"}}}
	})
	assert.False(t, kb.Prove(Goal{"loop", "self"}))
}

func TestProve_CycleDoesNotPoisonOtherAlternatives(t *testing.T) {
	kb := NewKB()
	kb.AddFact("base", "ok")
	kb.AddRule("goal", func(g Goal) []Conjunction {
		return []Conjunction{
			{Goal{"goal", "x"}}, // re-enters itself, fails fast
			{Goal{"base", "ok"}},
		}
	})
	assert.True(t, kb.Prove(Goal{"goal", "x"}))
}

func TestGoalKey_Distinguishes(t *testing.T) {
	assert.NotEqual(t, Goal{"p", "1"}.Key(), Goal{"p", int64(1)}.Key())
	assert.NotEqual(t, Goal{"p", "a"}.Key(), Goal{"p", "a", "b"}.Key())
	assert.Equal(t, Goal{"p", "a"}.Key(), Goal{"p", "a"}.Key())
}

func TestStats(t *testing.T) {
	kb := ExampleKB()
	kb.Prove(Goal{"build", "libc"})
	facts, rules, memoized := kb.Stats()
	assert.Equal(t, 1, facts)
	assert.Equal(t, 1, rules)
	assert.Greater(t, memoized, 0)
}
