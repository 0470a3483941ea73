package logic

// ExampleKB builds the bootstrap-chain knowledge base used by the demo:
// a single bootstrap fact plus a build rule mirroring a package
// dependency chain (emacs -> gtk -> glib -> libc -> bootstrap gcc).
func ExampleKB() *KB {
	kb := NewKB()
	InstallExample(kb)
	return kb
}

// InstallExample registers the example facts and rules into an existing
// knowledge base.
func InstallExample(kb *KB) {
	kb.AddFact("bootstrap", "gcc")

	kb.AddRule("build", func(goal Goal) []Conjunction {
		if len(goal) < 2 {
			return nil
		}
		pkg, _ := goal[1].(string)
		switch pkg {
		case "emacs":
			return []Conjunction{{Goal{"build", "gtk"}, Goal{"build", "elisp"}}}
		case "gtk":
			return []Conjunction{{Goal{"build", "glib"}, Goal{"build", "cairo"}}}
		case "glib":
			return []Conjunction{{Goal{"build", "libc"}}}
		case "libc":
			return []Conjunction{{Goal{"bootstrap", "gcc"}}}
		}
		return nil
	})
}
