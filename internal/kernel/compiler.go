package kernel

import (
	"encoding/json"

	"go.uber.org/zap"

	"formos/internal/logic"
	"formos/internal/sexp"
	"formos/internal/styx"
)

// Compiler incrementally compiles expressions into kernel artifacts. The
// in-memory cache is scoped to one instance and touched only from the
// synchronous compile path; it is not persisted, and staleness across
// restarts is detected by re-reading the previously persisted manifest.
type Compiler struct {
	ns    *styx.Namespace
	kb    *logic.KB
	cache map[string]string // kernel name -> emitted hash
	log   *zap.Logger
}

// NewCompiler wires a compiler to its namespace and resolver. A nil
// logger disables logging.
func NewCompiler(ns *styx.Namespace, kb *logic.KB, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		ns:    ns,
		kb:    kb,
		cache: make(map[string]string),
		log:   logger,
	}
}

// Compile walks expr, emits one kernel per distinct leaf symbol, derives
// and validates the proof tree and persists the manifest, wholesale
// replacing the previous one. The returned slice preserves symbol
// extraction order.
func (c *Compiler) Compile(expr sexp.Value) ([]Metadata, error) {
	symbols := sexp.Symbols(expr)
	previous := c.previousHashes()

	kernels := make([]Metadata, 0, len(symbols))
	for _, sym := range symbols {
		meta := FromSymbol(sym)
		meta.Changed = previous[sym] != meta.Hash
		path := Path(sym)

		// A cache hit is honored only while the namespace still holds the
		// bytecode; a vanished blob degrades to a miss and re-emits.
		if c.cache[sym] == meta.Hash && c.ns.Exists(path) {
			c.ns.Log("compiler-skip", sym)
		} else {
			c.ns.Write(path, meta.Bytecode)
			c.ns.Log("compiler", "emit "+sym)
			c.cache[sym] = meta.Hash
			c.log.Debug("kernel emitted",
				zap.String("symbol", sym),
				zap.String("hash", meta.Hash),
				zap.Bool("changed", meta.Changed))
		}
		kernels = append(kernels, meta)
	}

	tree := ProofTree(expr)
	for _, edge := range tree {
		// Validation instrumentation only: provability never gates the
		// compile, the outcome is surfaced solely through debug logging.
		proved := c.kb.Prove(logic.Goal{"build", edge.Node})
		c.log.Debug("proof edge posed",
			zap.String("node", edge.Node),
			zap.Bool("proved", proved))
	}

	manifest := Manifest{Kernels: kernels, ProofTree: tree}
	treeJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	manifest.ProofHash = sexp.HashBytes(treeJSON)

	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	c.ns.Write(ManifestPath, string(encoded))
	return kernels, nil
}

// previousHashes reads the last persisted manifest and maps each kernel
// symbol to its hash. Absence or malformed content yields an empty map;
// the compile never fails because of a bad prior manifest.
func (c *Compiler) previousHashes() map[string]string {
	out := make(map[string]string)
	raw, ok := c.ns.Read(ManifestPath)
	if !ok {
		return out
	}
	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return out
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		c.log.Debug("prior manifest unreadable, treating as empty", zap.Error(err))
		return out
	}
	for _, k := range m.Kernels {
		out[k.Symbol] = k.Hash
	}
	return out
}
