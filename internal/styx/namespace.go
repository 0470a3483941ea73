// Package styx models a minimal in-process Styx/9P-flavored resource
// layer: a path-keyed synchronous store, an advisory mount table, a FIFO
// message channel and an append-only event log. It is NOT a wire protocol;
// all operations are local and a Namespace lives and dies with its owner.
package styx

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Event is one append-only log record.
type Event struct {
	Kind   string
	Detail string
}

// Namespace owns all shared state of one orchestrator instance. Every
// public method is a single critical section; there are no cross-call
// transactions, so exists-then-write is not atomic against concurrent
// writers. The message queue synchronizes independently of the map lock.
type Namespace struct {
	mu     sync.Mutex
	files  map[string]interface{}
	mounts map[string]string
	events []Event

	queue *msgQueue
	log   *zap.Logger
}

// New creates an empty namespace. A nil logger disables logging.
func New(logger *zap.Logger) *Namespace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Namespace{
		files:  make(map[string]interface{}),
		mounts: make(map[string]string),
		queue:  newMsgQueue(),
		log:    logger,
	}
}

// Normalize collapses duplicate slashes, strips a trailing slash (except
// for the root) and enforces a leading slash. Idempotent.
func Normalize(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// Write stores value at the normalized path, overwriting any prior value.
// Last write wins; Write always succeeds.
func (ns *Namespace) Write(path string, value interface{}) {
	path = Normalize(path)
	ns.mu.Lock()
	ns.files[path] = value
	ns.mu.Unlock()
	ns.log.Debug("twrite", zap.String("path", path))
}

// Read returns the value at path. Absence is reported by ok=false, never
// by an error.
func (ns *Namespace) Read(path string) (interface{}, bool) {
	path = Normalize(path)
	ns.mu.Lock()
	v, ok := ns.files[path]
	ns.mu.Unlock()
	return v, ok
}

// Exists reports whether path currently holds a non-nil value.
func (ns *Namespace) Exists(path string) bool {
	v, ok := ns.Read(path)
	return ok && v != nil
}

// Mount records an advisory dest->src mapping. Overlay semantics are
// declared but not enforced: nothing resolves paths through the mount
// table.
func (ns *Namespace) Mount(src, dest string) {
	src = Normalize(src)
	dest = Normalize(dest)
	ns.mu.Lock()
	ns.mounts[dest] = src
	ns.mu.Unlock()
	ns.log.Debug("mount", zap.String("src", src), zap.String("dest", dest))
}

// Mounts returns a copy of the mount table.
func (ns *Namespace) Mounts() map[string]string {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := make(map[string]string, len(ns.mounts))
	for k, v := range ns.mounts {
		out[k] = v
	}
	return out
}

// Log appends one event record. Events are never trimmed or rotated.
func (ns *Namespace) Log(kind, detail string) {
	ns.mu.Lock()
	ns.events = append(ns.events, Event{Kind: kind, Detail: detail})
	ns.mu.Unlock()
}

// Events returns a defensive snapshot of the event log, safe to iterate
// while producers keep appending.
func (ns *Namespace) Events() []Event {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := make([]Event, len(ns.events))
	copy(out, ns.events)
	return out
}
