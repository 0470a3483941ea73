// Package ide composes the pipeline: the designer turns source text into
// an expression and its bitmap, the compiler turns expressions into kernel
// artifacts, and the runtime loop drains the message channel in the
// background. One IDE owns one namespace, one knowledge base and one
// compiler cache.
package ide

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"formos/internal/config"
	"formos/internal/glyph"
	"formos/internal/kernel"
	"formos/internal/logging"
	"formos/internal/logic"
	"formos/internal/sexp"
	"formos/internal/styx"
)

// IDE is the orchestrator for one designer/compiler/runtime instance.
type IDE struct {
	cfg      config.Config
	ns       *styx.Namespace
	kb       *logic.KB
	compiler *kernel.Compiler
	log      *zap.Logger
	id       string

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New builds an IDE with a fresh namespace and an empty knowledge base.
// A nil logger disables logging.
func New(cfg config.Config, logger *zap.Logger) *IDE {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	logger = logger.With(zap.String("instance", id))
	ns := styx.New(logging.For(logger, logging.CategoryStyx, cfg.Logging))
	kb := logic.NewKB()
	return &IDE{
		cfg: cfg,
		ns:  ns,
		kb:  kb,
		compiler: kernel.NewCompiler(ns, kb,
			logging.For(logger, logging.CategoryCompiler, cfg.Logging)),
		log: logger,
		id:  id,
	}
}

// Namespace exposes the instance's namespace to collaborators and tests.
func (ide *IDE) Namespace() *styx.Namespace { return ide.ns }

// KB exposes the resolver knowledge base for fact and rule registration.
func (ide *IDE) KB() *logic.KB { return ide.kb }

// ID returns the instance identifier attached to log fields.
func (ide *IDE) ID() string { return ide.id }

// Designer parses source text, renders its bitmap to /dev/draw and stores
// the raw source. Parse errors propagate to the caller.
func (ide *IDE) Designer(formSrc string) (sexp.Value, error) {
	expr, err := sexp.Parse(formSrc)
	if err != nil {
		return nil, err
	}
	bitmap := glyph.Bitmap(expr)
	ide.ns.Write(kernel.DrawPath, bitmap)
	ide.ns.Write(kernel.SourcePath, formSrc)
	width := 0
	if len(bitmap) > 0 {
		width = len(bitmap[0])
	}
	ide.ns.Log("designer", fmt.Sprintf("bitmap %dx%d", len(bitmap), width))
	return expr, nil
}

// Compiler runs an incremental compile of expr.
func (ide *IDE) Compiler(expr sexp.Value) ([]kernel.Metadata, error) {
	return ide.compiler.Compile(expr)
}

// Runtime records the advisory mount and starts the background loop.
// Starting while already running is a no-op.
func (ide *IDE) Runtime() {
	ide.ns.Mount(ide.cfg.Runtime.MountSrc, ide.cfg.Runtime.MountDest)

	ide.mu.Lock()
	defer ide.mu.Unlock()
	if ide.running {
		return
	}
	ide.running = true
	ide.stop = make(chan struct{})
	ide.done = make(chan struct{})
	go ide.runtimeLoop(ide.stop, ide.done)
}

// Stop sets the cooperative cancellation flag and waits, bounded by the
// configured stop timeout, for the loop to exit. It never forcibly
// terminates the worker. Stopping an idle IDE is a no-op.
func (ide *IDE) Stop() error {
	ide.mu.Lock()
	if !ide.running {
		ide.mu.Unlock()
		return nil
	}
	stop, done := ide.stop, ide.done
	ide.running = false
	ide.mu.Unlock()

	close(stop)
	select {
	case <-done:
		return nil
	case <-time.After(ide.cfg.Runtime.StopTimeoutDuration()):
		return fmt.Errorf("runtime loop did not stop within %s",
			ide.cfg.Runtime.StopTimeoutDuration())
	}
}

// runtimeLoop polls the message channel with a short timeout, parses each
// message and writes the derived path. A malformed message logs an error
// event and never terminates the loop; a poll expiry just re-polls.
func (ide *IDE) runtimeLoop(stop, done chan struct{}) {
	defer close(done)
	rlog := logging.For(ide.log, logging.CategoryRuntime, ide.cfg.Logging)
	poll := ide.cfg.Runtime.PollIntervalDuration()

	ide.ns.Log("runtime", "start")
	rlog.Info("runtime loop started", zap.Duration("poll", poll))
	for {
		select {
		case <-stop:
			ide.ns.Log("runtime", "stop")
			rlog.Info("runtime loop stopped")
			return
		default:
		}
		msg, ok := ide.ns.Recv(poll)
		if !ok {
			continue
		}
		expr, err := sexp.Parse(msg)
		if err != nil {
			ide.ns.Log("runtime-error", err.Error())
			rlog.Warn("malformed message", zap.Error(err))
			continue
		}
		path := sexp.ToPath(expr)
		ide.ns.Write(kernel.LastMessagePath, path)
		ide.ns.Log("runtime-msg", path)
		rlog.Debug("message routed", zap.String("path", path))
	}
}
