// Package logging builds the zap loggers used across formos. Each
// subsystem logs under a named category; categories can be disabled
// individually through config, in which case that subsystem gets a nop
// logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"formos/internal/config"
)

// Category identifies a logging subsystem.
type Category string

const (
	CategoryDesigner Category = "designer" // form parsing and bitmap rendering
	CategoryCompiler Category = "compiler" // kernel emission, manifest
	CategoryRuntime  Category = "runtime"  // background message loop
	CategoryStyx     Category = "styx"     // namespace operations
	CategoryLogic    Category = "logic"    // goal resolution
	CategorySeed     Category = "seed"     // bootstrap chain
)

// New builds the root logger from config. Debug mode selects the
// development encoder.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	var zcfg zap.Config
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// For returns the category-scoped child of root, or a nop logger when the
// category is disabled in config. A nil root also yields a nop logger, so
// library code never nil-checks.
func For(root *zap.Logger, cat Category, cfg config.LoggingConfig) *zap.Logger {
	if root == nil {
		return zap.NewNop()
	}
	if cfg.Categories != nil {
		if enabled, ok := cfg.Categories[string(cat)]; ok && !enabled {
			return zap.NewNop()
		}
	}
	return root.Named(string(cat))
}
