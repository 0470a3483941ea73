package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formos/internal/config"
)

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(config.LoggingConfig{Level: lvl})
		require.NoError(t, err, "level %s", lvl)
		require.NotNil(t, logger)
		_ = logger.Sync()
	}

	_, err := New(config.LoggingConfig{Level: "nonsense"})
	assert.Error(t, err)
}

func TestFor_CategoryGating(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:      "info",
		Categories: map[string]bool{string(CategoryStyx): false},
	}
	root, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = root.Sync() }()

	assert.False(t, For(root, CategoryStyx, cfg).Core().Enabled(0),
		"disabled category should be a nop logger")
	assert.NotNil(t, For(root, CategoryCompiler, cfg))

	// A nil root never panics downstream.
	assert.NotNil(t, For(nil, CategoryRuntime, cfg))
}
