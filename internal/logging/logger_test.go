package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"answerkey/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategoryFilter_DropsDisabledCategories(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	filtered := newCategoryFilter(core, map[string]bool{"decoder": true})
	root := zap.New(filtered).Named("answerkey")

	For(root, CategoryLoader).Info("loaded")
	For(root, CategoryDecoder).Info("decoded")
	For(root, CategoryWriter).With(zap.Int("rows", 3)).Info("written")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "answerkey.loader", entries[0].LoggerName)
	assert.Equal(t, "answerkey.writer", entries[1].LoggerName)
	assert.Equal(t, int64(3), entries[1].ContextMap()["rows"])
}

func TestCategoryFilter_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	root := zap.New(newCategoryFilter(core, map[string]bool{}))

	For(root, CategoryPipeline).Info("hidden")
	For(root, CategoryPipeline).Warn("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestFor_NilParent(t *testing.T) {
	l := For(nil, CategoryWatch)
	require.NotNil(t, l)
	l.Info("no-op")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answerkey.log")
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path}, false)
	require.NoError(t, err)

	For(logger, CategoryWriter).Info("answer key written", zap.String("path", "out.mem"))
	For(logger, CategoryWriter).Debug("suppressed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"logger":"answerkey.writer"`)
	assert.Contains(t, content, "answer key written")
	assert.NotContains(t, content, "suppressed")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(config.LoggingConfig{Level: "error", File: path}, true)
	require.NoError(t, err)

	logger.Debug("debug line")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "debug line"))
}

func TestNew_DisabledCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.log")
	cfg := config.LoggingConfig{
		Format:     "json",
		File:       path,
		Categories: map[string]bool{"loader": false, "writer": true},
	}
	logger, err := New(cfg, false)
	require.NoError(t, err)

	For(logger, CategoryLoader).Info("from loader")
	For(logger, CategoryWriter).Info("from writer")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "from loader")
	assert.Contains(t, string(data), "from writer")
}

func TestNew_RejectsBadInput(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "shout"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Format: "xml"}, false)
	assert.Error(t, err)
}
