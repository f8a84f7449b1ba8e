package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_Stderr(t *testing.T) {
	var buf bytes.Buffer
	result := newLoggerWithWriter(Config{Level: "warn", Format: FormatJSON, Output: OutputStderr}, &buf)
	defer func() { _ = result.Close() }()

	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, zerolog.WarnLevel, result.Logger.GetLevel())

	result.Logger.Info().Msg("hidden")
	result.Logger.Warn().Str("key", "value").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewLoggerWithPath_InvalidLevelDefaultsToInfo(t *testing.T) {
	result := newLoggerWithWriter(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "energylabel.log")

	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Debug().Msg("to file")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var buf bytes.Buffer
	result := newLoggerWithWriter(Config{Output: OutputFile, File: filepath.Join(blocker, "app.log")}, &buf)

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	result.Logger.Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")
}

func TestComponentLoggerAndContext(t *testing.T) {
	var buf bytes.Buffer
	base := newLoggerWithWriter(Config{Level: "debug"}, &buf).Logger
	logger := ComponentLogger(base, "cli")

	ctx := ContextWithTraceID(context.Background(), "trace-123")
	ctx = logger.WithContext(ctx)

	FromContext(ctx).Info().Ctx(ctx).Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cli", entry["component"])
	assert.Equal(t, "trace-123", entry[TraceIDField])
}

func TestFromContext_Fallback(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	//nolint:staticcheck // Exercising the nil-context guard.
	assert.NotNil(t, FromContext(nil))
}

func TestTraceIDs(t *testing.T) {
	id := GenerateTraceID()
	assert.Len(t, id, 26)
	assert.NotEqual(t, id, GenerateTraceID())

	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))
	assert.Len(t, GetOrGenerateTraceID(ctx), 26)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "permission denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "permission denied")
}
