package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preserveDefaultLogger restores slog's default logger after a test that
// calls Setup.
func preserveDefaultLogger(t *testing.T) {
	t.Helper()
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
}

func TestGenerateRunID_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	iterations := 100

	for i := 0; i < iterations; i++ {
		id := GenerateRunID()

		assert.NotEmpty(t, id, "GenerateRunID() returned empty string")
		assert.False(t, ids[id], "GenerateRunID() generated duplicate ID: %s", id)

		ids[id] = true
	}

	assert.Equal(t, iterations, len(ids))
}

func TestGenerateRunID_Format(t *testing.T) {
	id := GenerateRunID()

	// ULID should be 26 characters
	assert.Equal(t, 26, len(id))

	// ULID should only contain specific characters (Crockford's Base32)
	validChars := "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	for _, c := range id {
		assert.True(t, strings.ContainsRune(validChars, c), "GenerateRunID() returned ID with invalid character: %c", c)
	}
}

func TestSetupWithoutFileDiscards(t *testing.T) {
	preserveDefaultLogger(t)

	cleanup, err := Setup(Options{RunID: GenerateRunID()})
	require.NoError(t, err)
	defer cleanup()

	// Nothing to observe beyond not panicking; the discard handler drops
	// every record
	slog.Info("this record goes nowhere")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}

func TestSetupWritesJSONRecords(t *testing.T) {
	preserveDefaultLogger(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "xprompt.log")
	runID := GenerateRunID()

	cleanup, err := Setup(Options{Level: slog.LevelDebug, FilePath: path, RunID: runID})
	require.NoError(t, err)

	slog.Info("prompt generated", "mode", "ps1")
	cleanup()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))

	assert.Equal(t, "prompt generated", record["msg"])
	assert.Equal(t, "ps1", record["mode"])
	assert.Equal(t, runID, record["run_id"])
	assert.NotEmpty(t, record["hostname"])
	assert.NotZero(t, record["pid"])
}

func TestSetupHonorsLevel(t *testing.T) {
	preserveDefaultLogger(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "xprompt.log")

	cleanup, err := Setup(Options{Level: slog.LevelWarn, FilePath: path, RunID: GenerateRunID()})
	require.NoError(t, err)

	slog.Debug("suppressed")
	slog.Info("also suppressed")
	slog.Warn("recorded")
	cleanup()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "recorded")
}

func TestSetupCreatesParentDirectories(t *testing.T) {
	preserveDefaultLogger(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "logs", "xprompt.log")

	cleanup, err := Setup(Options{FilePath: path, RunID: GenerateRunID()})
	require.NoError(t, err)

	slog.Info("hello")
	cleanup()

	_, err = os.Stat(path)
	assert.NoError(t, err, "log file should exist under the created directories")
}

func TestSetupFailureDegradesToDiscard(t *testing.T) {
	preserveDefaultLogger(t)

	// A regular file where a directory component is expected makes
	// MkdirAll fail
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cleanup, err := Setup(Options{FilePath: filepath.Join(blocker, "xprompt.log"), RunID: GenerateRunID()})
	require.Error(t, err)
	defer cleanup()

	// The default logger must still be usable
	slog.Info("dropped, not crashed")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}

func TestAppendAcrossInvocations(t *testing.T) {
	preserveDefaultLogger(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "xprompt.log")

	for i := 0; i < 2; i++ {
		cleanup, err := Setup(Options{FilePath: path, RunID: GenerateRunID()})
		require.NoError(t, err)
		slog.Info("invocation record")
		cleanup()
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 2, "each invocation appends, never truncates")
}
