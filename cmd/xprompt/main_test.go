package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPromptEnv isolates an invocation from the developer's real
// environment: no config file, no inherited color preferences.
func setupPromptEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XPROMPT_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("CLICOLOR", "")

	// startup() replaces the process-wide default logger
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
}

func TestRunRejectsMalformedInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "unknown mode", args: []string{"ps3"}},
		{name: "unknown flag", args: []string{"ps1", "-frobnicate"}},
		{name: "unknown shell", args: []string{"init", "-shell", "fish"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupPromptEnv(t)
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr)

			assert.NotZero(t, code)
			assert.NotEmpty(t, stderr.String(), "malformed invocations explain themselves on stderr")
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "xprompt")
	assert.Contains(t, stdout.String(), version)
}

func TestPS1OutsideRepository(t *testing.T) {
	setupPromptEnv(t)
	t.Setenv("NO_COLOR", "1")
	t.Setenv("USER", "alice")
	t.Setenv("HOME", "/home/alice")

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{"ps1", "-path", dir}, &stdout, &stderr)
	require.Equal(t, 0, code)

	out := stdout.String()
	assert.Contains(t, out, "alice@")
	assert.Contains(t, out, " in "+dir)
	assert.NotContains(t, out, " on ", "no repository means no VCS segment")
	assert.True(t, strings.HasSuffix(out, "$ "), "got %q", out)
	assert.NotContains(t, out, "\033[", "NO_COLOR output must be free of escape sequences")
	assert.Empty(t, stderr.String())
}

func TestPS1ColoredTerminator(t *testing.T) {
	tests := []struct {
		name       string
		exitStatus string
		wantCode   string
	}{
		{name: "success is green", exitStatus: "0", wantCode: "\033[1;38;5;64m$\033[0m"},
		{name: "failure is red", exitStatus: "1", wantCode: "\033[1;38;5;124m$\033[0m"},
		{name: "any nonzero is red", exitStatus: "130", wantCode: "\033[1;38;5;124m$\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupPromptEnv(t)
			t.Setenv("CLICOLOR_FORCE", "1")

			dir := t.TempDir()
			var stdout, stderr bytes.Buffer

			code := run([]string{"ps1", "-exit-status", tt.exitStatus, "-path", dir}, &stdout, &stderr)
			require.Equal(t, 0, code)

			assert.Contains(t, stdout.String(), tt.wantCode)
		})
	}
}

func TestPS2IsStatic(t *testing.T) {
	setupPromptEnv(t)
	t.Setenv("NO_COLOR", "1")

	var first, second, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"ps2"}, &first, &stderr))
	require.Equal(t, 0, run([]string{"ps2"}, &second, &stderr))

	assert.Equal(t, "> ", first.String())
	assert.Equal(t, first.String(), second.String(), "consecutive runs produce identical output")
	assert.Empty(t, stderr.String())
}

func TestPS2Colored(t *testing.T) {
	setupPromptEnv(t)
	t.Setenv("CLICOLOR_FORCE", "1")

	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"ps2"}, &stdout, &stderr))
	assert.Equal(t, "\033[1;38;5;136m>\033[0m ", stdout.String())
}

func TestInitEmitsShellStatements(t *testing.T) {
	t.Run("explicit bash", func(t *testing.T) {
		setupPromptEnv(t)
		var stdout, stderr bytes.Buffer

		code := run([]string{"init", "-shell", "bash"}, &stdout, &stderr)
		require.Equal(t, 0, code)

		out := stdout.String()
		assert.Contains(t, out, "PROMPT_COMMAND")
		assert.Contains(t, out, "ps1 -exit-status")
		assert.Contains(t, out, `PS2=`)
	})

	t.Run("explicit zsh", func(t *testing.T) {
		setupPromptEnv(t)
		var stdout, stderr bytes.Buffer

		code := run([]string{"init", "-shell", "zsh"}, &stdout, &stderr)
		require.Equal(t, 0, code)

		assert.Contains(t, stdout.String(), "precmd_functions")
	})

	t.Run("detected from SHELL", func(t *testing.T) {
		setupPromptEnv(t)
		t.Setenv("SHELL", "/usr/bin/zsh")
		var stdout, stderr bytes.Buffer

		code := run([]string{"init"}, &stdout, &stderr)
		require.Equal(t, 0, code)

		assert.Contains(t, stdout.String(), "precmd_functions")
	})

	t.Run("undetectable shell is a usage error", func(t *testing.T) {
		setupPromptEnv(t)
		t.Setenv("SHELL", "")
		var stdout, stderr bytes.Buffer

		code := run([]string{"init"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "unsupported shell")
	})
}
