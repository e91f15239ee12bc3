// Package shell wires the prompt tool into a shell session. It detects
// which shell is running and emits the statements that regenerate PS1
// before every prompt and set PS2 once.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell identifies a supported shell.
type Shell string

// Supported shells
const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
)

// Error definitions for the shell package
var (
	// ErrUnsupportedShell is returned for shells the tool cannot emit
	// integration statements for
	ErrUnsupportedShell = errors.New("unsupported shell")
)

// osExecutable is a package-level variable pointing to os.Executable so
// tests can pin the path.
var osExecutable = os.Executable

// Parse maps a shell name to a Shell.
func Parse(name string) (Shell, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: bash, zsh)", ErrUnsupportedShell, name)
	}
}

// Detect determines the running shell from $SHELL.
func Detect() (Shell, error) {
	return Parse(filepath.Base(os.Getenv("SHELL")))
}

// ExecutablePath returns the invoking binary's path for embedding in the
// init script. When the path cannot be determined it falls back to the
// bare command name, leaving resolution to $PATH at prompt time.
func ExecutablePath() string {
	exe, err := osExecutable()
	if err != nil || exe == "" {
		return "xprompt"
	}
	return exe
}

// bashInit regenerates PS1 through PROMPT_COMMAND. The previous command's
// exit status must be captured in the first statement, before anything
// else overwrites $?.
const bashInit = `__xprompt_ps1() {
    local status=$?
    PS1="$(%[1]s ps1 -exit-status "$status")"
}
PROMPT_COMMAND=__xprompt_ps1
PS2="$(%[1]s ps2)"
`

// zshInit does the same through the precmd hook list.
const zshInit = `__xprompt_precmd() {
    local status=$?
    PS1="$(%[1]s ps1 -exit-status "$status")"
}
precmd_functions+=(__xprompt_precmd)
PS2="$(%[1]s ps2)"
`

// shellQuote wraps s in single quotes, escaping embedded single quotes,
// so the embedded path survives spaces and shell metacharacters.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// InitScript returns the statements wiring PS1/PS2 for the given shell,
// invoking the binary at executable.
func InitScript(sh Shell, executable string) (string, error) {
	switch sh {
	case Bash:
		return fmt.Sprintf(bashInit, shellQuote(executable)), nil
	case Zsh:
		return fmt.Sprintf(zshInit, shellQuote(executable)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, sh)
	}
}
