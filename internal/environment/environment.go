// Package environment captures the session facts a prompt displays: who is
// running the shell, on which machine, in which directory, and how the last
// command exited. A snapshot is taken once per invocation and passed around
// explicitly so nothing downstream reads process state on its own.
package environment

import (
	"os"
	"os/user"
	"strings"
	"time"
)

// UnknownValue is displayed when a snapshot field cannot be determined.
const UnknownValue = "[unknown]"

// System lookups as package-level variables so tests can substitute
// failing or canned implementations.
var (
	osHostname  = os.Hostname
	osGetwd     = os.Getwd
	userCurrent = user.Current
)

// Snapshot holds everything about the invoking session that a prompt
// renders.
type Snapshot struct {
	User       string
	Host       string
	WorkDir    string // working directory, or UnknownValue
	DisplayDir string // WorkDir with the home prefix abbreviated to ~
	ExitStatus int    // exit status of the previously executed command
	Timestamp  time.Time
}

// Options adjusts how a snapshot is captured.
type Options struct {
	// ExitStatus is the exit code of the previously executed command,
	// normally wired to $? by the shell integration.
	ExitStatus int

	// WorkDir overrides working-directory detection when non-empty.
	WorkDir string
}

// Capture assembles a snapshot of the current session. Lookups that fail
// yield placeholder values; Capture itself never fails.
func Capture(opts Options) Snapshot {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = currentDir()
	}

	return Snapshot{
		User:       currentUser(),
		Host:       hostname(),
		WorkDir:    workDir,
		DisplayDir: abbreviateHome(workDir, os.Getenv("HOME")),
		ExitStatus: opts.ExitStatus,
		Timestamp:  time.Now(),
	}
}

// currentUser resolves the invoking user: $USER first, then a passwd
// lookup, then the placeholder.
func currentUser() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := userCurrent(); err == nil && u.Username != "" {
		return u.Username
	}
	return UnknownValue
}

// hostname returns the machine's hostname or the placeholder.
func hostname() string {
	host, err := osHostname()
	if err != nil || host == "" {
		return UnknownValue
	}
	return host
}

// currentDir resolves the working directory. $PWD is preferred because it
// preserves the logical path the shell shows, symlinks included; os.Getwd
// resolves symlinks away.
func currentDir() string {
	if dir := os.Getenv("PWD"); dir != "" {
		return dir
	}
	if dir, err := osGetwd(); err == nil {
		return dir
	}
	return UnknownValue
}

// abbreviateHome replaces a leading home-directory prefix with "~". The
// match must end on a path-segment boundary: /home/al is not a prefix of
// /home/alice. When home is empty or the directory is unknown, the
// directory is returned unchanged.
func abbreviateHome(dir, home string) string {
	if home == "" || dir == UnknownValue {
		return dir
	}

	home = strings.TrimSuffix(home, "/")
	if home == "" {
		// HOME=/ would abbreviate every absolute path
		return dir
	}

	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+"/") {
		return "~" + dir[len(home):]
	}
	return dir
}
