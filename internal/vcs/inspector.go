package vcs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds the status probe when Options does not.
const DefaultTimeout = 2 * time.Second

// shortIDLength is the number of hex digits shown for a detached HEAD.
const shortIDLength = 7

// Inspector resolves the full repository status for a directory.
type Inspector struct {
	runner  StatusRunner
	timeout time.Duration
	logger  *slog.Logger
}

// Options configures an Inspector.
type Options struct {
	// Runner overrides the status probe; nil selects the git binary.
	Runner StatusRunner

	// Timeout bounds the probe. Zero or negative selects DefaultTimeout.
	Timeout time.Duration

	// Logger receives debug records. Nil selects slog.Default().
	Logger *slog.Logger
}

// NewInspector creates an inspector with the given options.
func NewInspector(opts Options) *Inspector {
	runner := opts.Runner
	if runner == nil {
		runner = ExecStatusRunner{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Inspector{runner: runner, timeout: timeout, logger: logger}
}

// Inspect resolves the repository status for the directory. ok is false
// when dir lies outside any repository, and also when any part of the
// state could not be determined: a branch name never appears without a
// computed dirty flag. Inspect itself never fails; problems are logged at
// debug level and collapse to not-found.
func (i *Inspector) Inspect(ctx context.Context, dir string) (Status, bool) {
	repo, ok := Discover(dir)
	if !ok {
		return Status{}, false
	}

	head, ok := readHead(repo.GitDir)
	if !ok {
		i.logger.Debug("could not interpret HEAD", "git_dir", repo.GitDir)
		return Status{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	out, err := i.runner.Run(ctx, repo.Root)
	if err != nil {
		i.logger.Debug("status probe failed", "repo", repo.Root, "error", err)
		return Status{}, false
	}

	flags := parsePorcelain(out)
	if hasStash(repo.GitDir) {
		flags.Add(FlagStashed)
	}

	return Status{
		Branch:   head.name,
		Detached: head.detached,
		Dirty:    flags.Has(FlagUntracked) || flags.Has(FlagModified) || flags.Has(FlagStaged),
		Flags:    flags,
	}, true
}

// headRef is the parsed content of a HEAD file.
type headRef struct {
	name     string
	detached bool
}

// readHead parses <gitDir>/HEAD. A `ref: refs/heads/<name>` symref yields
// the branch name; the branch may be unborn (no commits yet), the symref
// alone carries it. A raw object id yields a shortened id and detached
// state. Anything else reports not-ok.
func readHead(gitDir string) (headRef, bool) {
	content, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return headRef{}, false
	}

	line, _, _ := strings.Cut(string(content), "\n")
	line = strings.TrimSpace(line)

	if ref, ok := strings.CutPrefix(line, "ref:"); ok {
		name, ok := strings.CutPrefix(strings.TrimSpace(ref), "refs/heads/")
		if !ok || name == "" {
			return headRef{}, false
		}
		return headRef{name: name}, true
	}

	if len(line) >= shortIDLength && isHex(line) {
		return headRef{name: line[:shortIDLength], detached: true}, true
	}

	return headRef{}, false
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}

// parsePorcelain classifies `git status --porcelain` output into flags.
// Each line is `XY path` with X the index column and Y the worktree
// column; `??` marks an untracked file and `!!` an ignored one.
func parsePorcelain(out []byte) FlagSet {
	var flags FlagSet

	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 2 {
			continue
		}
		x, y := line[0], line[1]

		switch {
		case x == '?' && y == '?':
			flags.Add(FlagUntracked)
		case x == '!' && y == '!':
			// ignored files are not a pending change
		default:
			if isChangeCode(x) {
				flags.Add(FlagStaged)
			}
			if isChangeCode(y) {
				flags.Add(FlagModified)
			}
		}
	}

	return flags
}

// isChangeCode reports whether a porcelain column letter marks a change.
// A space means unmodified; every other code (M, A, D, R, C, T, U) is a
// change in that column.
func isChangeCode(c byte) bool {
	return c != ' '
}

// hasStash reports whether stash entries exist, checked purely on the
// filesystem. The stash is the reflog of refs/stash, so either the loose
// ref or its log being present means entries exist. Both live in the
// common directory, shared across linked worktrees.
func hasStash(gitDir string) bool {
	common := commonDir(gitDir)
	for _, rel := range []string{
		filepath.Join("refs", "stash"),
		filepath.Join("logs", "refs", "stash"),
	} {
		if info, err := os.Stat(filepath.Join(common, rel)); err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}
