package vcs

import (
	"context"
	"fmt"
	"os/exec"
)

// StatusRunner produces the porcelain status output for a working tree.
// The single implementation shells out to git; tests substitute canned
// output so they need no git binary.
type StatusRunner interface {
	Run(ctx context.Context, dir string) ([]byte, error)
}

// ExecStatusRunner probes repository status via the git binary.
type ExecStatusRunner struct{}

// Run executes `git status --porcelain` in dir and returns its stdout.
// --no-optional-locks keeps the probe from taking the index lock; a prompt
// must never contend with a git command the user is running.
func (ExecStatusRunner) Run(ctx context.Context, dir string) ([]byte, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("failed to find git: %w", err)
	}

	cmd := exec.CommandContext(ctx, gitPath, "--no-optional-locks", "status", "--porcelain")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}
	return out, nil
}
