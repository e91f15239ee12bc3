package vcs

import (
	"os"
	"path/filepath"
	"strings"
)

// Repository locates a discovered repository on disk.
type Repository struct {
	// Root is the working-tree directory containing the .git entry.
	Root string

	// GitDir is the repository metadata directory. For linked worktrees
	// this is the per-worktree directory the .git pointer file names,
	// not the shared one.
	GitDir string
}

// Discover walks upward from startDir looking for the repository that
// contains it. The .git entry at each level may be a directory (a normal
// repository) or a file holding a `gitdir: <path>` pointer (linked
// worktrees and submodules). Any failure along the way, including a .git
// entry that cannot be interpreted, reports not-found. Bare repositories
// have no .git entry and are never discovered.
func Discover(startDir string) (Repository, bool) {
	dir := startDir
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Repository{}, false
		}
		dir = abs
	}
	dir = filepath.Clean(dir)

	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() {
				return Repository{Root: dir, GitDir: gitPath}, true
			}
			if gitDir, ok := resolveGitFile(gitPath); ok {
				return Repository{Root: dir, GitDir: gitDir}, true
			}
			// A .git entry we cannot interpret. Walking further up
			// could attribute this tree to an enclosing repository
			// it does not belong to, so stop here.
			return Repository{}, false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Repository{}, false
		}
		dir = parent
	}
}

// resolveGitFile reads a .git pointer file and resolves its target. The
// file holds a single `gitdir: <path>` line; a relative path is taken
// relative to the file's directory. The target must exist and be a
// directory.
func resolveGitFile(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	line, _, _ := strings.Cut(string(content), "\n")
	target, ok := strings.CutPrefix(strings.TrimSpace(line), "gitdir:")
	if !ok {
		return "", false
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return filepath.Clean(target), true
}

// commonDir resolves the directory holding shared repository state such as
// refs and stash logs. Linked worktrees record it in a `commondir` file;
// everywhere else the git directory is its own common directory.
func commonDir(gitDir string) string {
	content, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}

	line, _, _ := strings.Cut(string(content), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return gitDir
	}
	if !filepath.IsAbs(line) {
		line = filepath.Join(gitDir, line)
	}
	return filepath.Clean(line)
}
