// Package vcs inspects git repository state for prompt display: the branch
// (or detached commit) the working directory is on, whether the tree is
// dirty, and which categories of pending change exist.
//
// Everything here is best effort and strictly read-only. A prompt must
// appear no matter what, so any failure — unreadable metadata, a missing
// git binary, a probe timeout — collapses to "no repository state" rather
// than an error. The result is all of the state or none of it: callers
// never see a branch name paired with an undetermined dirty flag.
package vcs

// Flag is one category of pending change in a repository.
type Flag uint8

// Change categories, in display order.
const (
	// FlagUntracked marks untracked files.
	FlagUntracked Flag = 1 << iota

	// FlagModified marks working-tree changes to tracked files
	// (modified, deleted, renamed, type changed).
	FlagModified

	// FlagStaged marks index changes (added, modified, deleted, renamed,
	// type changed).
	FlagStaged

	// FlagStashed marks the presence of stash entries.
	FlagStashed
)

// flagGlyphs lists each flag with its prompt glyph, in display order.
var flagGlyphs = []struct {
	flag  Flag
	glyph string
}{
	{FlagUntracked, "?"},
	{FlagModified, "!"},
	{FlagStaged, "+"},
	{FlagStashed, "$"},
}

// FlagSet is a set of change categories.
type FlagSet uint8

// Add puts a flag into the set.
func (s *FlagSet) Add(f Flag) {
	*s |= FlagSet(f)
}

// Has reports whether the flag is in the set.
func (s FlagSet) Has(f Flag) bool {
	return s&FlagSet(f) != 0
}

// Empty reports whether no flag is set.
func (s FlagSet) Empty() bool {
	return s == 0
}

// String renders the set's glyphs in display order, e.g. "?!+".
// Insertion order never matters.
func (s FlagSet) String() string {
	var out []byte
	for _, fg := range flagGlyphs {
		if s.Has(fg.flag) {
			out = append(out, fg.glyph...)
		}
	}
	return string(out)
}

// Status describes the state of a repository for prompt display.
type Status struct {
	// Branch is the current branch name, or a shortened commit id when
	// HEAD is detached.
	Branch string

	// Detached marks a detached HEAD.
	Detached bool

	// Dirty is true when the working tree or index carries changes.
	// Stash entries alone do not make a tree dirty; they represent no
	// difference from HEAD.
	Dirty bool

	// Flags are the pending change categories.
	Flags FlagSet
}
