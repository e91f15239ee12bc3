// Package terminal decides whether prompt output may carry ANSI color
// sequences. The decision combines explicit user preference (config flags,
// NO_COLOR and friends), interactivity of the session, and the terminal's
// advertised capabilities.
//
// Interactivity is keyed on stderr rather than stdout: prompt generation
// runs inside command substitution, so stdout is a pipe even for a user
// sitting at a terminal.
package terminal

import (
	"os"
	"strings"
)

// Options carries the explicit overrides passed down from the command line
// or the configuration file.
type Options struct {
	// ForceColor and DisableColor pin the color decision (config
	// color = always / never). ForceColor wins when both are set.
	ForceColor   bool
	DisableColor bool

	// ForceInteractive and ForceNonInteractive pin the interactivity
	// decision regardless of the environment.
	ForceInteractive    bool
	ForceNonInteractive bool
}

// Capabilities answers the color and interactivity questions for one
// invocation.
type Capabilities struct {
	opts Options
}

// NewCapabilities creates a Capabilities with the given overrides.
func NewCapabilities(opts Options) *Capabilities {
	return &Capabilities{opts: opts}
}

// SupportsColor reports whether output should carry ANSI sequences.
// Sources are consulted in priority order:
//  1. Explicit options (config color = always | never)
//  2. CLICOLOR_FORCE truthy (overrides everything below)
//  3. NO_COLOR present (any value, even empty)
//  4. Interactivity and TERM capability; both must hold
//  5. CLICOLOR, honored only once 4 holds
func (c *Capabilities) SupportsColor() bool {
	if decided, want := c.explicitPreference(); decided {
		return want
	}

	// Without an explicit preference, color requires an interactive
	// session on a color-capable terminal
	if !c.IsInteractive() || !termSupportsColor(os.Getenv("TERM")) {
		return false
	}

	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}

	return true
}

// HasExplicitUserPreference reports whether the color decision comes from
// an explicit source rather than detection.
func (c *Capabilities) HasExplicitUserPreference() bool {
	decided, _ := c.explicitPreference()
	return decided
}

// explicitPreference resolves the sources that bypass detection entirely.
// CLICOLOR_FORCE=0 counts as unset, per the usual convention; NO_COLOR
// disables on mere presence. CLICOLOR is not explicit: it only applies to
// interactive sessions, so it stays with the detection path.
func (c *Capabilities) explicitPreference() (decided, want bool) {
	if c.opts.ForceColor {
		return true, true
	}
	if c.opts.DisableColor {
		return true, false
	}
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true, true
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true, false
	}
	return false, false
}

// IsInteractive reports whether this invocation serves a user at a
// terminal: explicit overrides first, then CI detection, then the stderr
// probe.
func (c *Capabilities) IsInteractive() bool {
	if c.opts.ForceInteractive {
		return true
	}
	if c.opts.ForceNonInteractive {
		return false
	}
	if inCIEnvironment() {
		return false
	}
	return stderrIsTerminal()
}

// isTruthy checks if a string value should be considered "true".
// Supports: "1", "true", "yes" (case insensitive).
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
