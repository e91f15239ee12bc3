// Package color provides small helpers for coloring terminal output using
// ANSI escape sequences. Styles here return formatted strings; whether they
// are applied at all is decided by the caller (see internal/terminal).
//
//nolint:revive // package name conflicts with standard library
package color

import "strconv"

// resetCode returns the terminal to its default rendition.
const resetCode = "\033[0m"

// Color represents a color function that wraps text with ANSI escape
// sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

// NewBold256 creates a color function for a bold foreground color from the
// xterm 256-color palette. The index is clamped to the 0..255 range.
func NewBold256(index int) Color {
	if index < 0 {
		index = 0
	}
	if index > 255 {
		index = 255
	}
	return NewColor("\033[1;38;5;" + strconv.Itoa(index) + "m")
}
