// Package prompt composes shell prompt strings from a session snapshot and
// optional repository state. Layout and palette are fixed: the prompt is a
// product, not a framework.
//
// Composition is pure; rendering decides separately whether styles apply,
// so the same segments serve colored and plain output.
package prompt

import (
	"strings"

	"github.com/56quarters/xprompt/internal/color"
	"github.com/56quarters/xprompt/internal/environment"
	"github.com/56quarters/xprompt/internal/vcs"
)

// timestampLayout is the clock format leading the prompt.
const timestampLayout = "2006-01-02T15:04:05"

const (
	// promptChar terminates PS1; its color reflects the previous exit status.
	promptChar = "$"

	// continuationChar is the PS2 glyph.
	continuationChar = ">"
)

// Palette is the fixed set of prompt styles, bold foreground colors from
// the xterm 256-color chart.
type Palette struct {
	Black  color.Color
	Blue   color.Color
	Cyan   color.Color
	Green  color.Color
	Orange color.Color
	Purple color.Color
	Red    color.Color
	Violet color.Color
	White  color.Color
	Yellow color.Color
}

// DefaultPalette returns the standard prompt palette.
func DefaultPalette() Palette {
	return Palette{
		Black:  color.NewBold256(0),
		Blue:   color.NewBold256(33),
		Cyan:   color.NewBold256(37),
		Green:  color.NewBold256(64),
		Orange: color.NewBold256(166),
		Purple: color.NewBold256(125),
		Red:    color.NewBold256(124),
		Violet: color.NewBold256(61),
		White:  color.NewBold256(15),
		Yellow: color.NewBold256(136),
	}
}

// Segment is one styled run of prompt text.
type Segment struct {
	Text  string
	Style color.Color // nil renders as plain text
}

// Composer builds prompt segment sequences.
type Composer struct {
	palette Palette
}

// NewComposer creates a composer with the default palette.
func NewComposer() *Composer {
	return &Composer{palette: DefaultPalette()}
}

// ComposePS1 builds the primary prompt from the session snapshot and the
// repository state. found reports whether status carries repository state;
// when false, no VCS segments appear at all.
func (c *Composer) ComposePS1(snap environment.Snapshot, status vcs.Status, found bool) []Segment {
	p := c.palette

	segments := []Segment{
		{Text: snap.Timestamp.Format(timestampLayout), Style: p.Cyan},
		{Text: " ", Style: p.White},
		{Text: snap.User, Style: p.Blue},
		{Text: "@", Style: p.White},
		{Text: snap.Host, Style: p.Orange},
		{Text: " in ", Style: p.White},
		{Text: snap.DisplayDir, Style: p.Green},
	}

	if found {
		// The branch name itself signals tree health: violet at rest,
		// red when anything is pending
		branchStyle := p.Violet
		if status.Dirty {
			branchStyle = p.Red
		}
		segments = append(segments,
			Segment{Text: " on ", Style: p.White},
			Segment{Text: status.Branch, Style: branchStyle},
		)

		if !status.Flags.Empty() {
			segments = append(segments,
				Segment{Text: " [", Style: p.Blue},
				Segment{Text: status.Flags.String(), Style: p.Blue},
				Segment{Text: "]", Style: p.Blue},
			)
		}
	}

	charStyle := p.Green
	if snap.ExitStatus != 0 {
		charStyle = p.Red
	}
	segments = append(segments,
		Segment{Text: " ", Style: p.White},
		Segment{Text: promptChar, Style: charStyle},
		Segment{Text: " "},
	)

	return segments
}

// ComposePS2 builds the continuation prompt. It is deliberately static:
// repository state never appears mid-command, and composing it consults
// nothing.
func (c *Composer) ComposePS2() []Segment {
	return []Segment{
		{Text: continuationChar, Style: c.palette.Yellow},
		{Text: " "},
	}
}

// Render concatenates segments into the final prompt string, applying
// styles only when colored is true.
func Render(segments []Segment, colored bool) string {
	var b strings.Builder
	for _, seg := range segments {
		if colored && seg.Style != nil {
			b.WriteString(seg.Style(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
