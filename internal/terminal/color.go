package terminal

import "strings"

// colorTerminals lists TERM values (or prefixes, matched up to a dash)
// known to render ANSI colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// termSupportsColor reports whether the TERM value names a terminal that
// can render color. "dumb" and an empty value never color, and unknown
// terminals get no color either: emitting escape sequences into a prompt
// the terminal cannot render is worse than a plain prompt.
func termSupportsColor(termValue string) bool {
	name := strings.ToLower(strings.TrimSpace(termValue))
	if name == "" || name == "dumb" {
		return false
	}

	for _, known := range colorTerminals {
		if name == known || strings.HasPrefix(name, known+"-") {
			return true
		}
	}
	return false
}
