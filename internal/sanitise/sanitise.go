// Package sanitise is the Log Sanitiser external collaborator from
// spec.md §2: a pure function from a raw daemon log line to a renderable
// styled line. spec.md places it out of core scope ("specified only by
// its function signature"); this is a minimal, self-contained
// implementation rather than a full ANSI-aware colouriser.
package sanitise

import "github.com/oxker-go/oxker/internal/utils"

// Mode selects how a raw log line is turned into a styled one.
type Mode int

const (
	ModeColourise Mode = iota // keep the daemon's own ANSI styling
	ModeStripANSI             // remove ANSI escapes, show plain text
	ModeRaw                   // pass the bytes through completely untouched
)

// Line sanitises one raw log line according to mode.
func Line(raw string, mode Mode) string {
	switch mode {
	case ModeStripANSI:
		return utils.Decolorise(raw)
	case ModeRaw:
		return raw
	default: // ModeColourise
		return raw
	}
}
