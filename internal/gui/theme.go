// Package gui implements the Renderer (spec.md §4.5): it takes one
// consistent snapshot of Application State and GuiState per frame and
// draws it with gocui, delegating all interaction back to
// internal/input. Grounded on the teacher's pkg/gui (view/keybinding
// wiring) and pkg/gui/theme.go (colour-name resolution) plus
// pkg/gui/presentation/container_stats.go (asciigraph chart rendering).
package gui

import (
	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"

	"github.com/oxker-go/oxker/internal/config"
)

// gocuiAttribute resolves a colour name from the configured Colors table
// to a gocui.Attribute, the way the teacher's utils.GetGocuiAttribute
// does for its theme keys.
func gocuiAttribute(name string) gocui.Attribute {
	switch name {
	case "black":
		return gocui.ColorBlack
	case "red":
		return gocui.ColorRed
	case "green":
		return gocui.ColorGreen
	case "yellow":
		return gocui.ColorYellow
	case "blue":
		return gocui.ColorBlue
	case "magenta":
		return gocui.ColorMagenta
	case "cyan":
		return gocui.ColorCyan
	case "orange":
		return gocui.ColorYellow
	case "white":
		return gocui.ColorWhite
	default:
		return gocui.ColorDefault
	}
}

// fatihAttribute resolves the same colour name to a fatih/color
// attribute, for styling text written into a view's content rather than
// the view's border/background (used for per-state container glyphs and
// chart lines).
func fatihAttribute(name string) color.Attribute {
	switch name {
	case "black":
		return color.FgBlack
	case "red":
		return color.FgRed
	case "green":
		return color.FgGreen
	case "yellow":
		return color.FgYellow
	case "blue":
		return color.FgBlue
	case "magenta":
		return color.FgMagenta
	case "cyan":
		return color.FgCyan
	case "orange":
		return color.FgYellow
	default:
		return color.FgWhite
	}
}

// colouredString wraps s in name's fatih/color attribute, matching the
// teacher's utils.ColoredString helper.
func colouredString(s, name string) string {
	return color.New(fatihAttribute(name)).Sprint(s)
}

// theme is the resolved colour scheme a frame is rendered with.
type theme struct {
	colors config.Colors
}

func newTheme(c config.Colors) theme {
	return theme{colors: c}
}

func (t theme) border() gocui.Attribute     { return gocuiAttribute(t.colors.Borders) }
func (t theme) popupBorder() gocui.Attribute { return gocuiAttribute(t.colors.PopupBorder) }
