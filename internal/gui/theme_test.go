package gui

import (
	"testing"

	"github.com/jesseduffield/gocui"
	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/config"
)

func TestGocuiAttributeResolvesKnownNames(t *testing.T) {
	assert.Equal(t, gocui.ColorCyan, gocuiAttribute("cyan"))
	assert.Equal(t, gocui.ColorRed, gocuiAttribute("red"))
	assert.Equal(t, gocui.ColorYellow, gocuiAttribute("orange"))
}

func TestColouredStringPreservesText(t *testing.T) {
	out := colouredString("hello", "cyan")
	assert.Contains(t, out, "hello")
}

func TestThemeBorderResolvesFromColors(t *testing.T) {
	th := newTheme(config.Colors{Borders: "cyan", PopupBorder: "magenta"})
	assert.Equal(t, gocui.ColorCyan, th.border())
	assert.Equal(t, gocui.ColorMagenta, th.popupBorder())
}
