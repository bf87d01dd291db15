package gui

import (
	"github.com/jesseduffield/gocui"

	"github.com/oxker-go/oxker/internal/input"
)

// keybindings registers every binding globally (viewname ""), the way
// the teacher binds its "universal" keys, and leaves modal routing
// entirely to internal/input.Dispatcher rather than gocui's per-view
// focus rules.
func (gui *Gui) keybindings(g *gocui.Gui) error {
	special := []struct {
		key gocui.Key
		ev  input.KeyEvent
	}{
		{gocui.KeyCtrlC, input.KeyEvent{Key: input.KeyCtrlC}},
		{gocui.KeyEsc, input.KeyEvent{Key: input.KeyEsc}},
		{gocui.KeyEnter, input.KeyEvent{Key: input.KeyEnter}},
		{gocui.KeyBackspace, input.KeyEvent{Key: input.KeyBackspace}},
		{gocui.KeyBackspace2, input.KeyEvent{Key: input.KeyBackspace}},
		{gocui.KeyTab, input.KeyEvent{Key: input.KeyTab}},
		{gocui.KeyBacktab, input.KeyEvent{Key: input.KeyBackTab}},
		{gocui.KeyArrowUp, input.KeyEvent{Key: input.KeyUp}},
		{gocui.KeyArrowDown, input.KeyEvent{Key: input.KeyDown}},
		{gocui.KeyArrowLeft, input.KeyEvent{Key: input.KeyLeft}},
		{gocui.KeyArrowRight, input.KeyEvent{Key: input.KeyRight}},
		{gocui.KeyPgup, input.KeyEvent{Key: input.KeyPgUp}},
		{gocui.KeyPgdn, input.KeyEvent{Key: input.KeyPgDn}},
		{gocui.KeyHome, input.KeyEvent{Key: input.KeyHome}},
		{gocui.KeyEnd, input.KeyEvent{Key: input.KeyEnd}},
		{gocui.KeyF1, input.KeyEvent{Key: input.KeyF1}},
	}
	for _, s := range special {
		ev := s.ev
		if err := g.SetKeybinding("", s.key, gocui.ModNone, gui.keyHandler(ev)); err != nil {
			return err
		}
	}

	// every printable ASCII rune, so filter/search text entry and the
	// single-letter action keys all go through the same path.
	for r := rune(0x20); r <= 0x7e; r++ {
		ev := input.KeyEvent{Key: input.KeyRune, Rune: r}
		if err := g.SetKeybinding("", r, gocui.ModNone, gui.keyHandler(ev)); err != nil {
			return err
		}
	}

	if err := g.SetKeybinding("", gocui.MouseLeft, gocui.ModNone, gui.mouseHandler(input.MouseLeft)); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseWheelUp, gocui.ModNone, gui.mouseHandler(input.MouseScrollUp)); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseWheelDown, gocui.ModNone, gui.mouseHandler(input.MouseScrollDown)); err != nil {
		return err
	}

	return nil
}

func (gui *Gui) keyHandler(ev input.KeyEvent) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		gui.Dispatcher.HandleKey(ev)
		return nil
	}
}

func (gui *Gui) mouseHandler(button input.MouseButton) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, _ *gocui.View) error {
		x, y := g.MousePosition()
		gui.Dispatcher.HandleMouse(input.MouseEvent{Button: button, X: x, Y: y})
		return nil
	}
}
