// Package input implements the Input Dispatcher (spec.md §4.3): a single
// event loop that reads terminal events and translates them into
// Application State / GuiState mutations and Command Bus messages. It is
// deliberately gocui-agnostic — internal/gui translates gocui's
// keybinding callbacks into the Key/Mouse events below, grounded on the
// teacher's pkg/gui/keybindings package mapping string labels onto
// gocui's key types.
package input

// Key is a logical key, independent of any particular terminal library's
// encoding.
type Key int

const (
	KeyRune Key = iota // printable character; see KeyEvent.Rune
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyBackTab
	KeyPgUp
	KeyPgDn
	KeyHome
	KeyEnd
	KeyF1
	KeyCtrlC
)

// KeyEvent is one keyboard event.
type KeyEvent struct {
	Key  Key
	Rune rune // only meaningful when Key == KeyRune
}

// MouseButton names the mouse action that occurred.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseScrollUp
	MouseScrollDown
)

// MouseEvent is one mouse event in terminal cell coordinates.
type MouseEvent struct {
	Button MouseButton
	X, Y   int
}
