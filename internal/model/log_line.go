package model

// LogLine is one renderable, already-sanitised line of container log
// output along with the daemon timestamp it was emitted at (used so the
// Poller can ask for "everything since this unix second").
type LogLine struct {
	Styled string
	AtUnix int64
}

// LogBuffer is the unbounded per-container log history plus its own
// selection cursor (spec.md §3: "unbounded ordered sequence of styled
// lines with its own selection cursor").
type LogBuffer struct {
	Lines  []LogLine
	Cursor int
}

// AtEnd reports whether the cursor currently points at the last line.
func (b *LogBuffer) AtEnd() bool {
	return b.Cursor == len(b.Lines)-1
}

// Append pushes new lines and applies the "sticky tail" rule from
// spec.md §4.1: if the cursor was at the previous end, it tracks the new
// end; otherwise it stays put so a scrolled-up reader isn't yanked down.
func (b *LogBuffer) Append(lines ...LogLine) {
	if len(lines) == 0 {
		return
	}
	wasAtEnd := len(b.Lines) == 0 || b.AtEnd()
	b.Lines = append(b.Lines, lines...)
	if wasAtEnd {
		b.Cursor = len(b.Lines) - 1
	}
}

// MoveCursor shifts the cursor by delta, saturating at the buffer's ends.
// A no-op on an empty buffer.
func (b *LogBuffer) MoveCursor(delta int) {
	if len(b.Lines) == 0 {
		return
	}
	b.Cursor += delta
	if b.Cursor < 0 {
		b.Cursor = 0
	}
	if b.Cursor > len(b.Lines)-1 {
		b.Cursor = len(b.Lines) - 1
	}
}

// JumpTo moves the cursor to a specific index, saturating into range.
func (b *LogBuffer) JumpTo(i int) {
	if len(b.Lines) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(b.Lines)-1 {
		i = len(b.Lines) - 1
	}
	b.Cursor = i
}
