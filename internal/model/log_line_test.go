package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogBufferStickyTail(t *testing.T) {
	var b LogBuffer
	b.Append(LogLine{Styled: "1"}, LogLine{Styled: "2"})
	assert.True(t, b.AtEnd())
	assert.Equal(t, 1, b.Cursor)

	b.MoveCursor(-1) // scroll up, off the tail
	assert.False(t, b.AtEnd())

	b.Append(LogLine{Styled: "3"})
	assert.Equal(t, 0, b.Cursor, "cursor should stay put once off the tail")
}

func TestLogBufferTracksTailWhenAtEnd(t *testing.T) {
	var b LogBuffer
	b.Append(LogLine{Styled: "1"})
	b.Append(LogLine{Styled: "2"}, LogLine{Styled: "3"})
	assert.Equal(t, 2, b.Cursor)
	assert.True(t, b.AtEnd())
}

func TestLogBufferMoveCursorSaturates(t *testing.T) {
	var b LogBuffer
	b.Append(LogLine{Styled: "1"}, LogLine{Styled: "2"})
	b.MoveCursor(-100)
	assert.Equal(t, 0, b.Cursor)
	b.MoveCursor(100)
	assert.Equal(t, 1, b.Cursor)
}

func TestLogBufferJumpToSaturates(t *testing.T) {
	var b LogBuffer
	b.Append(LogLine{Styled: "1"}, LogLine{Styled: "2"}, LogLine{Styled: "3"})
	b.JumpTo(-5)
	assert.Equal(t, 0, b.Cursor)
	b.JumpTo(50)
	assert.Equal(t, 2, b.Cursor)
}

func TestLogBufferAppendOnEmptyBuffer(t *testing.T) {
	var b LogBuffer
	b.Append()
	assert.Equal(t, 0, len(b.Lines))
}
