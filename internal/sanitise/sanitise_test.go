package sanitise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineStripsANSIWhenRequested(t *testing.T) {
	raw := "\x1b[31merror\x1b[0m: boom"
	assert.Equal(t, "error: boom", Line(raw, ModeStripANSI))
}

func TestLineColouriseKeepsRawBytes(t *testing.T) {
	raw := "\x1b[32mok\x1b[0m"
	assert.Equal(t, raw, Line(raw, ModeColourise))
}

func TestLineRawPassesThroughUnchanged(t *testing.T) {
	raw := "\x1b[32mok\x1b[0m"
	assert.Equal(t, raw, Line(raw, ModeRaw))
}
