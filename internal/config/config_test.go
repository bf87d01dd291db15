package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHasSaneBaseline(t *testing.T) {
	d := Default()
	assert.Equal(t, 1000, d.IntervalMS)
	assert.True(t, d.Timestamp)
	assert.True(t, d.ColourLogs)
	assert.False(t, d.RawLogs)
	assert.Equal(t, []string{"q", "<c-c>"}, d.Keymap["quit"])
	assert.Equal(t, []string{"y"}, d.Keymap["delete_confirm"])
	assert.Equal(t, []string{"n"}, d.Keymap["delete_deny"])
}

func TestSaveFileNameFormat(t *testing.T) {
	assert.Equal(t, "/tmp/web_12345.log", SaveFileName("/tmp", "web", 12345))
}
