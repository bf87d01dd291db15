package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDockerClientDoesNotDialEagerly(t *testing.T) {
	// client.NewClientWithOpts only constructs the client; it never
	// dials the daemon, so this succeeds even with nothing listening.
	c, err := NewDockerClient("")
	assert.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNewDockerClientHonoursExplicitHost(t *testing.T) {
	c, err := NewDockerClient("tcp://127.0.0.1:2375")
	assert.NoError(t, err)
	assert.NotNil(t, c)
}
