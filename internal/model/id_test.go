package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerIdShort(t *testing.T) {
	assert.Equal(t, "abc", ContainerId("abc").Short())
	assert.Equal(t, "abcdefgh", ContainerId("abcdefghijk").Short())
}

func TestContainerIdLess(t *testing.T) {
	assert.True(t, ContainerId("a").Less("b"))
	assert.False(t, ContainerId("b").Less("a"))
	assert.False(t, ContainerId("a").Less("a"))
}
