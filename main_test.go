package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstKeyUsesConfiguredPrimaryKey(t *testing.T) {
	assert.Equal(t, 'x', firstKey([]string{"x", "X"}, 'c'))
}

func TestFirstKeyFallsBackWhenUnconfigured(t *testing.T) {
	assert.Equal(t, 'c', firstKey(nil, 'c'))
}

func TestFirstKeyFallsBackOnMultiRuneLabel(t *testing.T) {
	assert.Equal(t, 'c', firstKey([]string{"<c-c>"}, 'c'))
}
