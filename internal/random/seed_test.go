package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedPrefersConfigured(t *testing.T) {
	got, err := Seed(1234)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), got)
}

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
