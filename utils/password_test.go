package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("matkhau123")
	require.NoError(t, err)
	require.NotEqual(t, "matkhau123", hash)

	assert.True(t, CheckPassword(hash, "matkhau123"))
	assert.False(t, CheckPassword(hash, "matkhau124"))
	assert.False(t, CheckPassword("", "matkhau123"))
}
