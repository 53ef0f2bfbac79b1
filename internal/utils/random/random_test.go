package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpperAlphaNum(t *testing.T) {
	s := UpperAlphaNum(8)
	assert.Len(t, s, 8)
	assert.Empty(t, strings.Trim(s, UpperAlphaNumeric))
	assert.NotEqual(t, UpperAlphaNum(16), UpperAlphaNum(16))
}

func TestDraw(t *testing.T) {
	s, err := Draw(0, AlphaNumeric)
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = Draw(64, "ab")
	require.NoError(t, err)
	assert.Len(t, s, 64)
	assert.Empty(t, strings.Trim(s, "ab"))

	_, err = Draw(4, "")
	assert.Error(t, err)
}

func TestDraw_CoversAlphabet(t *testing.T) {
	s, err := Draw(2000, "xyz")
	require.NoError(t, err)
	for _, r := range "xyz" {
		assert.Contains(t, s, string(r))
	}
}
