package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCode_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := NewCode()
		require.Len(t, code, CodeLength)
		for _, ch := range code {
			require.True(t, strings.ContainsRune(codeAlphabet, ch),
				"code %q contains %q outside the alphabet", code, ch)
		}
	}
}

func TestCodeAlphabet_ExcludesAmbiguousGlyphs(t *testing.T) {
	require.Len(t, codeAlphabet, 29)
	for _, banned := range "AEIOU01" {
		require.NotContains(t, codeAlphabet, string(banned))
	}
}
