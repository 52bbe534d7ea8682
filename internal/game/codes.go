package game

import "math/rand"

// codeAlphabet avoids vowels and glyphs that read ambiguously when typed
// from a screen (0/O, 1/I). 29 symbols, so 4 characters give 29^4
// (~707k) possible codes.
const codeAlphabet = "BCDFGHJKLMNPQRSTVWXYZ23456789"

const CodeLength = 4

// NewCode draws a room code. Not cryptographically secure; codes are
// discoverable by design and uniqueness is enforced by the registry's
// collision retry, not here.
func NewCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
