package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		token := GenerateBookingToken()
		assert.Len(t, token, 6)
		for _, ch := range token {
			assert.Contains(t, tokenChars, string(ch))
		}
		seen[token] = true
	}
	// 500 draws from a 36^6 space colliding down to a handful would mean the
	// generator is broken, not unlucky.
	assert.Greater(t, len(seen), 490)
}

func TestGenerateBookingTokenCoversAlphabet(t *testing.T) {
	counts := make(map[byte]int)
	for i := 0; i < 2000; i++ {
		for _, ch := range []byte(GenerateBookingToken()) {
			counts[ch]++
		}
	}
	// 12000 positions over 36 symbols averages ~333 hits each; a symbol
	// never appearing means part of the alphabet is unreachable.
	for i := 0; i < len(tokenChars); i++ {
		assert.Greater(t, counts[tokenChars[i]], 0, "symbol %q never drawn", string(tokenChars[i]))
	}
}
