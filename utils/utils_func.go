package utils

import (
	"crypto/rand"
	"fmt"
	"os"
)

// GetJWTSecret returns the secret used to sign admin session tokens.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET environment variable not set.")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

// tokenChars is the booking-token alphabet. 36 symbols over 6 positions is a
// display code, not a credential; uniqueness comes from the database
// constraint, not from entropy.
const tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingToken returns a 6-character customer-facing booking
// reference drawn uniformly from A-Z and 0-9.
func GenerateBookingToken() string {
	// 252 is the largest multiple of 36 that fits in a byte; bytes at or
	// above it are discarded so every symbol is equally likely.
	const cutoff = 256 - 256%len(tokenChars)

	token := make([]byte, 0, 6)
	buf := make([]byte, 16)
	for len(token) < 6 {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand failing means the platform is broken; fall back to
			// a fixed value that the uniqueness retry loop will reject on
			// reuse.
			return "000000"
		}
		for _, b := range buf {
			if int(b) >= cutoff {
				continue
			}
			token = append(token, tokenChars[int(b)%len(tokenChars)])
			if len(token) == 6 {
				break
			}
		}
	}
	return string(token)
}
