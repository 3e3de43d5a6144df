package user

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordChars = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()"

// GeneratePassword returns a random credential of the given length drawn from
// letters, digits and specials. Used for imported rows that carry no password.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}
