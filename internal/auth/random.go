package auth

import (
	"crypto/rand"
	"math/big"
)

const randomStringAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a cryptographically random alphanumeric string of
// the given length. Used for verification codes and reset tokens.
func RandomString(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(randomStringAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		result[i] = randomStringAlphabet[n.Int64()]
	}
	return string(result)
}
