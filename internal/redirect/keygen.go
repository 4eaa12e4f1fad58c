package redirect

import (
	"crypto/rand"
	"encoding/hex"
)

// keyBytes is the number of random bytes in a key; hex-encoded it yields a
// 16-character identifier.
const keyBytes = 8

// KeyGenerator produces short opaque keys for new redirects.
type KeyGenerator func() (string, error)

// NewHexKeyGenerator returns a generator that draws keyBytes from a
// cryptographically secure source and encodes them as lowercase hex.
// Uniqueness is not checked here; the store's unique constraint on the key
// column surfaces collisions as ErrDuplicateKey.
func NewHexKeyGenerator() KeyGenerator {
	return func() (string, error) {
		buf := make([]byte, keyBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		return hex.EncodeToString(buf), nil
	}
}
