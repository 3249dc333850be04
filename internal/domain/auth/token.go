package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken stores only a digest of session tokens; the raw value never
// touches the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
