package session

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// storageKey hashes a session id so shared backends never hold the raw cookie value.
func storageKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
