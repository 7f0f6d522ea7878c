package generator

import (
	"crypto/rand"
	"encoding/hex"
)

// InviteCode generates a random hex code of the given length.
func InviteCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}
