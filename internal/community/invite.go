package community

import (
	"crypto/rand"
	"encoding/hex"
)

// inviteCodeLen is the length of an invite code in hex characters.
const inviteCodeLen = 12

// generateInviteCode returns a random lowercase hex string of inviteCodeLen
// characters. Uniqueness is enforced by the store; callers retry on
// collision.
func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLen/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
