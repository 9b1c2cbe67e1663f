// Package token mints the opaque bearer secrets used for admin sessions and
// message ownership.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New returns a fresh 256-bit random token, hex encoded. Tokens are handed
// out exactly once; no read path can recover them later.
func New() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
