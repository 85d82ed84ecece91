package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashIdentity one-way hashes personally-identifying text (customer names,
// addresses). Raw identifying text must never leave the matcher layer;
// every ScreenInfo field that derives from it carries this hash instead.
// Input is trimmed and lowercased first so cosmetic rendering differences
// between snapshots hash identically.
func HashIdentity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
