package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of in.
func Hash(in string) string {
	sum := sha256.Sum256([]byte(in))
	return hex.EncodeToString(sum[:])
}

// HashBytes returns the hex-encoded SHA-256 digest of raw bytes.
// Used to derive the tariff version from the config file contents.
func HashBytes(in []byte) string {
	sum := sha256.Sum256(in)
	return hex.EncodeToString(sum[:])
}

// Short returns the first 12 hex characters of the digest, enough to
// distinguish tariff revisions in logs and responses.
func Short(in []byte) string {
	h := HashBytes(in)
	return h[:12]
}
