package pii

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hasher turns contact identifiers into the form the advertising API
// accepts. With hashing enabled only SHA-256 hex digests leave the process.
type Hasher struct {
	enabled bool
}

// NewHasher creates a Hasher. When enabled is false identifiers are only
// normalized and sent in plaintext.
func NewHasher(enabled bool) *Hasher {
	return &Hasher{enabled: enabled}
}

// Enabled reports whether plaintext identifiers are hashed.
func (h *Hasher) Enabled() bool {
	return h.enabled
}

// Email normalizes an email address and hashes it when enabled.
func (h *Hasher) Email(raw string) string {
	if h.enabled {
		return HashEmail(raw)
	}
	return normalizeEmail(raw)
}

// Phone normalizes a phone number and hashes it when enabled.
func (h *Hasher) Phone(raw string) string {
	if h.enabled {
		return HashPhone(raw)
	}
	return strings.TrimSpace(raw)
}

// EmailDigest accepts an email digest computed by the caller. With hashing
// enabled, a value that is not a SHA-256 hex digest is hashed as an address.
func (h *Hasher) EmailDigest(raw string) string {
	d := NormalizeDigest(raw)
	if h.enabled && !IsDigest(d) {
		return HashEmail(raw)
	}
	return d
}

// PhoneDigest is EmailDigest for phone numbers.
func (h *Hasher) PhoneDigest(raw string) string {
	d := NormalizeDigest(raw)
	if h.enabled && !IsDigest(d) {
		return HashPhone(raw)
	}
	return d
}

// HashEmail returns the hex SHA-256 of the trimmed, lowercased address.
// An empty address yields "", never the digest of the empty string.
func HashEmail(raw string) string {
	return digest(normalizeEmail(raw))
}

// HashPhone returns the hex SHA-256 of the trimmed number. An empty number
// yields "".
func HashPhone(raw string) string {
	return digest(strings.TrimSpace(raw))
}

// NormalizeDigest cleans up a digest computed by the caller.
func NormalizeDigest(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsDigest reports whether s is a lowercase hex SHA-256 digest.
func IsDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func digest(s string) string {
	if s == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
