// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"passport/internal/domain/service"
)

const digestLength = 32

// pbkdf2Hasher is a deterministic implementation of the CredentialHasher
// interface. The digest is keyed by a service-wide secret instead of a
// per-hash salt: login and password change match credentials inside a storage
// predicate, which requires hash(x) to be a pure function of x.
type pbkdf2Hasher struct {
	secret     []byte
	iterations int
}

// NewPBKDF2Hasher is the constructor for pbkdf2Hasher.
// It returns the implementation as a service.CredentialHasher interface.
func NewPBKDF2Hasher(secret string, iterations int) service.CredentialHasher {
	return &pbkdf2Hasher{
		secret:     []byte(secret),
		iterations: iterations,
	}
}

// Hash derives a hex-encoded PBKDF2-SHA256 digest of the secret.
func (h *pbkdf2Hasher) Hash(secret string) string {
	digest := pbkdf2.Key([]byte(secret), h.secret, h.iterations, digestLength, sha256.New)

	return hex.EncodeToString(digest)
}
