package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPBKDF2Hasher_Deterministic(t *testing.T) {
	hasher := NewPBKDF2Hasher("unit-test-secret", 64)

	first := hasher.Hash("pw1")
	second := hasher.Hash("pw1")

	assert.Equal(t, first, second, "same input must always yield the same digest")
	assert.NotEmpty(t, first)
}

func TestPBKDF2Hasher_NeverPassesPlaintextThrough(t *testing.T) {
	hasher := NewPBKDF2Hasher("unit-test-secret", 64)

	secrets := []string{"pw1", "", "a", "简体中文密码", "StrongPass123!"}
	for _, secret := range secrets {
		digest := hasher.Hash(secret)
		assert.NotEqual(t, secret, digest)
		if secret != "" {
			assert.NotContains(t, digest, secret)
		}
	}
}

func TestPBKDF2Hasher_DistinctInputsDistinctDigests(t *testing.T) {
	hasher := NewPBKDF2Hasher("unit-test-secret", 64)

	assert.NotEqual(t, hasher.Hash("pw1"), hasher.Hash("pw2"))
}

func TestPBKDF2Hasher_DigestDependsOnServiceSecret(t *testing.T) {
	first := NewPBKDF2Hasher("secret-a", 64)
	second := NewPBKDF2Hasher("secret-b", 64)

	assert.NotEqual(t, first.Hash("pw1"), second.Hash("pw1"))
}
