// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// CredentialHasher defines the one-way transform applied to a plaintext secret
// before it is ever stored or compared. The transform must be deterministic:
// the login and password-change paths match credentials inside a repository
// predicate, so the same input must always yield the same digest.
type CredentialHasher interface {
	// Hash derives the stored representation of a plaintext secret.
	Hash(secret string) string
}
