package auth

import "crypto/subtle"

// Verifier checks an admin credential presented by a request.
// Route code depends on this capability only, so shared-secret auth can be
// swapped for per-user auth without touching handlers.
type Verifier interface {
	Verify(secret string) bool
}

// SecretVerifier verifies against a single process-wide shared secret
type SecretVerifier struct {
	secret []byte
}

func NewSecretVerifier(secret string) *SecretVerifier {
	return &SecretVerifier{secret: []byte(secret)}
}

// Verify compares in constant time to avoid leaking the secret via timing
func (v *SecretVerifier) Verify(secret string) bool {
	return subtle.ConstantTimeCompare(v.secret, []byte(secret)) == 1
}
