package jwtx

// Signer is our interface for anything that can sign JWTs. The token service
// uses it to mint the session JWT a magic_link completion hands back; the same
// shared secret verifies inbound service bearer tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
// The secret must be at least MinHS256SecretLen bytes.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
