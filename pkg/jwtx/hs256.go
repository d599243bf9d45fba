package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256SecretLen is the minimum shared-secret length accepted for HS256.
// HMAC-SHA256 keys shorter than the hash output weaken the MAC.
const MinHS256SecretLen = 32

// HS256Signer implements the Signer interface using HMAC SHA-256 with a
// shared secret.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinHS256SecretLen {
		return nil, fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d",
			MinHS256SecretLen, len(secret))
	}

	return &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check to make sure we actually have a usable secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinHS256SecretLen {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}

// HS256Verifier validates JWTs signed using HS256 with the same shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	aud    []string
}

// NewVerifierHS256 creates a verifier bound to an expected issuer and audience.
// Empty issuer/audience means "don't enforce".
func NewVerifierHS256(secret []byte, issuer string, aud []string) *HS256Verifier {
	return &HS256Verifier{secret: secret, issuer: issuer, aud: aud}
}

// Verify validates the JWT string and returns its parsed Claims. Failures
// map to the package's typed errors (ErrMalformed, ErrAlgMismatch,
// ErrInvalidSig, ErrExpired, ErrNotYetValid) so callers can branch on them.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		// Never hand the secret to a token claiming a different scheme
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
