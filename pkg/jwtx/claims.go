package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for sessions minted off a
// completed magic link. Short-lived; the platform's auth layer is
// responsible for refresh.
const DefaultSessionTTL = 1 * time.Hour

// Claims are the token claims used across the service. Keep changes additive
// to preserve compatibility for anything already holding a token.
type Claims struct {
	jwt.RegisteredClaims

	/* Custom fields */

	// Session ID
	SID string `json:"sid,omitempty"`

	// Permission Scopes "tokens:issue, tokens:read"
	Scopes []string `json:"scopes,omitempty"`

	// Authentication Methods Reference, e.g. ["magic_link"].
	// Lets downstream consumers distinguish how the session was established.
	AMR []string `json:"amr,omitempty"`

	// Email of the subject the token was minted for.
	Email string `json:"email,omitempty"`
}

// NewClaims builds minimally-correct claims.
func NewClaims(
	subject, sid string,
	scopes, amr []string,
	email string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:    sid,
		Scopes: scopes,
		AMR:    amr,
		Email:  email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	// Check expired (exp)
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	// Check if a valid token isn't used before it is valid (nbf)
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
