// Package token implements stateless bearer token issuance and verification.
// A token's validity is a pure function of its HMAC signature, issue time and
// the 24 hour max age; no session state is kept server-side. The trade-off is
// deliberate: there is no revocation, so a leaked signing secret allows
// forging identities until it is rotated.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MaxAge is the absolute lifetime of an issued token.
const MaxAge = 24 * time.Hour

const issuer = "reunion-api"

// Verification failure reasons. Handlers map these to HTTP status codes.
var (
	// ErrMissing is returned when no token was supplied at all.
	ErrMissing = errors.New("token is missing")
	// ErrInvalid is returned when the signature check fails or the payload is malformed.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned when the signature is valid but the token is older than MaxAge.
	ErrExpired = errors.New("token has expired")
)

// Claims is the identity payload carried by a verified token.
type Claims struct {
	Email    string
	IssuedAt time.Time
}

// Issuer signs and verifies tokens with a server-held secret.
type Issuer struct {
	secret []byte
	// now is stubbed in tests to exercise expiry boundaries.
	now func() time.Time
}

// NewIssuer returns an Issuer signing with the given secret.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret not configured")
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue produces a signed token encoding the user's email claim.
func (i *Issuer) Issue(email string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub": email,                    // Subject (user email)
		"iss": issuer,                   // Issuer
		"iat": now.Unix(),               // Issued at
		"nbf": now.Unix(),               // Not before
		"exp": now.Add(MaxAge).Unix(),   // Expiration (24 hours)
		"jti": uuid.New().String()[:8],  // Token ID
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify decodes raw and checks its signature and age. It returns the embedded
// identity claim, or one of ErrMissing, ErrExpired, ErrInvalid.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissing
	}

	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, ErrInvalid
	}

	out := &Claims{Email: email}
	if iat, iatErr := claims.GetIssuedAt(); iatErr == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}
