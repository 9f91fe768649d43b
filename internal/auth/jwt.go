// Package auth identifies browsers and guards the admin routes.
//
// IDENTITY FLOW:
//  1. A browser's first request has no "client" cookie.
//  2. Identify mints a client id (an xid), signs it into a JWT and sets it
//     as an HttpOnly cookie.
//  3. Every later request presents the cookie; Identify validates it and
//     puts the client id in the request context.
//  4. The client id partitions everything the browser would otherwise keep
//     itself: the admin session and the theme flag in local storage.
//
// WHY SIGN THE CLIENT ID?
// The id is the only thing standing between one browser and another's admin
// session. A plain cookie could be edited to guess someone else's id; a
// signed one cannot be forged without the secret.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: {"alg":"HS256","typ":"JWT"}
//	- Payload: {"sub":"<client id>","iss":"portfolio-site","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	// Issuer is set on every client token and required when validating.
	Issuer = "portfolio-site"

	// ClientIDLifetime is how long a client cookie stays valid. The cookie
	// is re-issued well before that on any visit, so in practice a browser
	// keeps its id for as long as it keeps coming back.
	ClientIDLifetime = 365 * 24 * time.Hour
)

// TokenService signs and validates client id tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: COOKIE_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: cookie secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims uses "sub" (Subject) for the client id.
type claims struct {
	jwt.RegisteredClaims
}

// Generate signs clientID with the default lifetime.
func (s *TokenService) Generate(clientID string) (string, error) {
	return s.GenerateWithDuration(clientID, ClientIDLifetime)
}

// GenerateWithDuration signs clientID with a custom lifetime.
// Tests use it to build already-expired tokens.
func (s *TokenService) GenerateWithDuration(clientID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a client token and returns the client id.
//
// Besides the signature, expiry and issuer checks the subject must parse as
// an xid; anything else was not minted by NewClientID.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}
	if _, err := xid.FromString(c.Subject); err != nil {
		return "", fmt.Errorf("auth: subject is not a client id: %w", err)
	}

	return c.Subject, nil
}

// NewClientID returns a fresh, globally unique client id.
func NewClientID() string {
	return xid.New().String()
}
