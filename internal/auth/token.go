package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenIssuer is the issuer claim of every session token.
const TokenIssuer = "go-auth-admin"

// TokenService issues and verifies self-contained signed session tokens.
// Verification failures are never subdivided for callers.
type TokenService struct {
	signingKey []byte
	expiry     time.Duration
}

// NewTokenService creates a TokenService with the given HMAC signing key and
// token lifetime.
func NewTokenService(signingKey string, expiry time.Duration) (*TokenService, error) {
	if signingKey == "" {
		return nil, ErrSigningKeyEmpty
	}

	return &TokenService{signingKey: []byte(signingKey), expiry: expiry}, nil
}

// Issue signs a token whose subject claim is the given subject.
func (t *TokenService) Issue(subject string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the subject claim. Any
// failure collapses into ErrTokenInvalid.
func (t *TokenService) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}

		return t.signingKey, nil
	}, jwt.WithIssuer(TokenIssuer))

	if err != nil || !parsed.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
