package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bloglane/blog-api/internal/core/domain"
)

var errEmptySecret = errors.New("jwt secret must be provided")

type tokenUser struct {
	ID string `json:"id"`
}

// tokenClaims keeps the {"user":{"id":...}} payload existing clients decode.
type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens with a process-wide secret.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

// Option customises a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

// NewJWTIssuer returns an issuer bound to secret.
func NewJWTIssuer(secret string, opts ...Option) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	i := &JWTIssuer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs claims with an expiry ttl from now.
func (i *JWTIssuer) Issue(claims domain.Claims, ttl time.Duration) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("issue token: user id is required")
	}
	now := i.now()
	tc := tokenClaims{
		User: tokenUser{ID: claims.UserID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return t.SignedString(i.secret)
}

// Verify parses token and returns its claims. Every failure is a
// *domain.AuthError.
func (i *JWTIssuer) Verify(token string) (*domain.Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if tc.User.ID == "" {
		return nil, &domain.AuthError{Kind: domain.AuthMalformed, Err: errors.New("token carries no user id")}
	}

	out := &domain.Claims{UserID: tc.User.ID, TokenID: tc.ID}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &domain.AuthError{Kind: domain.AuthMalformed, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &domain.AuthError{Kind: domain.AuthInvalidSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &domain.AuthError{Kind: domain.AuthExpired, Err: err}
	default:
		return &domain.AuthError{Kind: domain.AuthMalformed, Err: err}
	}
}
