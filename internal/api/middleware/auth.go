package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

// HeaderAuthToken carries a bare token. Authorization: Bearer is also accepted.
const HeaderAuthToken = "x-auth-token"

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

// Auth verifies the request token and stores the user id in the context.
// Failures are returned as domain errors for the central error handler.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFromRequest(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return err
			}

			c.Set(UserIDKey, claims.UserID)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, error) {
	if t := strings.TrimSpace(c.Request().Header.Get(HeaderAuthToken)); t != "" {
		return t, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", &domain.AuthError{Kind: domain.AuthMalformed}
	}
	return strings.TrimSpace(parts[1]), nil
}
