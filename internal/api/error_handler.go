package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

func single(msg string) []domain.FieldError {
	return []domain.FieldError{{Msg: msg}}
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"errors":[{"msg":"...","param":"..."}]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, fields := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Errors: fields})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []domain.FieldError) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Fields
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		if ae.Kind == domain.AuthExpired {
			return http.StatusUnauthorized, single("Token has expired")
		}
		return http.StatusUnauthorized, single("Token is not valid")
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, single("No token, authorization denied")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, single("User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, single("Invalid email or password")
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, single("Account not found")
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, single("Post not found")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, single("User not authorized")
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, single("Account is disabled")
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusBadRequest, single("Post already liked")
	case errors.Is(err, domain.ErrNotLiked):
		return http.StatusBadRequest, single("Post has not yet been liked")
	}

	// Echo's own errors (router 404/405, body limits, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, single(fmt.Sprintf("%v", he.Message))
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, single("Server Error")
}
