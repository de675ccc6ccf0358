package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bloglane/blog-api/internal/api/middleware"
	"github.com/bloglane/blog-api/internal/core/domain"
)

// ctxUserID returns the user id placed in the context by the Auth middleware.
// An empty id means the route was mounted without the middleware.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", domain.ErrMissingToken
	}
	return id, nil
}

// bindError reports an undecodable request body in the errors envelope.
func bindError() error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Msg: "Invalid request payload"}}}
}
