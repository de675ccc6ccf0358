package handler

import (
	"github.com/bloglane/blog-api/internal/pkg/validate"
)

// echoValidator lets handlers call c.Validate(req) with the shared rules.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return validate.Struct(i)
}
