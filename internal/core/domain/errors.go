package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post has not yet been liked")
	ErrMissingToken       = errors.New("missing authentication token")

	// ErrStoreUnavailable wraps every persistence failure that is not a
	// domain outcome (timeouts, connection loss, driver errors).
	ErrStoreUnavailable = errors.New("store unavailable")
)

// FieldError is a single rejected input field.
type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Param+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AuthErrorKind classifies why a token was rejected.
type AuthErrorKind string

const (
	AuthMalformed        AuthErrorKind = "malformed"
	AuthInvalidSignature AuthErrorKind = "invalid_signature"
	AuthExpired          AuthErrorKind = "expired"
)

// AuthError is returned by token verification.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "token " + string(e.Kind)
	}
	return "token " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthErrorKind reports whether err is an *AuthError of the given kind.
func IsAuthErrorKind(err error, kind AuthErrorKind) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Kind == kind
}
