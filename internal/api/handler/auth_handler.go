package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglane/blog-api/internal/api/metrics"
	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Registration  true  "User registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	token, err := h.authService.Register(c.Request().Context(), req)
	observeAuth("register", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorEnvelope
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	token, err := h.authService.Login(c.Request().Context(), req)
	observeAuth("login", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Disable marks the caller's account disabled.
//
// @Summary      Disable own account
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  msgResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /disable [put]
func (h *AuthHandler) Disable(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	err = h.authService.Disable(c.Request().Context(), userID)
	observeAuth("disable", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Account Disabled"})
}

// Enable re-enables the caller's account.
//
// @Summary      Enable own account
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  msgResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /enable [put]
func (h *AuthHandler) Enable(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	err = h.authService.Enable(c.Request().Context(), userID)
	observeAuth("enable", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Account enabled"})
}

// IsUser reports whether the token's user still exists.
//
// @Summary      Check identity
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  msgResponse
// @Failure      401  {object}  errorEnvelope
// @Router       /isuser [get]
func (h *AuthHandler) IsUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	found, err := h.authService.CheckIdentity(c.Request().Context(), userID)
	observeAuth("isuser", err)
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusOK, msgResponse{Msg: "Account not found"})
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Account found"})
}

var clientErrors = []error{
	domain.ErrDuplicateEmail,
	domain.ErrInvalidCredentials,
	domain.ErrUserNotFound,
}

func observeAuth(operation string, err error) {
	metrics.AuthRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "rejected"
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return "rejected"
		}
	}
	return "error"
}
