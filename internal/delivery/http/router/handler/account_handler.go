// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"authgate/internal/delivery/http/cookie"
	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// AccountHandler holds dependencies for credential handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	cookie *cookie.SessionCookie
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, sessionCookie *cookie.SessionCookie, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		cookie: sessionCookie,
		logger: logger,
	}
}

// Signup registers an account. The token travels only in the Set-Cookie header.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookie.Set(c, output.Token)

	return response.Success(c, http.StatusCreated, "User registered successfully", nil)
}

// Login authenticates with email and password and starts a new session.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookie.Set(c, output.Token)

	return response.Success(c, http.StatusOK, "Login successful", nil)
}

// Logout drops the session cookie. There is no server-side session to revoke.
func (h *AccountHandler) Logout(c echo.Context) error {
	h.cookie.Clear(c)

	return response.Success(c, http.StatusOK, "Logged out", nil)
}
