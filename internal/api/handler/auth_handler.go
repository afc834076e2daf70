package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register creates a new user account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  credentialsResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	bundle, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Error()})
		case errors.Is(err, domain.ErrEmailExists):
			return c.JSON(http.StatusConflict, messageResponse{Message: "email exists"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toCredentialsResponse(bundle))
}

// Login authenticates a user and returns a fresh credential bundle.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  credentialsResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	bundle, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid credentials"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, messageResponse{Message: "too many failed attempts, try again later"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toCredentialsResponse(bundle))
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token travels in the Authorization header, bearer-style.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  messageResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, failReason := bearerFromHeader(c)
	if failReason != "" {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: failReason})
	}

	access, err := h.sessions.Refresh(c.Request().Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken),
			errors.Is(err, domain.ErrTokenExpired),
			errors.Is(err, domain.ErrWrongTokenKind):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid refresh token"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid user"})
		}
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

func toCredentialsResponse(b *ports.CredentialBundle) credentialsResponse {
	return credentialsResponse{
		AccessToken:  b.AccessToken,
		RefreshToken: b.RefreshToken,
		Email:        b.Email,
		Name:         b.Name,
		Role:         b.Role,
	}
}
