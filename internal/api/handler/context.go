package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/questionsapp/questions-api/internal/api/middleware"
)

// ctxIdentity returns the authenticated identity injected by RequireAuth,
// or "" when the route is unguarded and no token was presented.
func ctxIdentity(c echo.Context) string {
	identity, _ := c.Get(middleware.CtxIdentity).(string)
	return identity
}

// bearerFromHeader extracts a bearer token from the Authorization header
// without verifying it. Used by the refresh endpoint, which performs its own
// decode with refresh-kind expectations.
func bearerFromHeader(c echo.Context) (token, failReason string) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing authorization header"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "invalid authorization header"
	}
	return parts[1], ""
}
