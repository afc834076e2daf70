package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/api/metrics"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

// Context keys set by the guards for downstream handlers.
const (
	CtxIdentity = "identity"
	CtxRole     = "role"
	ctxUserKey  = "auth_user"
)

// RequireAuth validates the bearer access token and injects the identity and
// the token's role claim into the request context. Every verification failure
// surfaces as the same 401; the precise reason is only logged.
func RequireAuth(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, reason := bearerToken(c)
			if reason != "" {
				return deny(c, log, reason)
			}

			payload, err := codec.Decode(raw, ports.TokenKindAccess)
			if err != nil {
				return deny(c, log, err.Error())
			}

			c.Set(CtxIdentity, payload.Identity)
			c.Set(CtxRole, payload.Role)

			return next(c)
		}
	}
}

// OptionalAuth decodes the bearer access token when one is presented and
// injects the identity, but lets anonymous requests through untouched. A
// token that is present but invalid is treated as anonymous, not rejected.
func OptionalAuth(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, reason := bearerToken(c)
			if reason == "" {
				if payload, err := codec.Decode(raw, ports.TokenKindAccess); err == nil {
					c.Set(CtxIdentity, payload.Identity)
					c.Set(CtxRole, payload.Role)
				} else {
					log.Debug().Err(err).Str("path", c.Path()).Msg("ignoring invalid token on open route")
				}
			}
			return next(c)
		}
	}
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c echo.Context) (token, failReason string) {
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

func deny(c echo.Context, log zerolog.Logger, reason string) error {
	metrics.GuardDenialsTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Str("reason", reason).
		Str("path", c.Path()).
		Msg("request rejected by access guard")
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
}
