package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/api/metrics"
	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

// Denial messages kept distinct per role so clients see why they were
// rejected without leaking anything about other accounts.
var roleDenied = map[string]string{
	domain.RoleAdmin:  "Access denied, you're not an admin",
	domain.RoleBroker: "Access denied, you have to be a broker to read this",
}

// RequireRole enforces that the authenticated identity currently holds the
// given role. The check runs against the live identity store scoped to the
// role's user set, not against the token's embedded claim, so a role
// revocation takes effect on the next call even while the claim is stale.
// Must be registered after RequireAuth.
func RequireRole(store ports.IdentityStore, role string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(CtxIdentity).(string)
			if identity == "" {
				return deny(c, log, "missing authentication claims")
			}

			user, err := store.FindByEmail(c.Request().Context(), identity, domain.RoleSet(role)...)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					return err // store fault, not a denial
				}
				metrics.GuardDenialsTotal.WithLabelValues("insufficient role").Inc()
				log.Debug().
					Str("identity", identity).
					Str("required_role", role).
					Str("path", c.Path()).
					Msg("role check failed")

				msg := roleDenied[role]
				if msg == "" {
					msg = "Access denied"
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			// Request-scoped cache: handlers on this request can reuse the
			// resolved user instead of hitting the store again.
			c.Set(ctxUserKey, user)

			return next(c)
		}
	}
}

// UserFromContext returns the user resolved by RequireRole, if any.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ctxUserKey).(*domain.User)
	return user, ok
}
