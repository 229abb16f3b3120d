package middlewares

import (
	"log/slog"

	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

// RequireSession rejects unauthenticated requests.
func RequireSession() shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			if !shared.HasSession(ctx) {
				return echo.NewHTTPError(401, "no session")
			}
			return next(ctx)
		}
	}
}

// AccessControlMiddleware asks the enforcer whether the role of the viewer
// may perform act on obj.
func AccessControlMiddleware(enforcer shared.Enforcer) shared.RBACMiddleware {
	return func(obj shared.Object, act shared.Action) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx shared.Context) error {
				viewer := shared.GetViewer(ctx)

				allowed, err := enforcer.Enforce(viewer.Role, obj, act)
				if err != nil {
					return echo.NewHTTPError(500, "could not determine if the user has access").WithInternal(err)
				}
				if !allowed {
					slog.Warn("access denied", "user", viewer.UserID, "role", viewer.Role, "object", obj, "action", act)
					return echo.NewHTTPError(403, "you are not allowed to do this")
				}
				return next(ctx)
			}
		}
	}
}
