package middlewares

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every finished request together with the viewer the
// session middleware resolved. Failed requests are logged at warn level
// with the status the error handler answers with.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			started := time.Now()
			err := next(ctx)

			path := ctx.Request().URL.Path
			if strings.HasPrefix(path, "/api/v1/health") {
				return err
			}

			attrs := []any{"method", ctx.Request().Method, "path", path, "status", responseStatus(ctx, err), "duration", time.Since(started)}
			// the viewer is set further down the chain, on the same context
			if viewer := shared.GetViewer(ctx); viewer.UserID != uuid.Nil {
				attrs = append(attrs, "userID", viewer.UserID, "role", viewer.Role)
			}
			if err != nil {
				log.Warn("request failed", append(attrs, "err", err)...)
				return err
			}
			log.Info("handled request", attrs...)
			return nil
		}
	}
}

func responseStatus(ctx echo.Context, err error) int {
	if err == nil {
		return ctx.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return 500
}
