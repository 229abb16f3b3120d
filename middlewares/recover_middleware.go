package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/labstack/echo/v4"
)

func recovermiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					stack := make([]byte, 4<<10) // 4 KB
					length := runtime.Stack(stack, false)
					slog.Error("recovered from panic", "err", err, "path", ctx.Request().URL.Path, "stack", string(stack[:length]))
					monitoring.RecoverAndAlert("panic while handling request", err)

					returnErr = echo.NewHTTPError(http.StatusInternalServerError, "internal server error").WithInternal(err)
				}
			}()
			return next(ctx)
		}
	}
}
