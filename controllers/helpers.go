package controllers

import (
	"context"
	"errors"

	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

// httpError maps the workflow errors to status codes. The internal error is
// kept for the error handler.
func httpError(err error, message string) *echo.HTTPError {
	switch {
	case errors.Is(err, shared.ErrInvalidTransition),
		errors.Is(err, shared.ErrInvalidScore),
		errors.Is(err, shared.ErrInvalidRole):
		return echo.NewHTTPError(400, message+": "+err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrForbidden):
		return echo.NewHTTPError(403, message).WithInternal(err)
	case errors.Is(err, shared.ErrNotFound):
		return echo.NewHTTPError(404, message).WithInternal(err)
	case errors.Is(err, shared.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(503, message).WithInternal(err)
	}
	return echo.NewHTTPError(500, message).WithInternal(err)
}
