// Copyright (C) 2023 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/auth"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

func getCookie(name string, cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func cookieAuth(ctx context.Context, oryAPIClient shared.AdminClient, oryKratosSessionCookie string) (shared.AuthSession, error) {
	// check if we have a session
	unescaped, err := url.QueryUnescape(oryKratosSessionCookie)
	if err != nil {
		return nil, err
	}

	identity, err := oryAPIClient.GetIdentityFromCookie(ctx, unescaped)
	if err != nil {
		return nil, err
	}

	email, name := auth.IdentityTraits(identity)
	return accesscontrol.NewSession(identity.Id, email, name), nil
}

// SessionMiddleware resolves the kratos session cookie. Requests without a
// valid cookie continue with NoSession.
func SessionMiddleware(oryAPIClient shared.AdminClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			oryKratosSessionCookie := getCookie("ory_kratos_session", ctx.Cookies())
			if oryKratosSessionCookie == nil {
				shared.SetSession(ctx, accesscontrol.NoSession)
				return next(ctx)
			}

			session, err := cookieAuth(ctx.Request().Context(), oryAPIClient, oryKratosSessionCookie.String())
			if err != nil {
				slog.Warn("could not get user ID from cookie", "err", err)
				shared.SetSession(ctx, accesscontrol.NoSession)
				return next(ctx)
			}
			shared.SetSession(ctx, session)
			return next(ctx)
		}
	}
}

// ViewerMiddleware loads the profile of the session user and sets the
// viewer. Users without a profile get a viewer without a role.
func ViewerMiddleware(userService shared.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !shared.HasSession(ctx) {
				return next(ctx)
			}
			session := shared.GetSession(ctx)
			userID, err := uuid.Parse(session.GetUserID())
			if err != nil {
				return echo.NewHTTPError(401, "invalid identity").WithInternal(err)
			}

			viewer := shared.Viewer{UserID: userID, Name: session.GetName()}
			user, err := userService.ReadProfile(ctx.Request().Context(), userID)
			switch {
			case err == nil:
				viewer.Role = user.Role
				if user.DisplayName != "" {
					viewer.Name = user.DisplayName
				}
			case errors.Is(err, shared.ErrNotFound):
				// the profile is created on first login
			default:
				return echo.NewHTTPError(503, "could not load profile").WithInternal(err)
			}

			shared.SetViewer(ctx, viewer)
			return next(ctx)
		}
	}
}
