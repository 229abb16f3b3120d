// Copyright (C) 2026 l3montree GmbH
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

package shared

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/dtos"
)

func GetSession(ctx Context) AuthSession {
	return ctx.Get("session").(AuthSession)
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

func HasSession(ctx Context) bool {
	session, ok := ctx.Get("session").(AuthSession)
	return ok && session.GetUserID() != ""
}

func SetViewer(ctx Context, viewer Viewer) {
	ctx.Set("viewer", viewer)
}

// GetViewer returns the viewer set by the viewer middleware. Requests
// without a profile get a viewer without a role.
func GetViewer(ctx Context) Viewer {
	viewer, ok := ctx.Get("viewer").(Viewer)
	if !ok {
		return Viewer{}
	}
	return viewer
}

func GetApplicationID(ctx Context) (uuid.UUID, error) {
	applicationID := ctx.Param("applicationID")
	if applicationID == "" {
		return uuid.Nil, fmt.Errorf("could not get application id")
	}
	return uuid.Parse(applicationID)
}

func GetUserID(ctx Context) (uuid.UUID, error) {
	userID := ctx.Param("userID")
	if userID == "" {
		return uuid.Nil, fmt.Errorf("could not get user id")
	}
	return uuid.Parse(userID)
}

// GetStatusFilter parses the optional status query parameter.
// An empty value means no filter.
func GetStatusFilter(ctx Context) (dtos.ApplicationStatus, error) {
	status := dtos.ApplicationStatus(ctx.QueryParam("status"))
	if status == "" || status == "all" {
		return "", nil
	}
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status filter %q", status)
	}
	return status, nil
}
