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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleReviewer  Role = "reviewer"
	RoleAdmin     Role = "admin"
)

var AllRoles = []Role{RoleApplicant, RoleReviewer, RoleAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserProfileCreateRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"name"`
}

type UserRoleUpdateRequest struct {
	Role Role `json:"role" validate:"required,oneof=applicant reviewer admin"`
}
