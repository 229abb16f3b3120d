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

package models

import "github.com/l3montree-dev/reviewboard/dtos"

// User is the profile of an identity. The id equals the identity id
// issued by the identity provider.
type User struct {
	Model
	Email       string    `json:"email" gorm:"type:text"`
	DisplayName string    `json:"displayName" gorm:"type:text"`
	Role        dtos.Role `json:"role" gorm:"type:text;not null;default:'applicant'"`
}

func (User) TableName() string {
	return "users"
}
