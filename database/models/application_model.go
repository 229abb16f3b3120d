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

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/dtos"
)

type Application struct {
	Model
	ApplicantID    uuid.UUID              `json:"applicantId" gorm:"type:uuid;not null;index"`
	Status         dtos.ApplicationStatus `json:"status" gorm:"type:text;not null;default:'pending';index"`
	PersonalInfo   dtos.PersonalInfo      `json:"personalInfo" gorm:"type:jsonb;serializer:json"`
	ProjectDetails dtos.ProjectDetails    `json:"projectDetails" gorm:"type:jsonb;serializer:json"`
	FileURLs       []string               `json:"fileUrls" gorm:"column:file_urls;type:jsonb;serializer:json"`
}

func (Application) TableName() string {
	return "applications"
}
