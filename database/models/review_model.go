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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is immutable once written, so it carries no UpdatedAt.
type Review struct {
	ID            uuid.UUID `json:"id" gorm:"primarykey;type:uuid"`
	ApplicationID uuid.UUID `json:"applicationId" gorm:"type:uuid;not null;index"`
	ReviewerID    uuid.UUID `json:"reviewerId" gorm:"type:uuid;not null"`
	ReviewerName  string    `json:"reviewerName" gorm:"type:text"`
	Score         int       `json:"score" gorm:"not null"`
	Comments      string    `json:"comments" gorm:"type:text"`
	PrivateNotes  string    `json:"privateNotes" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) GetID() uuid.UUID {
	return r.ID
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
