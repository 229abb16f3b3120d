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

const (
	MinReviewScore = 1
	MaxReviewScore = 10
)

// ReviewSubmission carries everything needed to record a review.
// The reviewer fields are taken from the session, never from the request body.
type ReviewSubmission struct {
	ApplicationID uuid.UUID
	ReviewerID    uuid.UUID
	ReviewerName  string
	ReviewerRole  Role
	Score         int
	Comments      string
	PrivateNotes  string
}

type ReviewCreateRequest struct {
	Score        int    `json:"score" validate:"min=1,max=10"`
	Comments     string `json:"comments"`
	PrivateNotes string `json:"privateNotes"`
}

type ReviewDTO struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	ReviewerID    uuid.UUID `json:"reviewerId"`
	ReviewerName  string    `json:"reviewerName"`
	Score         int       `json:"score"`
	Comments      string    `json:"comments"`
	PrivateNotes  string    `json:"privateNotes"`
	CreatedAt     time.Time `json:"createdAt"`
}
