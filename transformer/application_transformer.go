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

package transformer

import (
	"errors"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/utils"
)

func ApplicationModelToDTO(application models.Application) dtos.ApplicationDTO {
	fileURLs := application.FileURLs
	if fileURLs == nil {
		fileURLs = []string{}
	}
	return dtos.ApplicationDTO{
		ID:             application.ID,
		ApplicantID:    application.ApplicantID,
		Status:         application.Status,
		PersonalInfo:   application.PersonalInfo,
		ProjectDetails: application.ProjectDetails,
		FileURLs:       fileURLs,
		CreatedAt:      application.CreatedAt,
		UpdatedAt:      application.UpdatedAt,
	}
}

func ApplicationModelsToDTOs(applications []models.Application) []dtos.ApplicationDTO {
	return utils.Map(applications, ApplicationModelToDTO)
}

func ReviewModelToDTO(review models.Review) dtos.ReviewDTO {
	return dtos.ReviewDTO{
		ID:            review.ID,
		ApplicationID: review.ApplicationID,
		ReviewerID:    review.ReviewerID,
		ReviewerName:  review.ReviewerName,
		Score:         review.Score,
		Comments:      review.Comments,
		PrivateNotes:  review.PrivateNotes,
		CreatedAt:     review.CreatedAt,
	}
}

func UserModelToDTO(user models.User) dtos.UserDTO {
	return dtos.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

// FeedSnapshotToDTO turns a snapshot into its wire form. Errors are sent
// as a message only.
func FeedSnapshotToDTO(snapshot shared.FeedSnapshot) dtos.FeedSnapshotDTO {
	if errors.Is(snapshot.Err, shared.ErrSubscriptionEnded) {
		return dtos.FeedSnapshotDTO{
			Applications: []dtos.ApplicationDTO{},
			Error:        "live updates ended, please reconnect",
			Final:        true,
		}
	}
	if snapshot.Err != nil {
		return dtos.FeedSnapshotDTO{
			Applications: []dtos.ApplicationDTO{},
			Error:        "live updates are currently unavailable",
		}
	}
	return dtos.FeedSnapshotDTO{
		Applications: ApplicationModelsToDTOs(snapshot.Applications),
		Stats:        snapshot.Stats,
	}
}
