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

package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/pkg/errors"
)

// MaxReviewsPerApplication caps the reviews returned for one application.
const MaxReviewsPerApplication = 500

type reviewService struct {
	reviewRepository      shared.ReviewRepository
	applicationRepository shared.ApplicationRepository
	stateMachine          shared.StatusStateMachine
	guard                 shared.AccessGuard
}

func NewReviewService(reviewRepository shared.ReviewRepository, applicationRepository shared.ApplicationRepository, stateMachine shared.StatusStateMachine, guard shared.AccessGuard) *reviewService {
	return &reviewService{
		reviewRepository:      reviewRepository,
		applicationRepository: applicationRepository,
		stateMachine:          stateMachine,
		guard:                 guard,
	}
}

// readVisible reads the application once and hides it from viewers
// outside its scope.
func (s *reviewService) readVisible(ctx context.Context, viewer shared.Viewer, applicationID uuid.UUID) (models.Application, error) {
	application, err := s.applicationRepository.Read(ctx, applicationID)
	if err != nil {
		return models.Application{}, errors.Wrap(err, "could not read application")
	}
	if !s.guard.ApplicationScope(viewer).Visible(application) {
		return models.Application{}, errors.Wrapf(shared.ErrNotFound, "application %s", applicationID)
	}
	return application, nil
}

// Submit records a review and moves a pending application into review.
// The review is authoritative: if the status move fails the review stays
// and its id is returned. Applications outside the reviewer's scope are
// reported as not found.
func (s *reviewService) Submit(ctx context.Context, submission dtos.ReviewSubmission) (uuid.UUID, error) {
	if submission.Score < dtos.MinReviewScore || submission.Score > dtos.MaxReviewScore {
		return uuid.Nil, errors.Wrapf(shared.ErrInvalidScore, "score %d is not within [%d,%d]", submission.Score, dtos.MinReviewScore, dtos.MaxReviewScore)
	}

	application, err := s.readVisible(ctx, shared.Viewer{UserID: submission.ReviewerID, Role: submission.ReviewerRole, Name: submission.ReviewerName}, submission.ApplicationID)
	if err != nil {
		return uuid.Nil, err
	}

	review := models.Review{
		ApplicationID: submission.ApplicationID,
		ReviewerID:    submission.ReviewerID,
		ReviewerName:  submission.ReviewerName,
		Score:         submission.Score,
		Comments:      submission.Comments,
		PrivateNotes:  submission.PrivateNotes,
	}
	if err := s.reviewRepository.Create(ctx, &review); err != nil {
		return uuid.Nil, errors.Wrap(err, "could not create review")
	}
	monitoring.ReviewsSubmitted.Inc()

	if application.Status == dtos.StatusPending {
		// the guard grants reviewers pending -> in-review, admins reviewing go the same way
		if _, err := s.stateMachine.Apply(ctx, &application, dtos.StatusInReview, dtos.RoleReviewer); err != nil {
			slog.Warn("review stored but application could not be moved to in-review", "applicationID", application.ID, "reviewID", review.ID, "err", err)
		}
	}

	return review.ID, nil
}

// ListFor returns the reviews of an application the viewer can see,
// newest first.
func (s *reviewService) ListFor(ctx context.Context, viewer shared.Viewer, applicationID uuid.UUID) ([]models.Review, error) {
	if _, err := s.readVisible(ctx, viewer, applicationID); err != nil {
		return nil, err
	}

	return s.reviewRepository.Query(ctx, shared.Query{
		Predicates: []shared.Predicate{shared.Eq("application_id", applicationID)},
		OrderBy:    shared.NewestFirst(),
		Limit:      MaxReviewsPerApplication,
	})
}
