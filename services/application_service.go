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
	"slices"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/utils"
	"github.com/pkg/errors"
)

type applicationService struct {
	applicationRepository shared.ApplicationRepository
	stateMachine          shared.StatusStateMachine
	guard                 shared.AccessGuard
}

func NewApplicationService(applicationRepository shared.ApplicationRepository, stateMachine shared.StatusStateMachine, guard shared.AccessGuard) *applicationService {
	return &applicationService{
		applicationRepository: applicationRepository,
		stateMachine:          stateMachine,
		guard:                 guard,
	}
}

// Create submits a new application of the viewer. It always starts pending.
func (s *applicationService) Create(ctx context.Context, viewer shared.Viewer, req dtos.ApplicationCreateRequest) (models.Application, error) {
	if !s.guard.IsAllowed(viewer.Role, shared.ObjectApplication, shared.ActionCreate) {
		return models.Application{}, errors.Wrapf(shared.ErrForbidden, "role %q may not submit applications", viewer.Role)
	}

	fileURLs := req.FileURLs
	if fileURLs == nil {
		fileURLs = []string{}
	}

	application := models.Application{
		ApplicantID:    viewer.UserID,
		Status:         dtos.StatusPending,
		PersonalInfo:   req.PersonalInfo,
		ProjectDetails: req.ProjectDetails,
		FileURLs:       fileURLs,
	}
	if err := s.applicationRepository.Create(ctx, &application); err != nil {
		return models.Application{}, errors.Wrap(err, "could not create application")
	}
	monitoring.ApplicationsCreated.Inc()
	return application, nil
}

// Read returns the application if the viewer may see it. Applications out
// of scope are reported as not found.
func (s *applicationService) Read(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (models.Application, error) {
	application, err := s.applicationRepository.Read(ctx, id)
	if err != nil {
		return models.Application{}, err
	}
	if !s.guard.ApplicationScope(viewer).Visible(application) {
		return models.Application{}, errors.Wrapf(shared.ErrNotFound, "application %s", id)
	}
	return application, nil
}

func (s *applicationService) List(ctx context.Context, viewer shared.Viewer, statusFilter dtos.ApplicationStatus) ([]models.Application, error) {
	scope := s.guard.ApplicationScope(viewer)
	applications, err := s.applicationRepository.Query(ctx, shared.Query{
		Predicates: scope.Predicates,
		OrderBy:    shared.NewestFirst(),
	})
	if err != nil {
		return nil, err
	}
	return visibleApplications(applications, scope, statusFilter), nil
}

func (s *applicationService) ChangeStatus(ctx context.Context, viewer shared.Viewer, id uuid.UUID, target dtos.ApplicationStatus) (dtos.ApplicationStatus, error) {
	application, err := s.Read(ctx, viewer, id)
	if err != nil {
		return "", err
	}
	return s.stateMachine.Apply(ctx, &application, target, viewer.Role)
}

// visibleApplications applies the client side part of the scope and the
// optional status filter, newest first.
func visibleApplications(applications []models.Application, scope shared.ApplicationScope, statusFilter dtos.ApplicationStatus) []models.Application {
	visible := utils.Filter(applications, func(a models.Application) bool {
		return scope.Visible(a) && (statusFilter == "" || a.Status == statusFilter)
	})
	slices.SortStableFunc(visible, func(a, b models.Application) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return visible
}
