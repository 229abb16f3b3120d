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
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	pkgerrors "github.com/pkg/errors"
)

type userService struct {
	userRepository shared.UserRepository
	guard          shared.AccessGuard
}

func NewUserService(userRepository shared.UserRepository, guard shared.AccessGuard) *userService {
	return &userService{
		userRepository: userRepository,
		guard:          guard,
	}
}

func (s *userService) ReadProfile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.userRepository.Read(ctx, userID)
}

// EnsureProfile returns the profile of userID and creates it with the
// applicant role on first login.
func (s *userService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string, displayName string) (models.User, error) {
	user, err := s.userRepository.Read(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return models.User{}, err
	}

	user = models.User{
		Model:       models.Model{ID: userID},
		Email:       email,
		DisplayName: displayName,
		Role:        dtos.RoleApplicant,
	}
	if err := s.userRepository.Create(ctx, &user); err != nil {
		// a parallel first request might have created it already
		if existing, readErr := s.userRepository.Read(ctx, userID); readErr == nil {
			return existing, nil
		}
		return models.User{}, pkgerrors.Wrap(err, "could not create profile")
	}
	slog.Info("created profile on first login", "userID", userID)
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepository.Query(ctx, shared.Query{OrderBy: shared.NewestFirst()})
}

func (s *userService) ChangeRole(ctx context.Context, actor shared.Viewer, userID uuid.UUID, role dtos.Role) (models.User, error) {
	if !s.guard.CanReassignRole(actor.Role) {
		return models.User{}, pkgerrors.Wrapf(shared.ErrForbidden, "role %q may not reassign roles", actor.Role)
	}
	if !role.IsValid() {
		return models.User{}, pkgerrors.Wrapf(shared.ErrInvalidRole, "%q", role)
	}

	if err := s.userRepository.Update(ctx, userID, map[string]any{"role": role}); err != nil {
		return models.User{}, err
	}
	monitoring.RoleChanges.WithLabelValues(string(role)).Inc()
	slog.Info("role changed", "userID", userID, "role", role, "by", actor.UserID)

	return s.userRepository.Read(ctx, userID)
}
