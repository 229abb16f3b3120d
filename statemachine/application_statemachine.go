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

package statemachine

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	pkgerrors "github.com/pkg/errors"
)

// transitions is the complete lifecycle graph. accepted and rejected are
// terminal, nothing leads back to pending.
var transitions = map[dtos.ApplicationStatus][]dtos.ApplicationStatus{
	dtos.StatusPending:  {dtos.StatusInReview, dtos.StatusAccepted, dtos.StatusRejected},
	dtos.StatusInReview: {dtos.StatusAccepted, dtos.StatusRejected},
	dtos.StatusAccepted: {},
	dtos.StatusRejected: {},
}

func CanTransition(from, to dtos.ApplicationStatus) bool {
	return slices.Contains(transitions[from], to)
}

// Reachable returns the statuses a single transition can lead to from from.
func Reachable(from dtos.ApplicationStatus) []dtos.ApplicationStatus {
	return slices.Clone(transitions[from])
}

// Edges lists every edge of the lifecycle graph in a stable order.
func Edges() []dtos.Transition {
	edges := make([]dtos.Transition, 0)
	for _, from := range dtos.AllStatuses {
		for _, to := range transitions[from] {
			edges = append(edges, dtos.Transition{From: from, To: to})
		}
	}
	return edges
}

type ApplicationStateMachine struct {
	applicationRepository shared.ApplicationRepository
	guard                 shared.AccessGuard
}

func NewApplicationStateMachine(applicationRepository shared.ApplicationRepository, guard shared.AccessGuard) *ApplicationStateMachine {
	return &ApplicationStateMachine{
		applicationRepository: applicationRepository,
		guard:                 guard,
	}
}

// Apply checks the edge first and the role second, then writes the new
// status only if the stored status still equals application.Status.
// application is updated after the store confirmed the write.
func (s *ApplicationStateMachine) Apply(ctx context.Context, application *models.Application, target dtos.ApplicationStatus, actingRole dtos.Role) (dtos.ApplicationStatus, error) {
	from := application.Status

	if !CanTransition(from, target) {
		monitoring.StatusTransitionsRejected.WithLabelValues("invalid").Inc()
		return from, pkgerrors.Wrapf(shared.ErrInvalidTransition, "cannot move application from %s to %s", from, target)
	}

	if actingRole == dtos.RoleApplicant || !s.guard.CanTransition(actingRole, from, target) {
		monitoring.StatusTransitionsRejected.WithLabelValues("forbidden").Inc()
		return from, pkgerrors.Wrapf(shared.ErrForbidden, "role %q may not move an application from %s to %s", actingRole, from, target)
	}

	now := time.Now()
	err := s.applicationRepository.Update(ctx, application.ID, map[string]any{
		"status":     target,
		"updated_at": now,
	}, shared.Eq("status", from))
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return from, err
		}
		// either the application is gone or someone else moved it first
		current, readErr := s.applicationRepository.Read(ctx, application.ID)
		if readErr != nil {
			return from, readErr
		}
		monitoring.StatusTransitionsRejected.WithLabelValues("concurrent").Inc()
		slog.Warn("status changed concurrently", "applicationID", application.ID, "expected", from, "actual", current.Status, "target", target)
		return current.Status, pkgerrors.Wrapf(shared.ErrInvalidTransition, "status changed concurrently from %s to %s", from, current.Status)
	}

	monitoring.StatusTransitions.WithLabelValues(string(from), string(target)).Inc()
	application.Status = target
	application.UpdatedAt = now
	return target, nil
}
