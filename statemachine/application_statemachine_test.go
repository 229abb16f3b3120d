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

package statemachine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/mocks"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) shared.AccessGuard {
	enforcer, err := accesscontrol.NewCasbinEnforcer()
	require.NoError(t, err)
	return accesscontrol.NewRoleAccessGuard(enforcer)
}

func TestCanTransition(t *testing.T) {
	allowed := map[dtos.Transition]bool{
		{From: dtos.StatusPending, To: dtos.StatusInReview}:  true,
		{From: dtos.StatusPending, To: dtos.StatusAccepted}:  true,
		{From: dtos.StatusPending, To: dtos.StatusRejected}:  true,
		{From: dtos.StatusInReview, To: dtos.StatusAccepted}: true,
		{From: dtos.StatusInReview, To: dtos.StatusRejected}: true,
	}

	for _, from := range dtos.AllStatuses {
		for _, to := range dtos.AllStatuses {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, allowed[dtos.Transition{From: from, To: to}], statemachine.CanTransition(from, to))
			})
		}
	}

	t.Run("terminal states have no outgoing edges", func(t *testing.T) {
		for _, edge := range statemachine.Edges() {
			assert.False(t, edge.From.IsTerminal())
			assert.NotEqual(t, dtos.StatusPending, edge.To)
		}
	})

	t.Run("reachable matches the edges", func(t *testing.T) {
		assert.ElementsMatch(t, []dtos.ApplicationStatus{dtos.StatusInReview, dtos.StatusAccepted, dtos.StatusRejected}, statemachine.Reachable(dtos.StatusPending))
		assert.ElementsMatch(t, []dtos.ApplicationStatus{dtos.StatusAccepted, dtos.StatusRejected}, statemachine.Reachable(dtos.StatusInReview))
		assert.Empty(t, statemachine.Reachable(dtos.StatusAccepted))
		assert.Empty(t, statemachine.Reachable("unknown"))
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("should write the new status conditionally and update the application", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusPending}

		repo.On("Update", mock.Anything, app.ID, mock.MatchedBy(func(partial map[string]any) bool {
			return partial["status"] == dtos.StatusInReview && partial["updated_at"] != nil
		}), shared.Eq("status", dtos.StatusPending)).Return(nil)

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		status, err := sm.Apply(ctx, &app, dtos.StatusInReview, dtos.RoleReviewer)
		require.NoError(t, err)
		assert.Equal(t, dtos.StatusInReview, status)
		assert.Equal(t, dtos.StatusInReview, app.Status)
	})

	t.Run("should reject edges outside of the graph before looking at the role", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusAccepted}

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		status, err := sm.Apply(ctx, &app, dtos.StatusPending, dtos.RoleApplicant)
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
		assert.Equal(t, dtos.StatusAccepted, status)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("should forbid applicants to move their application", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusPending}

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		_, err := sm.Apply(ctx, &app, dtos.StatusAccepted, dtos.RoleApplicant)
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		assert.Equal(t, dtos.StatusPending, app.Status)
	})

	t.Run("should report a concurrent change as invalid transition", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusInReview}

		repo.On("Update", mock.Anything, app.ID, mock.Anything, shared.Eq("status", dtos.StatusInReview)).Return(shared.ErrNotFound)
		repo.On("Read", mock.Anything, app.ID).Return(models.Application{Model: app.Model, Status: dtos.StatusAccepted}, nil)

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		status, err := sm.Apply(ctx, &app, dtos.StatusRejected, dtos.RoleAdmin)
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
		assert.Equal(t, dtos.StatusAccepted, status)
		// the caller still holds what it read
		assert.Equal(t, dtos.StatusInReview, app.Status)
	})

	t.Run("should return ErrNotFound if the application is gone", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusPending}

		repo.On("Update", mock.Anything, app.ID, mock.Anything, mock.Anything).Return(shared.ErrNotFound)
		repo.On("Read", mock.Anything, app.ID).Return(models.Application{}, shared.ErrNotFound)

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		_, err := sm.Apply(ctx, &app, dtos.StatusRejected, dtos.RoleAdmin)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("should pass store errors through and keep the status", func(t *testing.T) {
		repo := mocks.NewApplicationRepository(t)
		app := models.Application{Model: models.Model{ID: uuid.New()}, Status: dtos.StatusPending}

		repo.On("Update", mock.Anything, app.ID, mock.Anything, mock.Anything).Return(fmt.Errorf("%w: connection refused", shared.ErrStoreUnavailable))

		sm := statemachine.NewApplicationStateMachine(repo, newGuard(t))
		status, err := sm.Apply(ctx, &app, dtos.StatusAccepted, dtos.RoleReviewer)
		assert.True(t, errors.Is(err, shared.ErrStoreUnavailable))
		assert.Equal(t, dtos.StatusPending, status)
		assert.Equal(t, dtos.StatusPending, app.Status)
	})
}
