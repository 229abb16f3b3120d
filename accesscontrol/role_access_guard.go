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

package accesscontrol

import (
	"slices"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"github.com/l3montree-dev/reviewboard/utils"
)

type rolePermissions struct {
	views         []shared.View
	permissions   []shared.Permission
	transitions   []dtos.Transition
	reassignRoles bool
	scope         func(viewer shared.Viewer) shared.ApplicationScope
}

var reviewQueue = []dtos.ApplicationStatus{dtos.StatusPending, dtos.StatusInReview}

// edgesInto returns every lifecycle edge ending in one of targets.
func edgesInto(targets ...dtos.ApplicationStatus) []dtos.Transition {
	return utils.Filter(statemachine.Edges(), func(t dtos.Transition) bool {
		return slices.Contains(targets, t.To)
	})
}

// roles is the single source of truth for what every role may see and do.
var roles = map[dtos.Role]rolePermissions{
	dtos.RoleApplicant: {
		views: []shared.View{shared.ViewOwnApplications, shared.ViewStatistics},
		permissions: []shared.Permission{
			{Object: shared.ObjectApplication, Action: shared.ActionCreate},
			{Object: shared.ObjectApplication, Action: shared.ActionRead},
			{Object: shared.ObjectFile, Action: shared.ActionCreate},
			{Object: shared.ObjectStatistics, Action: shared.ActionRead},
		},
		transitions: nil,
		scope: func(viewer shared.Viewer) shared.ApplicationScope {
			return shared.ApplicationScope{
				Predicates: []shared.Predicate{shared.Eq("applicant_id", viewer.UserID)},
				Visible: func(application models.Application) bool {
					return application.ApplicantID == viewer.UserID
				},
			}
		},
	},
	dtos.RoleReviewer: {
		views: []shared.View{shared.ViewReviewQueue, shared.ViewReviews, shared.ViewStatistics},
		permissions: []shared.Permission{
			{Object: shared.ObjectApplication, Action: shared.ActionRead},
			{Object: shared.ObjectApplication, Action: shared.ActionUpdate},
			{Object: shared.ObjectReview, Action: shared.ActionCreate},
			{Object: shared.ObjectReview, Action: shared.ActionRead},
			{Object: shared.ObjectStatistics, Action: shared.ActionRead},
		},
		transitions: append(
			[]dtos.Transition{{From: dtos.StatusPending, To: dtos.StatusInReview}},
			edgesInto(dtos.StatusAccepted, dtos.StatusRejected)...,
		),
		// reviewers read the whole collection, the queue is filtered client side
		scope: func(viewer shared.Viewer) shared.ApplicationScope {
			return shared.ApplicationScope{
				Visible: func(application models.Application) bool {
					return slices.Contains(reviewQueue, application.Status)
				},
			}
		},
	},
	dtos.RoleAdmin: {
		views: []shared.View{shared.ViewAllApplications, shared.ViewReviews, shared.ViewUsers, shared.ViewStatistics, shared.ViewExport},
		permissions: []shared.Permission{
			{Object: shared.ObjectApplication, Action: shared.ActionRead},
			{Object: shared.ObjectApplication, Action: shared.ActionUpdate},
			{Object: shared.ObjectReview, Action: shared.ActionRead},
			{Object: shared.ObjectUser, Action: shared.ActionRead},
			{Object: shared.ObjectUser, Action: shared.ActionUpdateRole},
			{Object: shared.ObjectStatistics, Action: shared.ActionRead},
			{Object: shared.ObjectExport, Action: shared.ActionRead},
		},
		transitions:   statemachine.Edges(),
		reassignRoles: true,
		scope: func(viewer shared.Viewer) shared.ApplicationScope {
			return shared.ApplicationScope{
				Visible: func(models.Application) bool { return true },
			}
		},
	},
}

// RoleAccessGuard answers what a role may see and do. Unknown roles may
// do nothing.
type RoleAccessGuard struct {
	enforcer shared.Enforcer
}

func NewRoleAccessGuard(enforcer shared.Enforcer) *RoleAccessGuard {
	return &RoleAccessGuard{enforcer: enforcer}
}

func (g *RoleAccessGuard) PermittedViews(role dtos.Role) []shared.View {
	return slices.Clone(roles[role].views)
}

func (g *RoleAccessGuard) PermittedTransitions(role dtos.Role) []dtos.Transition {
	return slices.Clone(roles[role].transitions)
}

func (g *RoleAccessGuard) CanTransition(role dtos.Role, from, to dtos.ApplicationStatus) bool {
	return slices.Contains(roles[role].transitions, dtos.Transition{From: from, To: to})
}

func (g *RoleAccessGuard) CanReassignRole(role dtos.Role) bool {
	return roles[role].reassignRoles
}

func (g *RoleAccessGuard) IsAllowed(role dtos.Role, object shared.Object, action shared.Action) bool {
	allowed, err := g.enforcer.Enforce(role, object, action)
	if err != nil {
		return false
	}
	return allowed
}

func (g *RoleAccessGuard) ApplicationScope(viewer shared.Viewer) shared.ApplicationScope {
	perms, ok := roles[viewer.Role]
	if !ok {
		return shared.ApplicationScope{
			Visible: func(models.Application) bool { return false },
		}
	}
	return perms.scope(viewer)
}
