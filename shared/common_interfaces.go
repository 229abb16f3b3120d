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

package shared

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/labstack/echo/v4"
	client "github.com/ory/client-go"
)

type ApplicationRepository interface {
	Collection[models.Application]
}

type ReviewRepository interface {
	Collection[models.Review]
}

type UserRepository interface {
	Collection[models.User]
}

type StatusStateMachine interface {
	// Apply moves application to target on behalf of actingRole and returns
	// the resulting status. On error the returned status is the one the
	// store holds, as far as it is known.
	Apply(ctx context.Context, application *models.Application, target dtos.ApplicationStatus, actingRole dtos.Role) (dtos.ApplicationStatus, error)
}

type ReviewService interface {
	Submit(ctx context.Context, submission dtos.ReviewSubmission) (uuid.UUID, error)
	ListFor(ctx context.Context, viewer Viewer, applicationID uuid.UUID) ([]models.Review, error)
}

type ApplicationService interface {
	Create(ctx context.Context, viewer Viewer, req dtos.ApplicationCreateRequest) (models.Application, error)
	Read(ctx context.Context, viewer Viewer, id uuid.UUID) (models.Application, error)
	List(ctx context.Context, viewer Viewer, statusFilter dtos.ApplicationStatus) ([]models.Application, error)
	ChangeStatus(ctx context.Context, viewer Viewer, id uuid.UUID, target dtos.ApplicationStatus) (dtos.ApplicationStatus, error)
}

type StatisticsService interface {
	DashboardStats(ctx context.Context, viewer Viewer) (dtos.DashboardStats, error)
	UserStats(ctx context.Context) (dtos.UserStats, error)
}

type UserService interface {
	ReadProfile(ctx context.Context, userID uuid.UUID) (models.User, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string, displayName string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ChangeRole(ctx context.Context, actor Viewer, userID uuid.UUID, role dtos.Role) (models.User, error)
}

type ExportService interface {
	Export(ctx context.Context) (dtos.ExportDocument, error)
}

// FeedSnapshot is one live update of a dashboard. Either Err is set or
// Applications and Stats describe the current state.
type FeedSnapshot struct {
	Applications []models.Application
	Stats        dtos.DashboardStats
	Err          error
}

type FeedSubscription interface {
	// Snapshots is closed after Cancel and after the snapshot carrying
	// ErrSubscriptionEnded.
	Snapshots() <-chan FeedSnapshot
	Cancel()
}

type ApplicationFeed interface {
	Subscribe(ctx context.Context, viewer Viewer, statusFilter dtos.ApplicationStatus) (FeedSubscription, error)
}

type View string

const (
	ViewOwnApplications View = "own-applications"
	ViewReviewQueue     View = "review-queue"
	ViewAllApplications View = "all-applications"
	ViewReviews         View = "reviews"
	ViewUsers           View = "users"
	ViewStatistics      View = "statistics"
	ViewExport          View = "export"
)

type Object string

const (
	ObjectApplication Object = "application"
	ObjectReview      Object = "review"
	ObjectUser        Object = "user"
	ObjectStatistics  Object = "statistics"
	ObjectExport      Object = "export"
	ObjectFile        Object = "file"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionRead       Action = "read"
	ActionUpdate     Action = "update"
	ActionUpdateRole Action = "update-role"
)

type Permission struct {
	Object Object
	Action Action
}

// Viewer is the caller of an operation together with their profile role.
type Viewer struct {
	UserID uuid.UUID
	Role   dtos.Role
	Name   string
}

// ApplicationScope restricts which applications a viewer can see.
// Predicates are pushed down to the store, Visible is applied to every
// record the store returns.
type ApplicationScope struct {
	Predicates []Predicate
	Visible    func(application models.Application) bool
}

type AccessGuard interface {
	PermittedViews(role dtos.Role) []View
	PermittedTransitions(role dtos.Role) []dtos.Transition
	CanTransition(role dtos.Role, from, to dtos.ApplicationStatus) bool
	CanReassignRole(role dtos.Role) bool
	IsAllowed(role dtos.Role, object Object, action Action) bool
	ApplicationScope(viewer Viewer) ApplicationScope
}

type Enforcer interface {
	Enforce(role dtos.Role, object Object, action Action) (bool, error)
}

type RBACMiddleware = func(obj Object, act Action) echo.MiddlewareFunc

// ProgressFunc receives the upload progress as a whole percentage.
type ProgressFunc func(percent int)

type BlobUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, onProgress ProgressFunc) (string, error)
}

type AdminClient interface {
	GetIdentityFromCookie(ctx context.Context, cookie string) (client.Identity, error)
}

type AuthSession interface {
	GetUserID() string
	GetEmail() string
	GetName() string
}
