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
	"sync"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/utils"
	"github.com/pkg/errors"
)

type feedService struct {
	applicationRepository shared.ApplicationRepository
	guard                 shared.AccessGuard
}

func NewFeedService(applicationRepository shared.ApplicationRepository, guard shared.AccessGuard) *feedService {
	return &feedService{
		applicationRepository: applicationRepository,
		guard:                 guard,
	}
}

// Subscribe opens a live dashboard for viewer. Every change of the
// applications produces a snapshot with the visible applications and the
// statistics over them. The status filter narrows the list, never the
// statistics.
func (f *feedService) Subscribe(ctx context.Context, viewer shared.Viewer, statusFilter dtos.ApplicationStatus) (shared.FeedSubscription, error) {
	if len(f.guard.PermittedViews(viewer.Role)) == 0 {
		return nil, errors.Wrapf(shared.ErrForbidden, "role %q has no dashboard", viewer.Role)
	}
	if statusFilter != "" && !statusFilter.IsValid() {
		return nil, errors.Errorf("invalid status filter %q", statusFilter)
	}

	scope := f.guard.ApplicationScope(viewer)
	sub := &feedSubscription{
		snapshots: make(chan shared.FeedSnapshot),
		done:      make(chan struct{}),
	}

	cancel, err := f.applicationRepository.Subscribe(ctx, shared.Query{
		Predicates: scope.Predicates,
		OrderBy:    shared.NewestFirst(),
	}, func(applications []models.Application, err error) {
		if err != nil {
			sub.push(shared.FeedSnapshot{Err: err})
			if errors.Is(err, shared.ErrSubscriptionEnded) {
				sub.closeSnapshots()
			}
			return
		}
		visible := utils.Filter(applications, scope.Visible)
		sub.push(shared.FeedSnapshot{
			Applications: visibleApplications(visible, scope, statusFilter),
			Stats:        ComputeDashboardStats(visible),
		})
	})
	if err != nil {
		return nil, err
	}

	sub.cancelUpstream = cancel
	monitoring.ActiveFeedSubscriptions.Inc()
	return sub, nil
}

type feedSubscription struct {
	snapshots      chan shared.FeedSnapshot
	done           chan struct{}
	cancelUpstream shared.CancelFunc
	once           sync.Once
	closeOnce      sync.Once
}

func (s *feedSubscription) Snapshots() <-chan shared.FeedSnapshot {
	return s.snapshots
}

// push blocks until the consumer takes the snapshot or the subscription
// is cancelled.
func (s *feedSubscription) push(snapshot shared.FeedSnapshot) {
	select {
	case s.snapshots <- snapshot:
		monitoring.FeedSnapshotsDelivered.Inc()
	case <-s.done:
	}
}

// closeSnapshots is only called from the upstream callback or after the
// upstream stopped, so it never races a send.
func (s *feedSubscription) closeSnapshots() {
	s.closeOnce.Do(func() {
		close(s.snapshots)
	})
}

// Cancel stops the subscription. Once it returns no further snapshot is
// delivered and the snapshot channel is closed.
func (s *feedSubscription) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.cancelUpstream()
		s.closeSnapshots()
		monitoring.ActiveFeedSubscriptions.Dec()
	})
}
