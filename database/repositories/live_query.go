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

package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
)

// liveQuery re-runs a query whenever its collection changes and hands the
// result to the snapshot callback. Notifications arriving while a query
// runs are coalesced into a single refresh.
type liveQuery[T any] struct {
	name        string
	changes     <-chan map[string]any
	unsubscribe func()
	query       func(ctx context.Context) ([]T, error)
	onSnapshot  shared.SnapshotFunc[T]

	done      chan struct{}
	stopped   chan struct{}
	stopQuery context.CancelFunc
	once      sync.Once
}

func newLiveQuery[T any](name string, changes <-chan map[string]any, unsubscribe func(), query func(ctx context.Context) ([]T, error), onSnapshot shared.SnapshotFunc[T]) *liveQuery[T] {
	return &liveQuery[T]{
		name:        name,
		changes:     changes,
		unsubscribe: unsubscribe,
		query:       query,
		onSnapshot:  onSnapshot,
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

func (l *liveQuery[T]) start(ctx context.Context) {
	ctx, l.stopQuery = context.WithCancel(ctx)
	go l.run(ctx)
}

func (l *liveQuery[T]) run(ctx context.Context) {
	defer close(l.stopped)
	defer l.unsubscribe()

	// subscribed before the first read, no write can slip in between
	l.refresh(ctx)
	for {
		select {
		case <-l.done:
			return
		case <-ctx.Done():
			return
		case _, ok := <-l.changes:
			if !ok {
				l.deliver(nil, fmt.Errorf("%w: %w: change notifications for %s stopped", shared.ErrStoreUnavailable, shared.ErrSubscriptionEnded, l.name))
				return
			}
			l.refresh(ctx)
		}
	}
}

func (l *liveQuery[T]) refresh(ctx context.Context) {
	start := time.Now()
	records, err := l.query(ctx)
	monitoring.StoreQueryDuration.WithLabelValues(l.name).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.deliver(nil, err)
		return
	}
	l.deliver(records, nil)
}

func (l *liveQuery[T]) deliver(records []T, err error) {
	select {
	case <-l.done:
		return
	default:
	}
	l.onSnapshot(records, err)
}

func (l *liveQuery[T]) cancel() {
	l.once.Do(func() {
		close(l.done)
		l.stopQuery()
	})
	<-l.stopped
}
