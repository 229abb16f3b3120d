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
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository is a shared.Collection backed by a gorm table. Every
// successful write is announced on the broker channel of the collection,
// which drives the live queries of all instances.
type GormRepository[T utils.Record] struct {
	db      *gorm.DB
	broker  shared.PubSubBroker
	channel shared.PubSubChannel
}

func newGormRepository[T utils.Record](db *gorm.DB, broker shared.PubSubBroker, channel shared.PubSubChannel) *GormRepository[T] {
	return &GormRepository[T]{
		db:      db,
		broker:  broker,
		channel: channel,
	}
}

func (g *GormRepository[T]) GetDB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

func (g *GormRepository[T]) Create(ctx context.Context, t *T) error {
	if err := g.GetDB(ctx).Create(t).Error; err != nil {
		return storeError(err)
	}
	g.notify(ctx, "create", (*t).GetID())
	return nil
}

func (g *GormRepository[T]) Update(ctx context.Context, id uuid.UUID, partial map[string]any, conds ...shared.Predicate) error {
	var t T
	db := applyPredicates(g.GetDB(ctx).Model(&t).Where("id = ?", id), conds)
	res := db.Updates(partial)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no %s with id %s matched", shared.ErrNotFound, t.TableName(), id)
	}
	g.notify(ctx, "update", id)
	return nil
}

func (g *GormRepository[T]) Read(ctx context.Context, id uuid.UUID) (T, error) {
	var t T
	if err := g.GetDB(ctx).First(&t, "id = ?", id).Error; err != nil {
		return t, storeError(err)
	}
	return t, nil
}

func (g *GormRepository[T]) Query(ctx context.Context, q shared.Query) ([]T, error) {
	ts := []T{}
	var t T
	if err := applyQuery(g.GetDB(ctx).Model(&t), q).Find(&ts).Error; err != nil {
		return nil, storeError(err)
	}
	return ts, nil
}

func (g *GormRepository[T]) Subscribe(ctx context.Context, q shared.Query, onSnapshot shared.SnapshotFunc[T]) (shared.CancelFunc, error) {
	changes, unsubscribe, err := g.broker.Subscribe(g.channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}

	var t T
	lq := newLiveQuery(t.TableName(), changes, unsubscribe, func(ctx context.Context) ([]T, error) {
		return g.Query(ctx, q)
	}, onSnapshot)
	lq.start(ctx)
	return lq.cancel, nil
}

func (g *GormRepository[T]) notify(ctx context.Context, op string, id uuid.UUID) {
	err := g.broker.Publish(context.WithoutCancel(ctx), shared.NewSimplePubSubMessage(g.channel, map[string]any{
		"op": op,
		"id": id.String(),
	}))
	if err != nil {
		slog.Error("could not announce change, live queries stay stale until the next write", "channel", g.channel, "id", id, "err", err)
	}
}

func applyPredicates(db *gorm.DB, predicates []shared.Predicate) *gorm.DB {
	for _, p := range predicates {
		column := clause.Column{Name: p.Field}
		switch p.Op {
		case shared.OpIn:
			values, _ := p.Value.([]any)
			db = db.Where(clause.IN{Column: column, Values: values})
		default:
			db = db.Where(clause.Eq{Column: column, Value: p.Value})
		}
	}
	return db
}

func applyQuery(db *gorm.DB, q shared.Query) *gorm.DB {
	db = applyPredicates(db, q.Predicates)
	if q.OrderBy != nil {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy.Field}, Desc: q.OrderBy.Desc})
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}

func storeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", shared.ErrNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}
}
