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

	"github.com/google/uuid"
)

type Operator string

const (
	OpEq Operator = "=="
	OpIn Operator = "in"
)

// Predicate filters records by a single column.
type Predicate struct {
	Field string
	Op    Operator
	Value any
}

func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

func In[T any](field string, values ...T) Predicate {
	v := make([]any, 0, len(values))
	for _, value := range values {
		v = append(v, value)
	}
	return Predicate{Field: field, Op: OpIn, Value: v}
}

type OrderBy struct {
	Field string
	Desc  bool
}

type Query struct {
	Predicates []Predicate
	OrderBy    *OrderBy
	// Limit of 0 means unlimited.
	Limit int
}

// NewestFirst orders by creation time, newest first.
func NewestFirst() *OrderBy {
	return &OrderBy{Field: "created_at", Desc: true}
}

// SnapshotFunc receives the complete current result of a subscribed query,
// or an error if the store could not produce it. An error wrapping
// ErrSubscriptionEnded is the final call.
type SnapshotFunc[T any] func(records []T, err error)

// CancelFunc stops a subscription. It is idempotent and returns only after
// the last snapshot callback has finished. It must not be called from
// inside the snapshot callback.
type CancelFunc func()

// Collection is a document collection with live queries.
type Collection[T any] interface {
	Create(ctx context.Context, t *T) error
	// Update merges partial into the record with the given id. All conds must
	// hold for the write to happen, otherwise ErrNotFound is returned.
	Update(ctx context.Context, id uuid.UUID, partial map[string]any, conds ...Predicate) error
	Read(ctx context.Context, id uuid.UUID) (T, error)
	Query(ctx context.Context, q Query) ([]T, error)
	Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc[T]) (CancelFunc, error)
}
