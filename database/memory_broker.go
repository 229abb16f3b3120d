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

package database

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/l3montree-dev/reviewboard/shared"
)

// InMemoryBroker delivers messages inside a single process. It is used by
// single instance deployments and by the tests.
type InMemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[shared.PubSubChannel]map[int]chan map[string]any
	nextID      int
	closed      bool
}

func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{
		subscribers: make(map[shared.PubSubChannel]map[int]chan map[string]any),
	}
}

func (b *InMemoryBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errors.New("broker is closed")
	}

	for _, subscriber := range b.subscribers[message.GetChannel()] {
		payload := maps.Clone(message.GetPayload())
		select {
		case subscriber <- payload:
		default:
			// a notification is still pending for this subscriber
		}
	}
	return nil
}

func (b *InMemoryBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, nil, errors.New("broker is closed")
	}

	if _, ok := b.subscribers[topic]; !ok {
		b.subscribers[topic] = make(map[int]chan map[string]any)
	}
	ch := make(chan map[string]any, 1)
	id := b.nextID
	b.nextID++
	b.subscribers[topic][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subscribers[topic][id]; ok {
				delete(b.subscribers[topic], id)
				close(sub)
			}
		})
	}, nil
}

func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for topic, subscribers := range b.subscribers {
		for id, sub := range subscribers {
			delete(subscribers, id)
			close(sub)
		}
		delete(b.subscribers, topic)
	}
	return nil
}
