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
	"testing"

	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBroker(t *testing.T) {
	t.Run("should deliver a message to every subscriber of the channel", func(t *testing.T) {
		broker := NewInMemoryBroker()
		a, unsubscribeA, err := broker.Subscribe(shared.ApplicationsChannel)
		require.NoError(t, err)
		defer unsubscribeA()
		b, unsubscribeB, err := broker.Subscribe(shared.ApplicationsChannel)
		require.NoError(t, err)
		defer unsubscribeB()
		other, unsubscribeOther, err := broker.Subscribe(shared.ReviewsChannel)
		require.NoError(t, err)
		defer unsubscribeOther()

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.ApplicationsChannel, map[string]any{"id": "1"}))
		require.NoError(t, err)

		assert.Equal(t, "1", (<-a)["id"])
		assert.Equal(t, "1", (<-b)["id"])
		assert.Len(t, other, 0)
	})

	t.Run("should coalesce notifications if the subscriber did not read yet", func(t *testing.T) {
		broker := NewInMemoryBroker()
		ch, unsubscribe, err := broker.Subscribe(shared.ApplicationsChannel)
		require.NoError(t, err)
		defer unsubscribe()

		for range 5 {
			require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.ApplicationsChannel, nil)))
		}

		assert.Len(t, ch, 1)
	})

	t.Run("should close the channel on unsubscribe", func(t *testing.T) {
		broker := NewInMemoryBroker()
		ch, unsubscribe, err := broker.Subscribe(shared.ApplicationsChannel)
		require.NoError(t, err)

		unsubscribe()
		unsubscribe()

		_, ok := <-ch
		assert.False(t, ok)
		require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.ApplicationsChannel, nil)))
	})

	t.Run("should close all subscribers when the broker is closed", func(t *testing.T) {
		broker := NewInMemoryBroker()
		ch, unsubscribe, err := broker.Subscribe(shared.UsersChannel)
		require.NoError(t, err)

		require.NoError(t, broker.Close())
		unsubscribe()

		_, ok := <-ch
		assert.False(t, ok)

		_, _, err = broker.Subscribe(shared.UsersChannel)
		assert.Error(t, err)
	})
}
