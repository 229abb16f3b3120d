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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/lib/pq"
)

type PostgreSQLMessage struct {
	ID        string               `json:"id"`
	Channel   shared.PubSubChannel `json:"topic"`
	Payload   map[string]any       `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
	SenderID  string               `json:"sender_id,omitempty"`
}

func (m PostgreSQLMessage) GetChannel() shared.PubSubChannel {
	return m.Channel
}

func (m PostgreSQLMessage) GetPayload() map[string]any {
	return m.Payload
}

type listeningConnection struct {
	conn        *pgxpool.Conn
	subscribers map[int]chan map[string]any
}

// PostgreSQLBroker implements the PubSubBroker interface using PostgreSQL LISTEN/NOTIFY.
// Each topic holds one dedicated pool connection while it has subscribers.
type PostgreSQLBroker struct {
	db           *pgxpool.Pool
	topics       map[shared.PubSubChannel]*listeningConnection
	subscribeMux sync.RWMutex
	nextID       int
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	closed       bool
	// ID identifies this broker instance as the sender of its notifications.
	ID                       string
	shouldReceiveOwnMessages bool
}

func (b *PostgreSQLBroker) SetShouldReceiveOwnMessages(should bool) {
	b.shouldReceiveOwnMessages = should
}

// NewPostgreSQLBroker creates a new PostgreSQL broker. Own messages are
// delivered as well, a write must refresh the live queries of this process too.
func NewPostgreSQLBroker(db *pgxpool.Pool) *PostgreSQLBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &PostgreSQLBroker{
		db:                       db,
		topics:                   make(map[shared.PubSubChannel]*listeningConnection),
		ctx:                      ctx,
		cancel:                   cancel,
		ID:                       uuid.New().String(),
		shouldReceiveOwnMessages: true,
	}
}

func (b *PostgreSQLBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	topic := message.GetChannel()

	pgMessage := PostgreSQLMessage{
		ID:        uuid.New().String(),
		Channel:   topic,
		Payload:   message.GetPayload(),
		Timestamp: time.Now(),
		SenderID:  b.ID,
	}

	messageJSON, err := json.Marshal(pgMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal PostgreSQL message: %w", err)
	}

	// pg_notify takes the payload as a bound parameter, no quoting needed
	if _, err = b.db.Exec(ctx, "SELECT pg_notify($1, $2)", string(topic), string(messageJSON)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	slog.Debug("message published", "topic", topic, "messageID", pgMessage.ID)
	return nil
}

func (b *PostgreSQLBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, func(), error) {
	b.subscribeMux.Lock()
	defer b.subscribeMux.Unlock()

	if b.closed {
		return nil, nil, errors.New("broker is closed")
	}

	listening, exists := b.topics[topic]
	if !exists {
		ctxWithTimeout, cancel := context.WithTimeout(b.ctx, 30*time.Second)
		defer cancel()
		conn, err := b.db.Acquire(ctxWithTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to acquire connection for listening: %w", err)
		}
		if _, err = conn.Exec(ctxWithTimeout, "LISTEN "+pq.QuoteIdentifier(string(topic))); err != nil {
			conn.Release()
			return nil, nil, fmt.Errorf("failed to listen on topic %s: %w", topic, err)
		}
		listening = &listeningConnection{
			conn:        conn,
			subscribers: make(map[int]chan map[string]any),
		}
		b.topics[topic] = listening
		b.wg.Go(func() {
			b.processMessages(topic, listening)
		})
	}

	// one pending notification is enough, every notification means "re-read"
	ch := make(chan map[string]any, 1)
	id := b.nextID
	b.nextID++
	listening.subscribers[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.subscribeMux.Lock()
			defer b.subscribeMux.Unlock()
			if current, ok := b.topics[topic]; ok && current == listening {
				if sub, ok := current.subscribers[id]; ok {
					delete(current.subscribers, id)
					close(sub)
				}
			}
		})
	}

	return ch, unsubscribe, nil
}

// processMessages handles incoming notifications of a single topic.
func (b *PostgreSQLBroker) processMessages(topic shared.PubSubChannel, listening *listeningConnection) {
	for {
		notification, err := listening.conn.Conn().WaitForNotification(b.ctx)
		if err != nil {
			b.dropTopic(topic, listening)
			if b.ctx.Err() == nil {
				monitoring.Alert("could not listen for notifications from PostgreSQL broker", err)
			}
			return
		}
		if notification == nil || notification.Channel != string(topic) {
			continue
		}

		var message PostgreSQLMessage
		if err := json.Unmarshal([]byte(notification.Payload), &message); err != nil {
			slog.Error("failed to unmarshal message", "error", err, "payload", notification.Payload)
			continue
		}

		if message.SenderID == b.ID && !b.shouldReceiveOwnMessages {
			slog.Debug("ignoring message sent by self", "messageID", message.ID, "topic", message.Channel)
			continue
		}

		b.subscribeMux.RLock()
		for _, subscriber := range listening.subscribers {
			select {
			case subscriber <- message.Payload:
			default:
				// a notification is still pending for this subscriber
			}
		}
		count := len(listening.subscribers)
		b.subscribeMux.RUnlock()

		slog.Debug("message distributed", "topic", topic, "messageID", message.ID, "subscribers", count)
	}
}

// dropTopic closes every subscriber of topic so they notice the lost
// connection. The next Subscribe on the topic listens again.
func (b *PostgreSQLBroker) dropTopic(topic shared.PubSubChannel, listening *listeningConnection) {
	b.subscribeMux.Lock()
	defer b.subscribeMux.Unlock()

	for id, subscriber := range listening.subscribers {
		delete(listening.subscribers, id)
		close(subscriber)
	}
	if current, ok := b.topics[topic]; ok && current == listening {
		delete(b.topics, topic)
	}
	listening.conn.Release()
}

// IsHealthy checks if all listening connections are still alive.
func (b *PostgreSQLBroker) IsHealthy(ctx context.Context) bool {
	b.subscribeMux.RLock()
	defer b.subscribeMux.RUnlock()

	for topic, listening := range b.topics {
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := listening.conn.Ping(ctxWithTimeout)
		cancel()
		if err != nil {
			slog.Error("listening connection is not healthy", "topic", topic, "error", err)
			return false
		}
	}
	return true
}

// Close stops listening on all topics and closes every subscriber channel.
func (b *PostgreSQLBroker) Close() error {
	b.subscribeMux.Lock()
	if b.closed {
		b.subscribeMux.Unlock()
		return nil
	}
	b.closed = true
	b.subscribeMux.Unlock()

	b.cancel()
	b.wg.Wait()
	return nil
}
