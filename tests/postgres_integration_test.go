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

package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/database"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/database/repositories"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a postgres container")
	}
	pool := InitRawDatabaseContainer(t)

	t.Run("PublishAndSubscribe", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		defer broker.Close()

		topic := shared.PubSubChannel("test_topic")
		messages, unsubscribe, err := broker.Subscribe(topic)
		require.NoError(t, err)
		defer unsubscribe()

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(topic, map[string]any{
			"test":   "data",
			"number": 42,
		}))
		require.NoError(t, err)

		select {
		case payload := <-messages:
			assert.Equal(t, "data", payload["test"])
			assert.Equal(t, float64(42), payload["number"])
		case <-time.After(5 * time.Second):
			t.Fatal("message not received within timeout")
		}
	})

	t.Run("OwnMessagesCanBeFiltered", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		broker.SetShouldReceiveOwnMessages(false)
		defer broker.Close()

		topic := shared.PubSubChannel("own_topic")
		messages, unsubscribe, err := broker.Subscribe(topic)
		require.NoError(t, err)
		defer unsubscribe()

		require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(topic, map[string]any{})))

		select {
		case <-messages:
			t.Fatal("received own message")
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("CloseEndsSubscriptions", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		messages, _, err := broker.Subscribe(shared.PubSubChannel("close_topic"))
		require.NoError(t, err)
		assert.True(t, broker.IsHealthy(context.Background()))

		require.NoError(t, broker.Close())
		select {
		case _, ok := <-messages:
			assert.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("subscription was not closed")
		}
	})
}

func TestReviewWorkflowOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a postgres container")
	}
	ctx := context.Background()
	db, pool := InitDatabaseContainer(t)
	broker := database.NewPostgreSQLBroker(pool)
	t.Cleanup(func() { broker.Close() })

	applicationRepository := repositories.NewApplicationRepository(db, broker)
	reviewRepository := repositories.NewReviewRepository(db, broker)
	enforcer, err := accesscontrol.NewCasbinEnforcer()
	require.NoError(t, err)
	guard := accesscontrol.NewRoleAccessGuard(enforcer)
	stateMachine := statemachine.NewApplicationStateMachine(applicationRepository, guard)

	applications := services.NewApplicationService(applicationRepository, stateMachine, guard)
	reviews := services.NewReviewService(reviewRepository, applicationRepository, stateMachine, guard)
	feed := services.NewFeedService(applicationRepository, guard)

	reviewer := shared.Viewer{UserID: uuid.New(), Role: dtos.RoleReviewer, Name: "Rita"}
	applicant := shared.Viewer{UserID: uuid.New(), Role: dtos.RoleApplicant, Name: "Ada"}

	sub, err := feed.Subscribe(ctx, reviewer, "")
	require.NoError(t, err)
	defer sub.Cancel()

	application, err := applications.Create(ctx, applicant, dtos.ApplicationCreateRequest{
		PersonalInfo:   dtos.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		ProjectDetails: dtos.ProjectDetails{Title: "Engine", Description: "analytical", Objectives: []string{"compute"}},
	})
	require.NoError(t, err)

	awaitApplications(t, sub, func(list []models.Application) bool {
		return len(list) == 1 && list[0].ID == application.ID && list[0].Status == dtos.StatusPending
	})

	_, err = reviews.Submit(ctx, dtos.ReviewSubmission{
		ApplicationID: application.ID,
		ReviewerID:    reviewer.UserID,
		ReviewerName:  reviewer.Name,
		ReviewerRole:  reviewer.Role,
		Score:         9,
	})
	require.NoError(t, err)

	awaitApplications(t, sub, func(list []models.Application) bool {
		return len(list) == 1 && list[0].Status == dtos.StatusInReview
	})

	stored, err := applicationRepository.Read(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"compute"}, stored.ProjectDetails.Objectives)
}

func awaitApplications(t *testing.T, sub shared.FeedSubscription, cond func([]models.Application) bool) {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case snapshot, ok := <-sub.Snapshots():
			require.True(t, ok, "feed closed")
			require.NoError(t, snapshot.Err)
			if cond(snapshot.Applications) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the feed")
		}
	}
}
