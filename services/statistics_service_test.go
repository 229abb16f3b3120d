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
	"testing"
	"time"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationsWith(statuses ...dtos.ApplicationStatus) []models.Application {
	applications := make([]models.Application, 0, len(statuses))
	for _, status := range statuses {
		applications = append(applications, models.Application{Status: status})
	}
	return applications
}

func TestComputeDashboardStats(t *testing.T) {
	t.Run("should be all zero for no applications", func(t *testing.T) {
		assert.Equal(t, dtos.DashboardStats{}, ComputeDashboardStats(nil))
	})

	t.Run("should round the rates to whole percentages", func(t *testing.T) {
		stats := ComputeDashboardStats(applicationsWith(dtos.StatusAccepted, dtos.StatusRejected, dtos.StatusRejected))
		assert.Equal(t, 3, stats.TotalApplications)
		assert.Equal(t, 33, stats.AcceptanceRate)
		assert.Equal(t, 67, stats.RejectionRate)
	})

	t.Run("should round half up", func(t *testing.T) {
		statuses := make([]dtos.ApplicationStatus, 0, 8)
		statuses = append(statuses, dtos.StatusAccepted)
		for range 7 {
			statuses = append(statuses, dtos.StatusPending)
		}
		// 1/8 = 12.5%
		assert.Equal(t, 13, ComputeDashboardStats(applicationsWith(statuses...)).AcceptanceRate)
	})

	t.Run("the counts always add up to the total", func(t *testing.T) {
		stats := ComputeDashboardStats(applicationsWith(
			dtos.StatusPending, dtos.StatusPending, dtos.StatusInReview,
			dtos.StatusAccepted, dtos.StatusRejected, "archived",
		))
		assert.Equal(t, 5, stats.TotalApplications)
		assert.Equal(t, stats.TotalApplications, stats.Pending+stats.InReview+stats.Accepted+stats.Rejected)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 20, stats.AcceptanceRate)
	})
}

func TestComputeUserStats(t *testing.T) {
	stats := ComputeUserStats([]models.User{
		{Role: dtos.RoleApplicant}, {Role: dtos.RoleApplicant}, {Role: dtos.RoleReviewer}, {Role: dtos.RoleAdmin},
	})
	assert.Equal(t, dtos.UserStats{TotalUsers: 4, Applicants: 2, Reviewers: 1, Admins: 1}, stats)
}

func TestStatisticsServiceScope(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := NewStatisticsService(env.store.Applications, env.store.Users, env.guard)

	seed(t, env, dtos.StatusPending, time.Now())
	seed(t, env, dtos.StatusInReview, time.Now())
	seed(t, env, dtos.StatusAccepted, time.Now())
	seed(t, env, dtos.StatusRejected, time.Now())

	t.Run("admins compute over everything", func(t *testing.T) {
		stats, err := service.DashboardStats(ctx, viewer(dtos.RoleAdmin))
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalApplications)
		assert.Equal(t, 25, stats.AcceptanceRate)
	})

	t.Run("reviewers compute over the review queue", func(t *testing.T) {
		stats, err := service.DashboardStats(ctx, viewer(dtos.RoleReviewer))
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalApplications)
		assert.Equal(t, 0, stats.AcceptanceRate)
	})

	t.Run("applicants compute over their own applications", func(t *testing.T) {
		stats, err := service.DashboardStats(ctx, viewer(dtos.RoleApplicant))
		require.NoError(t, err)
		assert.Equal(t, dtos.DashboardStats{}, stats)
	})
}
