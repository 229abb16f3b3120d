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
	"log/slog"
	"math"

	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/utils"
)

// percentage rounds half away from zero and is 0 for an empty total.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// ComputeDashboardStats counts the applications per status. Records with an
// unknown status are left out so the four counts always add up to the total.
func ComputeDashboardStats(applications []models.Application) dtos.DashboardStats {
	counts := utils.CountBy(applications, func(a models.Application) dtos.ApplicationStatus {
		return a.Status
	})

	stats := dtos.DashboardStats{
		Pending:  counts[dtos.StatusPending],
		InReview: counts[dtos.StatusInReview],
		Accepted: counts[dtos.StatusAccepted],
		Rejected: counts[dtos.StatusRejected],
	}
	stats.TotalApplications = stats.Pending + stats.InReview + stats.Accepted + stats.Rejected
	if stats.TotalApplications != len(applications) {
		slog.Warn("ignoring applications with an unknown status", "count", len(applications)-stats.TotalApplications)
	}

	stats.AcceptanceRate = percentage(stats.Accepted, stats.TotalApplications)
	stats.RejectionRate = percentage(stats.Rejected, stats.TotalApplications)
	return stats
}

func ComputeUserStats(users []models.User) dtos.UserStats {
	counts := utils.CountBy(users, func(u models.User) dtos.Role {
		return u.Role
	})
	return dtos.UserStats{
		TotalUsers: len(users),
		Applicants: counts[dtos.RoleApplicant],
		Reviewers:  counts[dtos.RoleReviewer],
		Admins:     counts[dtos.RoleAdmin],
	}
}

type statisticsService struct {
	applicationRepository shared.ApplicationRepository
	userRepository        shared.UserRepository
	guard                 shared.AccessGuard
}

func NewStatisticsService(applicationRepository shared.ApplicationRepository, userRepository shared.UserRepository, guard shared.AccessGuard) *statisticsService {
	return &statisticsService{
		applicationRepository: applicationRepository,
		userRepository:        userRepository,
		guard:                 guard,
	}
}

// DashboardStats computes the statistics over everything the viewer can see.
func (s *statisticsService) DashboardStats(ctx context.Context, viewer shared.Viewer) (dtos.DashboardStats, error) {
	scope := s.guard.ApplicationScope(viewer)
	applications, err := s.applicationRepository.Query(ctx, shared.Query{Predicates: scope.Predicates})
	if err != nil {
		return dtos.DashboardStats{}, err
	}
	return ComputeDashboardStats(utils.Filter(applications, scope.Visible)), nil
}

func (s *statisticsService) UserStats(ctx context.Context) (dtos.UserStats, error) {
	users, err := s.userRepository.Query(ctx, shared.Query{})
	if err != nil {
		return dtos.UserStats{}, err
	}
	return ComputeUserStats(users), nil
}
