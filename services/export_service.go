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
	"fmt"
	"time"

	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/transformer"
	"github.com/l3montree-dev/reviewboard/utils"
)

type exportService struct {
	applicationRepository shared.ApplicationRepository
	userRepository        shared.UserRepository
	now                   func() time.Time
}

func NewExportService(applicationRepository shared.ApplicationRepository, userRepository shared.UserRepository) *exportService {
	return &exportService{
		applicationRepository: applicationRepository,
		userRepository:        userRepository,
		now:                   time.Now,
	}
}

// ExportFileName is the download name of an export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("application-data-%s.json", t.Format(time.DateOnly))
}

// Export dumps all applications and users together with their statistics.
func (s *exportService) Export(ctx context.Context) (dtos.ExportDocument, error) {
	applications, err := s.applicationRepository.Query(ctx, shared.Query{OrderBy: shared.NewestFirst()})
	if err != nil {
		return dtos.ExportDocument{}, err
	}
	users, err := s.userRepository.Query(ctx, shared.Query{OrderBy: shared.NewestFirst()})
	if err != nil {
		return dtos.ExportDocument{}, err
	}

	return dtos.ExportDocument{
		Applications: utils.Map(applications, transformer.ApplicationModelToDTO),
		Users:        utils.Map(users, transformer.UserModelToDTO),
		Stats:        ComputeDashboardStats(applications),
		UserStats:    ComputeUserStats(users),
		ExportDate:   s.now().UTC(),
	}, nil
}
