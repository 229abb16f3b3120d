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
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"go.uber.org/fx"
)

// ServiceModule provides all service constructors as their interfaces
var ServiceModule = fx.Options(
	fx.Provide(fx.Annotate(statemachine.NewApplicationStateMachine, fx.As(new(shared.StatusStateMachine)))),
	fx.Provide(fx.Annotate(NewApplicationService, fx.As(new(shared.ApplicationService)))),
	fx.Provide(fx.Annotate(NewReviewService, fx.As(new(shared.ReviewService)))),
	fx.Provide(fx.Annotate(NewFeedService, fx.As(new(shared.ApplicationFeed)))),
	fx.Provide(fx.Annotate(NewStatisticsService, fx.As(new(shared.StatisticsService)))),
	fx.Provide(fx.Annotate(NewUserService, fx.As(new(shared.UserService)))),
	fx.Provide(fx.Annotate(NewExportService, fx.As(new(shared.ExportService)))),
)
