package controllers

import (
	"go.uber.org/fx"
)

var ControllerModule = fx.Options(
	fx.Provide(NewApplicationController),
	fx.Provide(NewReviewController),
	fx.Provide(NewFeedController),
	fx.Provide(NewUserController),
	fx.Provide(NewStatisticsController),
	fx.Provide(NewExportController),
	fx.Provide(NewFileController),
)
