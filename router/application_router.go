package router

import (
	"github.com/l3montree-dev/reviewboard/controllers"
	"github.com/l3montree-dev/reviewboard/middlewares"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ApplicationRouter struct {
	*echo.Group
}

func NewApplicationRouter(
	sessionRouter SessionRouter,
	enforcer shared.Enforcer,
	applicationController *controllers.ApplicationController,
	reviewController *controllers.ReviewController,
	feedController *controllers.FeedController,
	statisticsController *controllers.StatisticsController,
	fileController *controllers.FileController,
) ApplicationRouter {
	rbac := middlewares.AccessControlMiddleware(enforcer)

	sessionRouter.GET("/statistics/", statisticsController.GetDashboardStats, rbac(shared.ObjectStatistics, shared.ActionRead))

	applicationRouter := sessionRouter.Group.Group("/applications")
	applicationRouter.GET("/", applicationController.List, rbac(shared.ObjectApplication, shared.ActionRead))
	applicationRouter.POST("/", applicationController.Create, rbac(shared.ObjectApplication, shared.ActionCreate))
	applicationRouter.GET("/feed/", feedController.Stream, rbac(shared.ObjectApplication, shared.ActionRead))
	if fileController.Enabled() {
		applicationRouter.POST("/files/", fileController.Upload, middleware.BodyLimit("25M"), rbac(shared.ObjectFile, shared.ActionCreate))
	}

	applicationRouter.GET("/:applicationID/", applicationController.Read, rbac(shared.ObjectApplication, shared.ActionRead))
	applicationRouter.PUT("/:applicationID/status/", applicationController.UpdateStatus, rbac(shared.ObjectApplication, shared.ActionUpdate))
	applicationRouter.GET("/:applicationID/reviews/", reviewController.List, rbac(shared.ObjectReview, shared.ActionRead))
	applicationRouter.POST("/:applicationID/reviews/", reviewController.Create, rbac(shared.ObjectReview, shared.ActionCreate))

	return ApplicationRouter{
		Group: applicationRouter,
	}
}
