package router

import (
	"github.com/l3montree-dev/reviewboard/controllers"
	"github.com/l3montree-dev/reviewboard/middlewares"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	*echo.Group
}

func NewUserRouter(
	sessionRouter SessionRouter,
	enforcer shared.Enforcer,
	userController *controllers.UserController,
	exportController *controllers.ExportController,
) UserRouter {
	rbac := middlewares.AccessControlMiddleware(enforcer)

	userRouter := sessionRouter.Group.Group("/users")
	// own profile, available before a role is assigned
	userRouter.GET("/me/", userController.Me)
	userRouter.POST("/me/", userController.CreateMe)

	userRouter.GET("/", userController.List, rbac(shared.ObjectUser, shared.ActionRead))
	userRouter.GET("/stats/", userController.Stats, rbac(shared.ObjectUser, shared.ActionRead))
	userRouter.PUT("/:userID/role/", userController.UpdateRole, rbac(shared.ObjectUser, shared.ActionUpdateRole))

	sessionRouter.GET("/export/", exportController.Export, rbac(shared.ObjectExport, shared.ActionRead))

	return UserRouter{
		Group: userRouter,
	}
}
