package controllers

import (
	"fmt"

	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/transformer"
	"github.com/l3montree-dev/reviewboard/utils"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	userService       shared.UserService
	statisticsService shared.StatisticsService
}

func NewUserController(userService shared.UserService, statisticsService shared.StatisticsService) *UserController {
	return &UserController{
		userService:       userService,
		statisticsService: statisticsService,
	}
}

func (c *UserController) Me(ctx shared.Context) error {
	user, err := c.userService.ReadProfile(ctx.Request().Context(), shared.GetViewer(ctx).UserID)
	if err != nil {
		return httpError(err, "no profile yet")
	}
	return ctx.JSON(200, transformer.UserModelToDTO(user))
}

// CreateMe creates the profile of the session user on first login. Email
// and name of the identity win over the request body.
func (c *UserController) CreateMe(ctx shared.Context) error {
	var req dtos.UserProfileCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	session := shared.GetSession(ctx)
	email := session.GetEmail()
	if email == "" {
		email = req.Email
	}
	name := session.GetName()
	// traits without a name fall back to the email
	if req.DisplayName != "" && (name == "" || name == email) {
		name = req.DisplayName
	}

	user, err := c.userService.EnsureProfile(ctx.Request().Context(), shared.GetViewer(ctx).UserID, email, name)
	if err != nil {
		return httpError(err, "could not create profile")
	}
	return ctx.JSON(200, transformer.UserModelToDTO(user))
}

func (c *UserController) List(ctx shared.Context) error {
	users, err := c.userService.List(ctx.Request().Context())
	if err != nil {
		return httpError(err, "could not list users")
	}
	return ctx.JSON(200, utils.Map(users, transformer.UserModelToDTO))
}

func (c *UserController) Stats(ctx shared.Context) error {
	stats, err := c.statisticsService.UserStats(ctx.Request().Context())
	if err != nil {
		return httpError(err, "could not compute user statistics")
	}
	return ctx.JSON(200, stats)
}

func (c *UserController) UpdateRole(ctx shared.Context) error {
	userID, err := shared.GetUserID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid user id").WithInternal(err)
	}

	var req dtos.UserRoleUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	user, err := c.userService.ChangeRole(ctx.Request().Context(), shared.GetViewer(ctx), userID, req.Role)
	if err != nil {
		return httpError(err, "could not change role")
	}
	return ctx.JSON(200, transformer.UserModelToDTO(user))
}
