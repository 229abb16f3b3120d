package controllers

import (
	"fmt"

	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/transformer"
	"github.com/labstack/echo/v4"
)

type ApplicationController struct {
	applicationService shared.ApplicationService
}

func NewApplicationController(applicationService shared.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

func (c *ApplicationController) List(ctx shared.Context) error {
	statusFilter, err := shared.GetStatusFilter(ctx)
	if err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	applications, err := c.applicationService.List(ctx.Request().Context(), shared.GetViewer(ctx), statusFilter)
	if err != nil {
		return httpError(err, "could not list applications")
	}
	return ctx.JSON(200, transformer.ApplicationModelsToDTOs(applications))
}

func (c *ApplicationController) Create(ctx shared.Context) error {
	var req dtos.ApplicationCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	application, err := c.applicationService.Create(ctx.Request().Context(), shared.GetViewer(ctx), req)
	if err != nil {
		return httpError(err, "could not submit application")
	}
	return ctx.JSON(201, transformer.ApplicationModelToDTO(application))
}

func (c *ApplicationController) Read(ctx shared.Context) error {
	applicationID, err := shared.GetApplicationID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid application id").WithInternal(err)
	}

	application, err := c.applicationService.Read(ctx.Request().Context(), shared.GetViewer(ctx), applicationID)
	if err != nil {
		return httpError(err, "could not find application")
	}
	return ctx.JSON(200, transformer.ApplicationModelToDTO(application))
}

func (c *ApplicationController) UpdateStatus(ctx shared.Context) error {
	applicationID, err := shared.GetApplicationID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid application id").WithInternal(err)
	}

	var req dtos.ApplicationStatusUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	status, err := c.applicationService.ChangeStatus(ctx.Request().Context(), shared.GetViewer(ctx), applicationID, req.Status)
	if err != nil {
		return httpError(err, "could not change status")
	}
	return ctx.JSON(200, map[string]dtos.ApplicationStatus{
		"status": status,
	})
}
