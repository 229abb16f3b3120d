package controllers

import (
	"fmt"

	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/transformer"
	"github.com/l3montree-dev/reviewboard/utils"
	"github.com/labstack/echo/v4"
)

type ReviewController struct {
	reviewService shared.ReviewService
}

func NewReviewController(reviewService shared.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

func (c *ReviewController) List(ctx shared.Context) error {
	applicationID, err := shared.GetApplicationID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid application id").WithInternal(err)
	}
	reviews, err := c.reviewService.ListFor(ctx.Request().Context(), shared.GetViewer(ctx), applicationID)
	if err != nil {
		return httpError(err, "could not list reviews")
	}
	return ctx.JSON(200, utils.Map(reviews, transformer.ReviewModelToDTO))
}

func (c *ReviewController) Create(ctx shared.Context) error {
	applicationID, err := shared.GetApplicationID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid application id").WithInternal(err)
	}

	var req dtos.ReviewCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	viewer := shared.GetViewer(ctx)
	reviewID, err := c.reviewService.Submit(ctx.Request().Context(), dtos.ReviewSubmission{
		ApplicationID: applicationID,
		ReviewerID:    viewer.UserID,
		ReviewerName:  viewer.Name,
		ReviewerRole:  viewer.Role,
		Score:         req.Score,
		Comments:      req.Comments,
		PrivateNotes:  req.PrivateNotes,
	})
	if err != nil {
		return httpError(err, "could not submit review")
	}
	return ctx.JSON(201, map[string]string{
		"id": reviewID.String(),
	})
}
