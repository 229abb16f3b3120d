package controllers

import (
	"github.com/l3montree-dev/reviewboard/shared"
)

type StatisticsController struct {
	statisticsService shared.StatisticsService
}

func NewStatisticsController(statisticsService shared.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

// GetDashboardStats computes the statistics over the applications the
// viewer can see.
func (c *StatisticsController) GetDashboardStats(ctx shared.Context) error {
	stats, err := c.statisticsService.DashboardStats(ctx.Request().Context(), shared.GetViewer(ctx))
	if err != nil {
		return httpError(err, "could not compute statistics")
	}
	return ctx.JSON(200, stats)
}
