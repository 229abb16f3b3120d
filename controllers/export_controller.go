package controllers

import (
	"fmt"

	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/shared"
)

type ExportController struct {
	exportService shared.ExportService
}

func NewExportController(exportService shared.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

func (c *ExportController) Export(ctx shared.Context) error {
	document, err := c.exportService.Export(ctx.Request().Context())
	if err != nil {
		return httpError(err, "could not export data")
	}

	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName(document.ExportDate)))
	return ctx.JSONPretty(200, document, "  ")
}
