package controllers

import (
	"log/slog"
	"time"

	"github.com/l3montree-dev/reviewboard/blobstorage"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
)

type FileController struct {
	uploader shared.BlobUploader
	now      func() time.Time
}

// NewFileController accepts a nil uploader. Uploads are disabled then.
func NewFileController(uploader shared.BlobUploader) *FileController {
	return &FileController{
		uploader: uploader,
		now:      time.Now,
	}
}

func (c *FileController) Enabled() bool {
	return c.uploader != nil
}

// Upload stores the multipart field "file" and returns its URL. The URL is
// attached to an application on submit.
func (c *FileController) Upload(ctx shared.Context) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(400, "missing file").WithInternal(err)
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(400, "could not read file").WithInternal(err)
	}
	defer file.Close()

	key := blobstorage.ObjectKey(c.now(), header.Filename)
	viewer := shared.GetViewer(ctx)
	url, err := c.uploader.Upload(ctx.Request().Context(), key, file, header.Size, func(percent int) {
		if percent%25 == 0 {
			slog.Debug("upload progress", "key", key, "percent", percent, "user", viewer.UserID)
		}
	})
	if err != nil {
		return echo.NewHTTPError(502, "could not store file").WithInternal(err)
	}

	return ctx.JSON(201, dtos.FileUploadDTO{
		URL:  url,
		Path: key,
		Size: header.Size,
	})
}
