package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/mocks"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUploadContext(t *testing.T, fileName string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	shared.SetViewer(ctx, newViewer(dtos.RoleApplicant))
	return ctx, rec
}

func TestFileController(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	wantKey := "applications/1700000000000-plan.pdf"

	t.Run("should be disabled without an uploader", func(t *testing.T) {
		assert.False(t, NewFileController(nil).Enabled())
	})

	t.Run("should upload the file under a timestamped key", func(t *testing.T) {
		uploader := mocks.NewBlobUploader(t)
		uploader.On("Upload", mock.Anything, wantKey, mock.Anything, int64(4), mock.Anything).
			Return("https://files.example.com/"+wantKey, nil)

		controller := NewFileController(uploader)
		controller.now = func() time.Time { return now }
		require.True(t, controller.Enabled())

		ctx, rec := newUploadContext(t, "plan.pdf", []byte("%PDF"))
		require.NoError(t, controller.Upload(ctx))
		assert.Equal(t, 201, rec.Code)

		var upload dtos.FileUploadDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))
		assert.Equal(t, wantKey, upload.Path)
		assert.Equal(t, "https://files.example.com/"+wantKey, upload.URL)
		assert.Equal(t, int64(4), upload.Size)
	})

	t.Run("should answer 502 if the storage fails", func(t *testing.T) {
		uploader := mocks.NewBlobUploader(t)
		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("bucket gone"))

		ctx, _ := newUploadContext(t, "plan.pdf", []byte("%PDF"))
		assert.Equal(t, 502, httpCode(t, NewFileController(uploader).Upload(ctx)))
	})

	t.Run("should answer 400 without a file", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPost, "{}", newViewer(dtos.RoleApplicant))
		assert.Equal(t, 400, httpCode(t, NewFileController(mocks.NewBlobUploader(t)).Upload(ctx)))
	})
}
