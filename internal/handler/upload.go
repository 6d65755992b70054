package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/assets"
)

// Uploader relays a file to the asset host. Implemented by
// assets.Client.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, file io.Reader) (assets.UploadResult, error)
}

// UploadHandler forwards authenticated multipart uploads to the
// external asset host and returns the stable reference URL. Nothing is
// persisted here; resource services store the returned URL.
type UploadHandler struct {
	Assets Uploader
}

func NewUploadHandler(u Uploader) *UploadHandler { return &UploadHandler{Assets: u} }

// Relay handles POST /upload. Form fields: file (required), folder
// (optional, default farmer-profiles).
func (h *UploadHandler) Relay(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	folder := c.FormValue("folder")
	if folder == "" {
		folder = "farmer-profiles"
	}
	src, err := fh.Open()
	if err != nil {
		return internalError(c)
	}
	defer src.Close()

	res, err := h.Assets.Upload(c.Request().Context(), folder, fh.Filename, src)
	if err != nil {
		if errors.Is(err, assets.ErrNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"url":       res.URL,
		"public_id": res.PublicID,
	})
}
