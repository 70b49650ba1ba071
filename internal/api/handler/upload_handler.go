package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// UploadHandler accepts multipart image uploads for listings.
type UploadHandler struct {
	uploads ports.UploadService
}

func NewUploadHandler(uploads ports.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Store handles POST /v1/admin/uploads. Expects a multipart form with the
// file under the "image" field. The type check sniffs the file content;
// the declared Content-Type and the original filename are ignored.
//
// @Summary      Upload a listing image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file (jpeg, png, gif or webp, max 5MB)"
// @Success      201    {object}  uploadResponse
// @Failure      400    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /v1/admin/uploads [post]
func (h *UploadHandler) Store(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "campo file 'image' mancante")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := h.uploads.Store(c.Request().Context(), f, fh.Size)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUpload), errors.Is(err, domain.ErrUploadTooBig):
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.UploadsTotal.WithLabelValues("failed").Inc()
		}
		return err
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return c.JSON(http.StatusCreated, uploadResponse{
		Success:  true,
		Filename: res.Filename,
		Path:     res.Path,
		Size:     res.Size,
		MimeType: res.MimeType,
	})
}
