package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// maxUploadBytes caps a single uploaded file.
const maxUploadBytes = 10 << 20

// UploadHandler stores and removes uploaded files (portfolio images and
// invoice attachments). Writes are admin only.
type UploadHandler struct {
	store ports.BlobStore
}

func NewUploadHandler(store ports.BlobStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadResponse struct {
	URL string `json:"url"`
}

type deleteUploadRequest struct {
	URL string `json:"url" validate:"required"`
}

// Upload accepts a multipart file and returns its public URL.
//
// @Summary      Upload a file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to store"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return domain.ErrNotAuthenticated
	}
	if !id.IsAdmin() {
		return domain.ErrForbidden
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return domain.NewValidationError("file exceeds the 10MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := h.store.Put(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

// Delete removes a stored file by URL. Deleting a URL that no longer exists
// succeeds.
//
// @Summary      Delete an uploaded file
// @Tags         uploads
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deleteUploadRequest  true  "URL to remove"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/uploads [delete]
func (h *UploadHandler) Delete(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return domain.ErrNotAuthenticated
	}
	if !id.IsAdmin() {
		return domain.ErrForbidden
	}

	var req deleteUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.store.Delete(c.Request().Context(), req.URL); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
