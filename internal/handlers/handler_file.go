package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// fileHandler handles invoice file upload and download.
type fileHandler struct {
	fileService portssvc.FileSvcFacade
}

func newFileHandler(fs portssvc.FileSvcFacade) *fileHandler {
	return &fileHandler{fileService: fs}
}

// registerFileRoutes registers routes related to invoice files.
func registerFileRoutes(rg *gin.RouterGroup, fileService portssvc.FileSvcFacade) {
	h := newFileHandler(fileService)

	files := rg.Group("/files")
	{
		files.POST("", h.uploadFile)
		files.GET("/:hash", h.downloadFile)
	}
}

// uploadFile godoc
// @Summary Upload an invoice file
// @Description Stores the file in the content-addressable blob store. Re-uploading identical bytes returns the existing record.
// @Tags files
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Invoice document"
// @Success 201 {object} dto.FileResponse
// @Failure 400 {object} map[string]string "Missing or oversized file"
// @Security BearerAuth
// @Router /files [post]
func (h *fileHandler) uploadFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	uploaderPublicKey, ok := middleware.GetPublicKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'file' form field is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	file, err := h.fileService.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, uploaderPublicKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upload file", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileResponse(file))
}

// downloadFile godoc
// @Summary Download an invoice file
// @Tags files
// @Produce  application/octet-stream
// @Param   hash path string true "Content hash"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "File not found"
// @Security BearerAuth
// @Router /files/{hash} [get]
func (h *fileHandler) downloadFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hash := c.Param("hash")

	file, data, err := h.fileService.Download(c.Request.Context(), hash)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		default:
			logger.Error("Failed to download file", slog.String("hash", hash), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download file"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
