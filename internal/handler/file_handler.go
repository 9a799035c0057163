package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invotab/internal/service"
)

// FileHandler handles upload endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/files/upload
// @Summary Upload invoice files
// @Description Upload one or more invoice/waybill files (PNG, JPG, JPEG, or PDF, max 16MB each). Unacceptable files are skipped.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload (repeatable field)"
// @Success 200 {object} APIResponse "Stored file metadata"
// @Failure 400 {object} APIResponse "No files in the request"
// @Router /files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_MULTIPART", "expected multipart form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES_PROVIDED", "files field is required")
		return
	}

	stored, err := h.fileService.Upload(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"files": stored,
		"count": len(stored),
	})
}
