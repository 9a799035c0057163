package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invotab/internal/service"
	"invotab/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExtractHandler handles batch processing, dataset, and export endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
	fileService    service.FileService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService, fileService service.FileService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService, fileService: fileService}
}

// processRequest is the body of a process call.
type processRequest struct {
	FileKeys []string `json:"file_keys"`
}

// Process handles POST /api/v1/extract/process
// @Summary Process uploaded files
// @Description Extract each stored file through the AI service, flatten the results, and replace the current dataset
// @Tags extract
// @Accept json
// @Produce json
// @Param request body processRequest true "Stored file keys to process"
// @Success 200 {object} APIResponse "Processed count, row count, and stats"
// @Failure 400 {object} APIResponse "Empty file list"
// @Router /extract/process [post]
func (h *ExtractHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.extractService.ProcessBatch(c.Request.Context(), req.FileKeys)
	if err != nil {
		HandleError(c, err)
		return
	}

	failed := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failed = append(failed, f.Key)
	}

	RespondOK(c, gin.H{
		"processed":  result.Processed,
		"total_rows": len(result.Rows),
		"failed":     failed,
		"stats":      h.extractService.Stats(),
	})
}

// Data handles GET /api/v1/extract/data
// @Summary Get extracted data
// @Description Return the current flattened dataset
// @Tags extract
// @Produce json
// @Success 200 {object} APIResponse "Rows and count"
// @Router /extract/data [get]
func (h *ExtractHandler) Data(c *gin.Context) {
	rows := h.extractService.Rows()
	RespondOK(c, gin.H{
		"data":  rows,
		"count": len(rows),
	})
}

// Export handles GET /api/v1/extract/export
// @Summary Export dataset as XLSX
// @Description Download the current dataset as a timestamped XLSX workbook
// @Tags extract
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "XLSX attachment"
// @Failure 400 {object} APIResponse "Dataset is empty"
// @Router /extract/export [get]
func (h *ExtractHandler) Export(c *gin.Context) {
	rows := h.extractService.Rows()
	if len(rows) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_DATASET", "no extracted data available")
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, rows); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] export failed: %v", requestID, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to build workbook")
		return
	}

	filename := xlsxexport.BuildFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Clear handles POST /api/v1/extract/clear
// @Summary Clear extracted data
// @Description Empty the dataset and best-effort delete all stored uploads
// @Tags extract
// @Produce json
// @Success 200 {object} APIResponse
// @Router /extract/clear [post]
func (h *ExtractHandler) Clear(c *gin.Context) {
	h.extractService.Clear()

	if err := h.fileService.Clear(c.Request.Context()); err != nil {
		// Upload sweep failures are not fatal to a clear.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] clearing uploads: %v", requestID, err)
	}

	RespondOK(c, gin.H{"cleared": true})
}
