package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func attachmentHeaders(c *gin.Context, stem string) {
	filename := fmt.Sprintf("%s-%s.csv", stem, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (h *ExportHandler) Evaluations(c *gin.Context) {
	attachmentHeaders(c, "evaluations")
	if err := h.exportService.WriteEvaluationsCSV(c.Request.Context(), c.Writer, c.Query("from"), c.Query("to")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *ExportHandler) Production(c *gin.Context) {
	attachmentHeaders(c, "production")
	if err := h.exportService.WriteProductionCSV(c.Request.Context(), c.Writer, c.Query("from"), c.Query("to")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
