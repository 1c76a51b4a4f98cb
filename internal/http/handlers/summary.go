package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) Dashboard(c *gin.Context) {
	summary, err := h.summaryService.Dashboard(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (h *SummaryHandler) Production(c *gin.Context) {
	rows, err := h.summaryService.Production(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rows": rows})
}
