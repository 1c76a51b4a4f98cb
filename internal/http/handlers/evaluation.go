package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type EvaluationHandler struct {
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

func (h *EvaluationHandler) List(c *gin.Context) {
	records, err := h.evaluationService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"records": records})
}

func (h *EvaluationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid record id"))
		return
	}
	record, err := h.evaluationService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

func (h *EvaluationHandler) ErrorTypes(c *gin.Context) {
	response.RespondOK(c, gin.H{"error_types": h.evaluationService.ErrorTypes()})
}

func (h *EvaluationHandler) GenerateSamples(c *gin.Context) {
	var req struct {
		RangeStart string `json:"range_start"`
		RangeEnd   string `json:"range_end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	samples, err := h.evaluationService.GenerateSamples(c.Request.Context(), req.RangeStart, req.RangeEnd)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"samples": samples})
}

// Preview is the dry-run half of the two-phase submission: it validates and
// scores without writing, returning the confirmation summary.
func (h *EvaluationHandler) Preview(c *gin.Context) {
	var req services.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	summary, err := h.evaluationService.Preview(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (h *EvaluationHandler) Submit(c *gin.Context) {
	var req services.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	record, err := h.evaluationService.Submit(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

func (h *EvaluationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid record id"))
		return
	}
	if err := h.evaluationService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
