package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type ProductionHandler struct {
	productionService services.ProductionService
}

func NewProductionHandler(productionService services.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

func (h *ProductionHandler) ListLogs(c *gin.Context) {
	logs, err := h.productionService.ListLogs(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"logs": logs})
}

func (h *ProductionHandler) SaveLog(c *gin.Context) {
	var req services.ProductionLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := h.productionService.SaveLog(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func (h *ProductionHandler) DeleteLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid log id"))
		return
	}
	if err := h.productionService.DeleteLog(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *ProductionHandler) ListTargets(c *gin.Context) {
	targets, err := h.productionService.ListTargets(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"targets": targets})
}

func (h *ProductionHandler) SaveTarget(c *gin.Context) {
	var req services.ProjectTargetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	target, err := h.productionService.SaveTarget(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, target)
}

// DefaultTarget seeds the log form with the project's default.
func (h *ProductionHandler) DefaultTarget(c *gin.Context) {
	project := c.Query("project")
	if project == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("project query parameter is required"))
		return
	}
	target, err := h.productionService.DefaultTargetFor(c.Request.Context(), project)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project, "default_target": target})
}
