package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
)

type HealthHandler struct {
	backend store.Backend
}

func NewHealthHandler(backend store.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.backend != nil {
		if err := h.backend.Ping(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
