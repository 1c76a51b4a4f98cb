package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type VerificationHandler struct {
	verificationService services.VerificationService
	accountService      services.AccountService
}

func NewVerificationHandler(verificationService services.VerificationService, accountService services.AccountService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		accountService:      accountService,
	}
}

// Request issues a code to the calling account's own email. The code gates
// the sensitive account operations for the next 60 seconds.
func (h *VerificationHandler) Request(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.verificationService.Request(c.Request.Context(), req.Email); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "expires_in": 60})
}

func (h *VerificationHandler) Confirm(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.verificationService.Confirm(c.Request.Context(), req.Email, req.Code); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
