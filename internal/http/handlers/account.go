package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/http/response"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accounts": accounts})
}

func (h *AccountHandler) GetMe(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no session"))
		return
	}
	acct, err := h.accountService.Get(c.Request.Context(), rd.AccountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, acct)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req services.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	acct, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, acct)
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid account id"))
		return
	}
	var req struct {
		services.AccountInput
		VerificationCode string `json:"verification_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	acct, err := h.accountService.Update(c.Request.Context(), id, req.AccountInput, req.VerificationCode)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, acct)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid account id"))
		return
	}
	var req struct {
		VerificationCode string `json:"verification_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.accountService.Delete(c.Request.Context(), id, req.VerificationCode); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
