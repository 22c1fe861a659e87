package api

import (
	"net/http"

	reqdto "paylink-vending/internal/handler/dto/request"
	"paylink-vending/internal/handler/httperr"
	"paylink-vending/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	cmds commands.SessionCommands
}

func NewSessionHandler(cmds commands.SessionCommands) *SessionHandler {
	return &SessionHandler{cmds: cmds}
}

// @Summary Register provider session
// @Description Store the shop's payment-provider tokens. They are sealed before they reach storage.
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param request body reqdto.RegisterSessionRequest true "Provider tokens"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /tenants/{tenant}/session [put]
func (h *SessionHandler) Register(c *gin.Context) {
	var req reqdto.RegisterSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	pair, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Register(c.Request.Context(), c.Param("tenant"), pair); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Refresh provider session
// @Description Force a token refresh with the stored refresh token.
// @Tags session
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Success 204
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /tenants/{tenant}/session/refresh [post]
func (h *SessionHandler) Refresh(c *gin.Context) {
	if err := h.cmds.Refresh(c.Request.Context(), c.Param("tenant")); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
