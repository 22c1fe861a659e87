package api

import (
	"net/http"

	"paylink-vending/internal/domain/purchase"
	reqdto "paylink-vending/internal/handler/dto/request"
	resdto "paylink-vending/internal/handler/dto/response"
	"paylink-vending/internal/handler/httperr"
	"paylink-vending/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const eventStreamMIME = "text/event-stream"

type PurchaseHandler struct {
	cmds commands.PurchaseCommands
}

func NewPurchaseHandler(cmds commands.PurchaseCommands) *PurchaseHandler {
	return &PurchaseHandler{cmds: cmds}
}

// @Summary Submit purchase
// @Description Verify a payment link, claim it and deliver the product. Business outcomes are reported
// @Description in the body with status 200. Send Accept: text/event-stream to receive progress events.
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param request body reqdto.PurchaseRequest true "Purchase request"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tenants/{tenant}/purchases [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req reqdto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	// an invalid intent is reported and logged by the command as an invalid_intent outcome
	intent, _ := req.ToDomain(c.Param("tenant"))

	if c.GetHeader("Accept") == eventStreamMIME {
		h.stream(c, intent)
		return
	}

	var progress []resdto.ProgressStep
	result := h.cmds.Purchase(c.Request.Context(), intent, func(state purchase.State, msg string) {
		progress = append(progress, resdto.ProgressStep{State: state.String(), Message: msg})
	})
	c.JSON(http.StatusOK, resdto.FromPurchaseResult(result, progress))
}

func (h *PurchaseHandler) stream(c *gin.Context, intent purchase.Intent) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	var progress []resdto.ProgressStep
	result := h.cmds.Purchase(c.Request.Context(), intent, func(state purchase.State, msg string) {
		step := resdto.ProgressStep{State: state.String(), Message: msg}
		progress = append(progress, step)
		c.SSEvent("progress", step)
		c.Writer.Flush()
	})
	c.SSEvent("result", resdto.FromPurchaseResult(result, progress))
	c.Writer.Flush()
}
