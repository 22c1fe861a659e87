package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "paylink-vending/internal/handler/dto/response"
	"paylink-vending/internal/handler/httperr"
	"paylink-vending/internal/usecase/commands"
	"paylink-vending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidLimit = errors.New("limit must be a non-negative integer")

type LedgerHandler struct {
	cmds      commands.LedgerCommands
	q         queries.LedgerQueries
	purchases queries.PurchaseQueries
}

func NewLedgerHandler(cmds commands.LedgerCommands, q queries.LedgerQueries, purchases queries.PurchaseQueries) *LedgerHandler {
	return &LedgerHandler{cmds: cmds, q: q, purchases: purchases}
}

// @Summary Get link status
// @Description Ledger state of a payment link, by link ID.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param link path string true "Link ID"
// @Success 200 {object} resdto.LinkStatusResponse
// @Router /tenants/{tenant}/links/{link} [get]
func (h *LedgerHandler) GetLink(c *gin.Context) {
	view, err := h.q.Status(c.Request.Context(), c.Param("tenant"), c.Param("link"))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLinkStatusView(view))
}

// @Summary Mark link consumed
// @Description Record a link as consumed without claiming it, e.g. after a refund made by hand.
// @Tags ledger
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param link path string true "Link ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Router /tenants/{tenant}/links/{link}/consumed [put]
func (h *LedgerHandler) MarkConsumed(c *gin.Context) {
	if err := h.cmds.MarkConsumed(c.Request.Context(), c.Param("tenant"), c.Param("link")); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List purchases needing reconciliation
// @Description Purchases whose funds were claimed but whose goods were not delivered. Newest first.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param limit query int false "Max records (default 50, max 200)"
// @Param cursor query string false "next_cursor from the previous page"
// @Success 200 {object} resdto.PurchaseRecordPageResponse
// @Failure 400 {object} httperr.Response
// @Router /tenants/{tenant}/reconciliations [get]
func (h *LedgerHandler) ListReconciliations(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	page, err := h.purchases.ListReconciliation(c.Request.Context(), c.Param("tenant"), c.Query("cursor"), limit)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseRecordPage(page))
}

// @Summary List completed purchases
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param limit query int false "Max records (default 50, max 200)"
// @Param cursor query string false "next_cursor from the previous page"
// @Success 200 {object} resdto.PurchaseRecordPageResponse
// @Failure 400 {object} httperr.Response
// @Router /tenants/{tenant}/purchases [get]
func (h *LedgerHandler) ListPurchases(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	page, err := h.purchases.ListCompleted(c.Request.Context(), c.Param("tenant"), c.Query("cursor"), limit)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseRecordPage(page))
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidLimit, "Invalid limit", raw)
		return 0, false
	}
	return limit, true
}
