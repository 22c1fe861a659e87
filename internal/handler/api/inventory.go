package api

import (
	"net/http"

	reqdto "paylink-vending/internal/handler/dto/request"
	resdto "paylink-vending/internal/handler/dto/response"
	"paylink-vending/internal/handler/httperr"
	"paylink-vending/internal/usecase/commands"
	"paylink-vending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	cmds commands.InventoryCommands
	q    queries.ProductQueries
}

func NewInventoryHandler(cmds commands.InventoryCommands, q queries.ProductQueries) *InventoryHandler {
	return &InventoryHandler{cmds: cmds, q: q}
}

// @Summary List products
// @Description List a tenant's products with their stock display. Credentials are never included.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Success 200 {array} resdto.ProductResponse
// @Failure 401 {object} map[string]string
// @Router /tenants/{tenant}/products [get]
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	views, err := h.q.List(c.Request.Context(), c.Param("tenant"))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductList(views))
}

// @Summary Get product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /tenants/{tenant}/products/{id} [get]
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("tenant"), c.Param("id"))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Create or replace product
// @Description Upsert a product. The stock given here replaces the current stock, credential pool included.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param id path string true "Product ID"
// @Param request body reqdto.UpsertProductRequest true "Product"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tenants/{tenant}/products/{id} [put]
func (h *InventoryHandler) PutProduct(c *gin.Context) {
	var req reqdto.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	tenant, id := c.Param("tenant"), c.Param("id")
	p, err := req.ToDomain(tenant, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product", err.Error())
		return
	}
	if err := h.cmds.SaveProduct(c.Request.Context(), p); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Restock credential pool
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param id path string true "Product ID"
// @Param request body reqdto.RestockRequest true "Credentials to append"
// @Success 200 {object} resdto.RestockResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tenants/{tenant}/products/{id}/credentials [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req reqdto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id := c.Param("id")
	size, err := h.cmds.Restock(c.Request.Context(), c.Param("tenant"), id, req.ToDomain())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RestockResponse{ProductID: id, PoolSize: size})
}

// @Summary Take stock manually
// @Description Allocate units outside a purchase, e.g. for a manual replacement. Returns any credentials taken.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param id path string true "Product ID"
// @Param request body reqdto.AllocateRequest true "Quantity"
// @Success 200 {object} resdto.AllocationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tenants/{tenant}/products/{id}/allocations [post]
func (h *InventoryHandler) Allocate(c *gin.Context) {
	var req reqdto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	alloc, err := h.cmds.Allocate(c.Request.Context(), c.Param("tenant"), c.Param("id"), req.Quantity)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAllocation(alloc))
}

// @Summary Create or replace catalog
// @Tags catalogs
// @Accept json
// @Security BearerAuth
// @Param tenant path string true "Tenant ID"
// @Param id path string true "Catalog ID"
// @Param request body reqdto.UpsertCatalogRequest true "Catalog"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Router /tenants/{tenant}/catalogs/{id} [put]
func (h *InventoryHandler) PutCatalog(c *gin.Context) {
	var req reqdto.UpsertCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cat, err := req.ToDomain(c.Param("tenant"), c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid catalog", err.Error())
		return
	}
	if err := h.cmds.SaveCatalog(c.Request.Context(), cat); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
