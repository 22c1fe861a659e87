package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/handler/api"
	"paylink-vending/internal/handler/middleware"
	"paylink-vending/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Purchase  *api.PurchaseHandler
	Inventory *api.InventoryHandler
	Ledger    *api.LedgerHandler
	Session   *api.SessionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	gateway := authMiddleware.RequireRoleAtLeast(operator.RoleGateway)
	admin := authMiddleware.RequireRoleAtLeast(operator.RoleAdmin)

	tenants := engine.Group("/api/tenants/:tenant")
	tenants.Use(authMiddleware.RequireAuth(), authMiddleware.RequireTenant("tenant"))
	{
		addRoutes(tenants, []route{
			{Method: http.MethodPost, Path: "/purchases", Handler: h.Purchase.Purchase, Mw: []gin.HandlerFunc{gateway}},
			{Method: http.MethodGet, Path: "/purchases", Handler: h.Ledger.ListPurchases},

			{Method: http.MethodGet, Path: "/products", Handler: h.Inventory.ListProducts},
			{Method: http.MethodGet, Path: "/products/:id", Handler: h.Inventory.GetProduct},
			{Method: http.MethodPut, Path: "/products/:id", Handler: h.Inventory.PutProduct, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/products/:id/credentials", Handler: h.Inventory.Restock, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/products/:id/allocations", Handler: h.Inventory.Allocate, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPut, Path: "/catalogs/:id", Handler: h.Inventory.PutCatalog, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodGet, Path: "/links/:link", Handler: h.Ledger.GetLink},
			{Method: http.MethodPut, Path: "/links/:link/consumed", Handler: h.Ledger.MarkConsumed, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/reconciliations", Handler: h.Ledger.ListReconciliations, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodPut, Path: "/session", Handler: h.Session.Register, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/session/refresh", Handler: h.Session.Refresh, Mw: []gin.HandlerFunc{admin}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
