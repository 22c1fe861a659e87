package components

import (
	"paylink-vending/internal/handler"
	"paylink-vending/internal/handler/api"
	"paylink-vending/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPurchaseHandler,
		api.NewInventoryHandler,
		api.NewLedgerHandler,
		api.NewSessionHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	purchase *api.PurchaseHandler,
	inventory *api.InventoryHandler,
	ledger *api.LedgerHandler,
	session *api.SessionHandler,
) handler.Handlers {
	return handler.Handlers{
		Purchase:  purchase,
		Inventory: inventory,
		Ledger:    ledger,
		Session:   session,
	}
}
