package components

import (
	"paylink-vending/internal/infra/gateway"
	"paylink-vending/internal/infra/paylink"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/usecase/shared"

	"go.uber.org/fx"
)

// ClientModule provides the outbound HTTP clients: the payment provider and the chat gateway.
var ClientModule = fx.Module("client",
	fx.Provide(
		fx.Annotate(
			NewPaymentProvider,
			fx.As(new(shared.PaymentProvider)),
		),
		fx.Annotate(
			NewDispatcher,
			fx.As(new(shared.Dispatcher)),
		),
	),
)

func NewPaymentProvider(cfg config.Config) *paylink.Client {
	return paylink.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)
}

func NewDispatcher(cfg config.Config) *gateway.Dispatcher {
	return gateway.NewDispatcher(cfg.Gateway.BaseURL, cfg.Gateway.Token, cfg.Gateway.DispatchTimeout)
}
