package bootstrap

import (
	"paylink-vending/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	fx.Provide(NewPoolOpener),
	components.PersistenceModule,
	components.ClientModule,
	components.UseCaseModule,
	components.HandlerModule,
)
