package components

import (
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/pkg/vault"
	"paylink-vending/internal/usecase"
	"paylink-vending/internal/usecase/commands"
	"paylink-vending/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewVault,
		fx.As(new(commands.CredentialSealer)),
	),
	NewPurchaseSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSessionCommands,
		commands.NewPurchaseCommands,
		commands.NewInventoryCommands,
		commands.NewLedgerCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewProductQueries,
		queries.NewLedgerQueries,
		queries.NewPurchaseQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewVault(cfg config.Config) *vault.Vault {
	return vault.New(cfg.Vault.Passphrase)
}

func NewPurchaseSettings(cfg config.Config) commands.PurchaseSettings {
	return commands.PurchaseSettings{
		ProviderTimeout: cfg.Provider.Timeout,
		DispatchTimeout: cfg.Gateway.DispatchTimeout,
		ClaimLease:      cfg.Storage.ClaimLease,
	}
}
