package main

import (
	"fmt"
	"log/slog"
	"os"

	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/repository"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage a tenant's payment-provider session",
	}
	cmd.AddCommand(sessionRegisterCmd())
	return cmd
}

func sessionRegisterCmd() *cobra.Command {
	var tenant, access, refresh string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Seal a provider token pair into the PostgreSQL session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := session.NewTokenPair(access, refresh)
			if err != nil {
				return err
			}
			v, err := loadVault()
			if err != nil {
				return err
			}
			dbCfg, err := config.LoadDBConfig()
			if err != nil {
				return err
			}
			pool, cleanup, err := db.Connect(dbCfg)
			if err != nil {
				return err
			}
			defer cleanup()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			// Register never calls the provider
			sessions := commands.NewSessionCommands(
				repository.NewSessionRepository(uow.NewPostgresUoW(pool)),
				nil, v, clock.NewRealClock(), logger,
			)
			if err := sessions.Register(cmd.Context(), tenant, pair); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session registered for tenant %s\n", tenant)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tenant, "tenant", "t", "", "Tenant ID")
	cmd.Flags().StringVar(&access, "access-token", "", "Provider access token")
	cmd.Flags().StringVar(&refresh, "refresh-token", "", "Provider refresh token")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("access-token")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCfg, err := config.LoadDBConfig()
			if err != nil {
				return err
			}
			pool, cleanup, err := db.Connect(dbCfg)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
