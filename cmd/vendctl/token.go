package main

import (
	"fmt"
	"time"

	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		role     string
		tenant   string
		subject  string
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator API token (reads JWT_SECRET)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := operator.NewRole(role)
			if err != nil {
				return fmt.Errorf("role %q: %w", role, err)
			}
			scope, err := operator.NewTenantScope(tenant)
			if err != nil {
				return fmt.Errorf("tenant %q: %w", tenant, err)
			}
			cfg, err := config.LoadJWTConfig()
			if err != nil {
				return err
			}
			if duration == 0 {
				if duration, err = time.ParseDuration(cfg.Duration); err != nil {
					return fmt.Errorf("invalid JWT_DURATION: %w", err)
				}
			}
			token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(uuid.New(), r, scope, subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", operator.RoleGateway.String(), "Role (viewer, gateway, admin)")
	cmd.Flags().StringVarP(&tenant, "tenant", "t", "", `Tenant the token is limited to ("*" for every tenant)`)
	_ = cmd.MarkFlagRequired("tenant")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Informational subject, e.g. the gateway's name")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Token lifetime (default JWT_DURATION)")

	return cmd
}
