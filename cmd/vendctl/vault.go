package main

import (
	"bytes"
	"fmt"
	"io"

	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/pkg/vault"

	"github.com/spf13/cobra"
)

func loadVault() (*vault.Vault, error) {
	cfg, err := config.LoadVaultConfig()
	if err != nil {
		return nil, err
	}
	return vault.New(cfg.Passphrase), nil
}

func sealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal",
		Short: "Seal stdin with VAULT_PASSPHRASE and print the blob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := loadVault()
			if err != nil {
				return err
			}
			plaintext, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			blob, err := v.Seal(bytes.TrimRight(plaintext, "\r\n"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), blob)
			return nil
		},
	}
}

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [blob]",
		Short: "Open a sealed blob and print the plaintext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadVault()
			if err != nil {
				return err
			}
			plaintext, err := v.Open(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(plaintext))
			return nil
		},
	}
}
