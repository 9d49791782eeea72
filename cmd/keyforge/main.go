package main

import (
	"os"

	"github.com/spf13/cobra"

	"keyforge/internal/interfaces/cli/migrate"
	"keyforge/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keyforge",
		Short: "Keyforge - license key issuance and reseller management",
		Long:  `Keyforge is a license key backend: owners register apps and issue keys, resellers manage delegated quotas, and client applications redeem and validate licenses over a REST API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
