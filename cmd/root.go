package cmd

import (
	"fmt"
	"os"

	"facturacion-admin/config"
	"facturacion-admin/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "facturacion-admin",
	Short: "Merchant billing administration for the payment gateway",
	Long: `facturacion-admin serves the merchant billing administration pages
and the billing JSON API of the payment gateway.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logger.Setup(cfg.GetLoggerConfig())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
