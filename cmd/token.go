package cmd

import (
	"fmt"
	"time"

	"facturacion-admin/middlewares"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an API token for an operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateAuth(); err != nil {
			return err
		}
		token, err := middlewares.GenerateJWT([]byte(cfg.JWTSecret), tokenSubject, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "operator id (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "operator", "operator role")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}
