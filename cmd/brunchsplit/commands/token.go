package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/brunchsplit/internal/auth"
)

func tokenCmd() *cobra.Command {
	var operator string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for serve (needs BRUNCH_TOKEN_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			jwtManager, err := auth.NewJWTManager(cfg.TokenSecret, cfg.TokenTTL)
			if err != nil {
				return fmt.Errorf("BRUNCH_TOKEN_SECRET: %w", err)
			}
			token, err := jwtManager.Generate(operator)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "host", "name recorded in the token")
	return cmd
}
