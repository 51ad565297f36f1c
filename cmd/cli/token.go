package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pokedex/internal/auth"
	"pokedex/pkg/logging"
	"pokedex/pkg/utils"
)

func newTokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := utils.LoadAuthConfig()
			if cfg.DevSecret {
				logging.Default().Warn().Msg("POKEDEX_JWT_SECRET is unset; signing with the public dev secret")
			}
			if ttl <= 0 {
				ttl = cfg.JWTDuration
			}
			tokens := auth.TokenService{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer, Duration: ttl}

			tok, exp, err := tokens.Sign(auth.OperatorSubject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default from jwt.ttl)")
	return cmd
}
