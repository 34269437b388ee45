package cli

import (
	"errors"
	"fmt"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/config"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sandbox"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newSandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run an in-memory processor for local development",
		Long: `Serves the processor API on --addr until interrupted.

The configured merchant (x-id and private key) is registered with the
sandbox. Without a configured key a fresh key pair is generated and its PEM
printed, so a second terminal can talk to the sandbox right away.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box := sandbox.New(sandbox.WithLogger(a.logger))

			identifier := a.cfg.Identifier
			if identifier == "" {
				identifier = "sandbox-merchant"
			}

			var keyPair *keys.KeyPair
			pem, err := a.cfg.ResolvePrivateKey()
			switch {
			case err == nil:
				keyPair, err = keys.DeriveFromPEM(pem)
				if err != nil {
					return err
				}
			case errors.Is(err, config.ErrMissingPrivateKey):
				keyPair, pem, err = keys.GenerateKeyPair()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "merchant %s, private key:\n%s", identifier, pem)
			default:
				return err
			}

			if err := box.RegisterMerchantKeyPair(identifier, keyPair); err != nil {
				return err
			}

			a.logger.Info("starting sandbox",
				zap.String("addr", a.cfg.Sandbox.Addr),
				zap.String("merchant", identifier),
			)
			return box.ListenAndServe(cmd.Context(), a.cfg.Sandbox.Addr, nil)
		},
	}

	cmd.Flags().String("addr", "127.0.0.1:8080", "listen address")
	_ = a.v.BindPFlag(config.KeySandboxAddr, cmd.Flags().Lookup("addr"))

	return cmd
}
