package cli

import (
	"fmt"
	"os"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/spf13/cobra"
)

func (a *app) newKeygenCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a merchant key pair for the sandbox",
		Long: `Generates an Ed25519 key pair. The private key is written as PKCS#8 PEM
to --out (or stdout); the public key is printed in base64.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPair, pem, err := keys.GenerateKeyPair()
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), pem)
			} else if err := os.WriteFile(out, []byte(pem), 0600); err != nil {
				return fmt.Errorf("failed to write private key: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "public key (%s): %s\n", keyPair.ID(), keyPair.PublicKeyBase64())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the private key to this file")
	return cmd
}
