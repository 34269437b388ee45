package cli

import (
	"strings"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/spf13/cobra"
)

// signOutput is what the sign command prints
type signOutput struct {
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Canonical string            `json:"canonical"`
	Headers   map[string]string `json:"headers"`
}

func (a *app) newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign METHOD PATH",
		Short: "Print the signature headers for a request without sending it",
		Long: `Computes the canonical string and x-signature for METHOD and PATH, where
PATH is relative to the base URL (for example payment/rest/live/status/42).
Useful to debug signatures with curl.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateClient(); err != nil {
				return err
			}

			pem, err := a.cfg.ResolvePrivateKey()
			if err != nil {
				return err
			}

			keyPair, err := keys.DeriveFromPEM(pem)
			if err != nil {
				return err
			}

			method := strings.ToUpper(args[0])
			path := strings.TrimLeft(args[1], "/")
			versionedPath := signer.VersionedPath(path)

			signature, err := signer.NewDefaultRequestSigner().Sign(cmd.Context(), method, versionedPath, a.cfg.Identifier, keyPair)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), signOutput{
				Method:    method,
				URL:       strings.TrimRight(a.cfg.BaseURL, "/") + "/" + path,
				Canonical: signer.CanonicalString(method, a.cfg.Identifier, versionedPath),
				Headers: map[string]string{
					signer.HeaderID:        a.cfg.Identifier,
					signer.HeaderSignature: signature,
					"content-type":         client.DefaultContentType,
				},
			})
		},
	}
}
