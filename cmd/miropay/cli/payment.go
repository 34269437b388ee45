package cli

import (
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/spf13/cobra"
)

func (a *app) newCreateCmd() *cobra.Command {
	req := &sdk.CreatePaymentRequest{}
	var amount string
	var gateways []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a hosted payment",
		Long: `Creates a payment and prints its status. Send the customer to the
returned redirectUrl to pay.`,
		Example: `  miropay create --amount 3000 --title "Order #1001" \
    --description "2 items" --redirect-url https://shop.example.com/done \
    --gateway ZAIN --gateway FIB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSDK()
			if err != nil {
				return err
			}

			req.Amount = sdk.Amount(amount)
			req.Gateways = make([]sdk.Gateway, 0, len(gateways))
			for _, g := range gateways {
				req.Gateways = append(req.Gateways, sdk.Gateway(g))
			}

			status, err := s.CreatePayment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&amount, "amount", "", "amount to charge")
	flags.StringVar(&req.Title, "title", "", "payment title")
	flags.StringVar(&req.Description, "description", "", "payment description")
	flags.StringVar(&req.RedirectURL, "redirect-url", "", "where the customer returns after paying")
	flags.StringArrayVar(&gateways, "gateway", nil, "offered gateway, repeatable (ZAIN, FIB, FAST_PAY); none offers all")
	flags.BoolVar(&req.CollectCustomerEmail, "collect-email", false, "ask the customer for an email address")
	flags.BoolVar(&req.CollectCustomerPhoneNumber, "collect-phone", false, "ask the customer for a phone number")
	flags.BoolVar(&req.CollectFeeFromCustomer, "collect-fee", false, "charge the processing fee to the customer")

	return cmd
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status REFERENCE_CODE",
		Short: "Show the status of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSDK()
			if err != nil {
				return err
			}

			status, err := s.GetStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func (a *app) newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel REFERENCE_CODE",
		Short: "Cancel a pending payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSDK()
			if err != nil {
				return err
			}

			status, err := s.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func (a *app) newPublicKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "public-keys",
		Short: "List the processor's public keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSDK()
			if err != nil {
				return err
			}

			publicKeys, err := s.GetPublicKeys(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), publicKeys)
		},
	}
}
