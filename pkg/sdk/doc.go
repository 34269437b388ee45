// Package sdk implements the Miropay payment operations on top of the
// signing client.
//
// # Operations
//
//   - CreatePayment: POST payment/rest/<mode>/create
//   - GetStatus: GET payment/rest/<mode>/status/<referenceCode>
//   - Cancel: PATCH payment/rest/<mode>/cancel/<referenceCode>
//   - GetPublicKeys: GET payment/rest/<mode>/get-public-keys
//
// The mode is "live" or "test" and is fixed per SDK.
//
// # Basic Usage
//
//	s, err := sdk.NewFromPEM(client.Config{
//	    BaseURL:    "https://api.pallawan.com/v1",
//	    Identifier: merchantID,
//	}, privateKeyPEM, sdk.ModeLive)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payment, err := s.CreatePayment(ctx, &sdk.CreatePaymentRequest{
//	    Amount:      "3000",
//	    Title:       "Order #1001",
//	    Description: "2 items",
//	    RedirectURL: "https://shop.example.com/checkout/done",
//	    Gateways:    []sdk.Gateway{sdk.GatewayZain, sdk.GatewayFIB},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// send the customer to payment.RedirectURL
//
// # Errors
//
// Requests are validated before they are signed. Invalid input returns a
// *ValidationError and nothing is sent. A non-2xx answer becomes an
// *APIError; transport failures are returned as *client.TransportError,
// wrapped.
package sdk
