// Copyright (C) 2025 Mirotech Team
//
// This file is part of miropay-woocommerce-sdk.
//
// miropay-woocommerce-sdk is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// miropay-woocommerce-sdk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with miropay-woocommerce-sdk.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sandbox"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"go.uber.org/zap"
)

const merchantID = "merchant-example"

// This example walks a payment through its whole life against an in-process
// sandbox processor: create, inspect, pay on the hosted page, then try to
// cancel a payment that is already settled.
func main() {
	fmt.Println("Miropay Go SDK - Simple Client Example")
	fmt.Println("======================================")

	ctx := context.Background()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Step 1: merchant credentials
	fmt.Println("\n1. Generating merchant key pair...")
	keyPair, privateKeyPEM, err := keys.GenerateKeyPair()
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}
	fmt.Printf("   Merchant:   %s\n", merchantID)
	fmt.Printf("   Key ID:     %s\n", keyPair.ID())
	fmt.Printf("   Public key: %s\n", keyPair.PublicKeyBase64())

	// Step 2: processor
	fmt.Println("\n2. Starting sandbox processor...")
	box := sandbox.New(sandbox.WithLogger(logger))
	if err := box.RegisterMerchantKeyPair(merchantID, keyPair); err != nil {
		log.Fatalf("Failed to register merchant: %v", err)
	}
	server := httptest.NewServer(box.Handler())
	defer server.Close()
	fmt.Printf("   Listening on %s\n", server.URL)

	// Step 3: SDK
	fmt.Println("\n3. Creating signed client...")
	payments, err := sdk.NewFromPEM(client.Config{
		BaseURL:    server.URL + "/v1",
		Identifier: merchantID,
		Logger:     logger,
	}, privateKeyPEM, sdk.ModeTest, sdk.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create SDK: %v", err)
	}
	fmt.Printf("   Mode: %s\n", payments.Mode())

	// Step 4: create
	fmt.Println("\n4. Creating payment...")
	payment, err := payments.CreatePayment(ctx, &sdk.CreatePaymentRequest{
		Amount:               "25000",
		Title:                "Order #1001",
		Description:          "2 x Coffee beans 1kg",
		RedirectURL:          "https://shop.example.com/checkout/done",
		Gateways:             []sdk.Gateway{sdk.GatewayZain, sdk.GatewayFIB},
		CollectCustomerEmail: true,
	})
	if err != nil {
		log.Fatalf("Failed to create payment: %v", err)
	}
	printStatus(payment)

	// Step 5: customer pays
	fmt.Println("\n5. Paying on the hosted page with FIB...")
	resp, err := http.Post(payment.RedirectURL+"?via=FIB", "application/json", nil)
	if err != nil {
		log.Fatalf("Failed to pay: %v", err)
	}
	resp.Body.Close()
	fmt.Printf("   Hosted page answered %s\n", resp.Status)

	// Step 6: status
	fmt.Println("\n6. Checking status...")
	payment, err = payments.GetStatus(ctx, payment.ReferenceCode)
	if err != nil {
		log.Fatalf("Failed to get status: %v", err)
	}
	printStatus(payment)

	// Step 7: cancel a paid payment
	fmt.Println("\n7. Cancelling the paid payment...")
	if _, err := payments.Cancel(ctx, payment.ReferenceCode); err != nil {
		fmt.Printf("   ⚠️  Expected error: %v\n", err)
	}

	// Step 8: keys
	fmt.Println("\n8. Fetching public keys...")
	publicKeys, err := payments.GetPublicKeys(ctx)
	if err != nil {
		log.Fatalf("Failed to get public keys: %v", err)
	}
	for _, k := range publicKeys {
		fmt.Printf("   %s: %s\n", k.ID, k.Key)
	}

	fmt.Println("\n✅ Example completed successfully!")
}

func printStatus(status *sdk.PaymentStatus) {
	encoded, err := json.MarshalIndent(status, "   ", "  ")
	if err != nil {
		log.Fatalf("Failed to encode status: %v", err)
	}
	fmt.Printf("   %s\n", encoded)
}
