// Package sandbox implements an in-memory Miropay processor.
//
// The sandbox serves the same REST routes as the processor, behind the
// signature middleware, so the client, the SDK and the CLI can be exercised
// end to end without network access or real money:
//
//	POST  /v1/payment/rest/{mode}/create
//	GET   /v1/payment/rest/{mode}/status/{referenceCode}
//	PATCH /v1/payment/rest/{mode}/cancel/{referenceCode}
//	GET   /v1/payment/rest/{mode}/get-public-keys
//
// It also serves a few routes that do not exist on the processor:
//
//	GET  /pay/{referenceCode}            hosted payment page, as JSON
//	POST /pay/{referenceCode}?via=FIB    simulate the customer paying
//	GET  /metrics                        prometheus metrics
//	GET  /healthz                        liveness
//
// # Usage
//
//	box := sandbox.New(sandbox.WithLogger(logger))
//	if err := box.RegisterMerchant("merchant-1", keyPair.PublicKey()); err != nil {
//	    log.Fatal(err)
//	}
//
//	ts := httptest.NewServer(box.Handler())
//	defer ts.Close()
//	// point a client at ts.URL + "/v1"
//
// Payments are scoped to the merchant and mode that created them. Looking up
// another merchant's payment, or a live payment in test mode, answers 404.
package sandbox
