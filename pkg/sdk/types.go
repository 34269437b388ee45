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

package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Mode selects the processor environment
type Mode string

const (
	ModeLive Mode = "live"
	ModeTest Mode = "test"
)

// ParseMode accepts "live" or "test", case-insensitively
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLive:
		return ModeLive, nil
	case ModeTest:
		return ModeTest, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be %q or %q", s, ModeLive, ModeTest)
	}
}

// Gateway is a payment method offered on the hosted payment page
type Gateway string

const (
	GatewayZain    Gateway = "ZAIN"
	GatewayFIB     Gateway = "FIB"
	GatewayFastPay Gateway = "FAST_PAY"
)

// AllGateways lists every gateway known to this package
var AllGateways = []Gateway{GatewayZain, GatewayFIB, GatewayFastPay}

// Status is the processor's payment state. Values other than the constants
// below are passed through unchanged.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusCanceled Status = "CANCELED"
)

// Amount is a decimal amount carried as a JSON string. It also decodes from
// a JSON number.
type Amount string

// Float64 parses the amount
func (a Amount) Float64() (float64, error) {
	return strconv.ParseFloat(string(a), 64)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// CreatePaymentRequest describes a hosted payment to create
type CreatePaymentRequest struct {
	Amount                     Amount    `json:"amount"`
	Title                      string    `json:"title"`
	Description                string    `json:"description"`
	RedirectURL                string    `json:"redirectUrl"`
	Gateways                   []Gateway `json:"gateways"`
	CollectCustomerEmail       bool      `json:"collectCustomerEmail"`
	CollectCustomerPhoneNumber bool      `json:"collectCustomerPhoneNumber"`
	CollectFeeFromCustomer     bool      `json:"collectFeeFromCustomer"`
}

// Validate checks the request before anything is signed or sent. Gateways
// may be empty but not nil.
func (r *CreatePaymentRequest) Validate() error {
	if r == nil {
		return &ValidationError{Operation: "create payment", Fields: []string{"request"}}
	}

	var fields []string

	if amount, err := r.Amount.Float64(); err != nil || !(amount > 0) || math.IsInf(amount, 1) {
		fields = append(fields, "amount")
	}
	if strings.TrimSpace(r.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(r.Description) == "" {
		fields = append(fields, "description")
	}
	if !isAbsoluteURL(r.RedirectURL) {
		fields = append(fields, "redirectUrl")
	}
	if r.Gateways == nil {
		fields = append(fields, "gateways")
	} else {
		for _, g := range r.Gateways {
			if strings.TrimSpace(string(g)) == "" {
				fields = append(fields, "gateways")
				break
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Operation: "create payment", Fields: fields}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// PaymentStatus is the processor's view of one payment
type PaymentStatus struct {
	ReferenceCode string  `json:"referenceCode"`
	Status        Status  `json:"status"`
	PaidVia       *string `json:"paidVia,omitempty"`
	PaidAt        *string `json:"paidAt,omitempty"`
	RedirectURL   string  `json:"redirectUrl"`
	PayoutAmount  *Amount `json:"payoutAmount,omitempty"`
}

// IsPaid reports whether the payment has been paid
func (p *PaymentStatus) IsPaid() bool {
	return p.Status == StatusPaid
}

// IsFinal reports whether the payment can no longer change
func (p *PaymentStatus) IsFinal() bool {
	return p.Status == StatusPaid || p.Status == StatusCanceled
}

// PublicKey is a processor verification key
type PublicKey struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}
