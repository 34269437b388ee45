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

package sandbox

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentFinal      = errors.New("payment can no longer change")
	ErrGatewayNotOffered = errors.New("gateway not offered for this payment")
)

// Payment is one stored payment
type Payment struct {
	Merchant  string
	Mode      sdk.Mode
	Request   sdk.CreatePaymentRequest
	Status    sdk.PaymentStatus
	CreatedAt time.Time
}

// Store keeps payments in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	payments map[string]*Payment
	now      func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		payments: make(map[string]*Payment),
		now:      time.Now,
	}
}

// Create stores a new pending payment. redirectBase is prefixed to
// "/pay/<referenceCode>" to build the hosted page URL.
func (s *Store) Create(merchant string, mode sdk.Mode, req sdk.CreatePaymentRequest, redirectBase string) sdk.PaymentStatus {
	ref := uuid.NewString()

	payment := &Payment{
		Merchant: merchant,
		Mode:     mode,
		Request:  req,
		Status: sdk.PaymentStatus{
			ReferenceCode: ref,
			Status:        sdk.StatusPending,
			RedirectURL:   redirectBase + "/pay/" + ref,
		},
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments[ref] = payment
	return payment.Status
}

// Get returns the status of a payment owned by merchant in mode
func (s *Store) Get(merchant string, mode sdk.Mode, ref string) (sdk.PaymentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, err := s.lookup(merchant, mode, ref)
	if err != nil {
		return sdk.PaymentStatus{}, err
	}
	return payment.Status, nil
}

// Cancel moves a pending payment to CANCELED
func (s *Store) Cancel(merchant string, mode sdk.Mode, ref string) (sdk.PaymentStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, err := s.lookup(merchant, mode, ref)
	if err != nil {
		return sdk.PaymentStatus{}, err
	}
	if payment.Status.IsFinal() {
		return payment.Status, fmt.Errorf("%w: already %s", ErrPaymentFinal, payment.Status.Status)
	}

	payment.Status.Status = sdk.StatusCanceled
	return payment.Status, nil
}

// Pay moves a pending payment to PAID through gateway. The payout equals the
// requested amount.
func (s *Store) Pay(ref string, gateway sdk.Gateway) (sdk.PaymentStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[ref]
	if !ok {
		return sdk.PaymentStatus{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, ref)
	}
	if payment.Status.IsFinal() {
		return payment.Status, fmt.Errorf("%w: already %s", ErrPaymentFinal, payment.Status.Status)
	}
	if !offers(payment.Request.Gateways, gateway) {
		return payment.Status, fmt.Errorf("%w: %s", ErrGatewayNotOffered, gateway)
	}

	paidVia := string(gateway)
	paidAt := s.now().UTC().Format(time.RFC3339)
	payout := payment.Request.Amount

	payment.Status.Status = sdk.StatusPaid
	payment.Status.PaidVia = &paidVia
	payment.Status.PaidAt = &paidAt
	payment.Status.PayoutAmount = &payout

	return payment.Status, nil
}

// Lookup returns a copy of the stored payment regardless of owner
func (s *Store) Lookup(ref string) (Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[ref]
	if !ok {
		return Payment{}, false
	}
	return *payment, true
}

// CountByStatus returns the number of payments per status
func (s *Store) CountByStatus() map[sdk.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[sdk.Status]int)
	for _, p := range s.payments {
		counts[p.Status.Status]++
	}
	return counts
}

func (s *Store) lookup(merchant string, mode sdk.Mode, ref string) (*Payment, error) {
	payment, ok := s.payments[ref]
	if !ok || payment.Merchant != merchant || payment.Mode != mode {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, ref)
	}
	return payment, nil
}

// offers reports whether gateway may be used. An empty list offers every gateway.
func offers(gateways []sdk.Gateway, gateway sdk.Gateway) bool {
	if gateway == "" {
		return false
	}
	if len(gateways) == 0 {
		return true
	}
	for _, g := range gateways {
		if g == gateway {
			return true
		}
	}
	return false
}
