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
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"go.uber.org/zap"
)

// PaymentClient is the signed transport the SDK runs on. *client.Client
// implements it.
type PaymentClient interface {
	Get(ctx context.Context, path string) (*client.Result, error)
	Post(ctx context.Context, path string, body any) (*client.Result, error)
	Patch(ctx context.Context, path string, body any) (*client.Result, error)
}

var _ PaymentClient = (*client.Client)(nil)

// SDK exposes the processor payment operations for one mode
type SDK struct {
	client PaymentClient
	mode   Mode
	logger *zap.Logger
}

// Option configures an SDK
type Option func(*SDK)

// WithLogger sets the logger. nil keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SDK) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an SDK on top of c
func New(c PaymentClient, mode Mode, opts ...Option) (*SDK, error) {
	if c == nil {
		return nil, errors.New("payment client cannot be nil")
	}

	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	s := &SDK{
		client: c,
		mode:   mode,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("miropay.sdk")

	return s, nil
}

// NewFromPEM builds the signing client from cfg and privateKeyPEM, then the SDK
func NewFromPEM(cfg client.Config, privateKeyPEM string, mode Mode, opts ...Option) (*SDK, error) {
	c, err := client.NewClientFromPEM(cfg, privateKeyPEM)
	if err != nil {
		return nil, err
	}
	return New(c, mode, opts...)
}

// Mode returns the configured mode
func (s *SDK) Mode() Mode {
	return s.mode
}

func (s *SDK) path(parts ...string) string {
	return "payment/rest/" + string(s.mode) + "/" + strings.Join(parts, "/")
}

// CreatePayment validates req and creates a hosted payment
func (s *SDK) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*PaymentStatus, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.client.Post(ctx, s.path("create"), req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	status, err := decodePaymentStatus(result)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("reference_code", status.ReferenceCode),
		zap.String("status", string(status.Status)),
	)

	return status, nil
}

// GetStatus fetches the current state of a payment
func (s *SDK) GetStatus(ctx context.Context, referenceCode string) (*PaymentStatus, error) {
	if strings.TrimSpace(referenceCode) == "" {
		return nil, &ValidationError{Operation: "payment status", Fields: []string{"referenceCode"}}
	}

	result, err := s.client.Get(ctx, s.path("status", url.PathEscape(referenceCode)))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment status: %w", err)
	}

	status, err := decodePaymentStatus(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment status: %w", err)
	}

	s.logger.Debug("payment status",
		zap.String("reference_code", status.ReferenceCode),
		zap.String("status", string(status.Status)),
	)

	return status, nil
}

// Cancel cancels a pending payment
func (s *SDK) Cancel(ctx context.Context, referenceCode string) (*PaymentStatus, error) {
	if strings.TrimSpace(referenceCode) == "" {
		return nil, &ValidationError{Operation: "cancel payment", Fields: []string{"referenceCode"}}
	}

	result, err := s.client.Patch(ctx, s.path("cancel", url.PathEscape(referenceCode)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel payment: %w", err)
	}

	status, err := decodePaymentStatus(result)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel payment: %w", err)
	}

	s.logger.Info("payment canceled",
		zap.String("reference_code", status.ReferenceCode),
		zap.String("status", string(status.Status)),
	)

	return status, nil
}

// GetPublicKeys lists the processor's verification keys. Both a bare JSON
// array and an object with a "keys" array are accepted.
func (s *SDK) GetPublicKeys(ctx context.Context) ([]PublicKey, error) {
	result, err := s.client.Get(ctx, s.path("get-public-keys"))
	if err != nil {
		return nil, fmt.Errorf("failed to get public keys: %w", err)
	}

	if !result.IsSuccess() {
		return nil, newAPIError(result.StatusCode(), result.Payload())
	}

	var list []PublicKey
	if err := result.Decode(&list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Keys []PublicKey `json:"keys"`
	}
	if err := result.Decode(&wrapped); err != nil || wrapped.Keys == nil {
		return nil, fmt.Errorf("%w: expected a list of public keys", ErrMalformedResponse)
	}

	return wrapped.Keys, nil
}

func decodePaymentStatus(result *client.Result) (*PaymentStatus, error) {
	if !result.IsSuccess() {
		return nil, newAPIError(result.StatusCode(), result.Payload())
	}

	var status PaymentStatus
	if err := result.Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if status.ReferenceCode == "" || status.Status == "" {
		return nil, fmt.Errorf("%w: referenceCode and status are required", ErrMalformedResponse)
	}

	return &status, nil
}
