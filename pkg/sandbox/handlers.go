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
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/server"
	"go.uber.org/zap"
)

// maxBodySize caps create request bodies
const maxBodySize = 1 << 20

// handlerFunc returns the status and the JSON body to write
type handlerFunc func(r *http.Request) (int, any)

// errorBody is the processor's error shape
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func errorResponse(status int, message string) (int, any) {
	return status, errorBody{StatusCode: status, Message: message}
}

// route writes the handler result and records it
func (s *Server) route(operation string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := h(r)
		s.metrics.requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
		s.logger.Debug("request handled",
			zap.String("operation", operation),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
		)
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// merchantAndMode reads the verified identifier and the {mode} segment
func merchantAndMode(r *http.Request) (string, sdk.Mode, bool) {
	merchant, ok := server.IdentifierFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	mode, err := sdk.ParseMode(r.PathValue("mode"))
	if err != nil || string(mode) != r.PathValue("mode") {
		return "", "", false
	}
	return merchant, mode, true
}

func (s *Server) handleCreate(r *http.Request) (int, any) {
	merchant, mode, ok := merchantAndMode(r)
	if !ok {
		return errorResponse(http.StatusNotFound, "Cannot POST "+r.URL.Path)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return errorResponse(http.StatusBadRequest, "failed to read request body")
	}

	var req sdk.CreatePaymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if err := req.Validate(); err != nil {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	status := s.store.Create(merchant, mode, req, s.redirectBase(r))
	s.logger.Info("payment created",
		zap.String("merchant", merchant),
		zap.String("mode", string(mode)),
		zap.String("reference_code", status.ReferenceCode),
	)

	return http.StatusCreated, status
}

func (s *Server) handleStatus(r *http.Request) (int, any) {
	merchant, mode, ok := merchantAndMode(r)
	if !ok {
		return errorResponse(http.StatusNotFound, "Cannot GET "+r.URL.Path)
	}

	status, err := s.store.Get(merchant, mode, r.PathValue("ref"))
	if err != nil {
		return storeError(err)
	}
	return http.StatusOK, status
}

func (s *Server) handleCancel(r *http.Request) (int, any) {
	merchant, mode, ok := merchantAndMode(r)
	if !ok {
		return errorResponse(http.StatusNotFound, "Cannot PATCH "+r.URL.Path)
	}

	status, err := s.store.Cancel(merchant, mode, r.PathValue("ref"))
	if err != nil {
		return storeError(err)
	}

	s.logger.Info("payment canceled",
		zap.String("merchant", merchant),
		zap.String("reference_code", status.ReferenceCode),
	)
	return http.StatusOK, status
}

func (s *Server) handlePublicKeys(r *http.Request) (int, any) {
	merchant, _, ok := merchantAndMode(r)
	if !ok {
		return errorResponse(http.StatusNotFound, "Cannot GET "+r.URL.Path)
	}

	pub, err := s.resolver.ResolvePublicKey(r.Context(), merchant)
	if err != nil {
		return errorResponse(http.StatusNotFound, err.Error())
	}

	key, ok := pub.(ed25519.PublicKey)
	if !ok {
		return errorResponse(http.StatusInternalServerError, "unsupported key type")
	}

	return http.StatusOK, map[string][]sdk.PublicKey{
		"keys": {{ID: keys.Fingerprint(key), Key: base64.StdEncoding.EncodeToString(key)}},
	}
}

// pageView is the hosted payment page rendered as JSON
type pageView struct {
	ReferenceCode string        `json:"referenceCode"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Amount        sdk.Amount    `json:"amount"`
	Gateways      []sdk.Gateway `json:"gateways"`
	Status        sdk.Status    `json:"status"`
}

func (s *Server) handlePayPage(r *http.Request) (int, any) {
	payment, ok := s.store.Lookup(r.PathValue("ref"))
	if !ok {
		return errorResponse(http.StatusNotFound, "payment not found")
	}

	gateways := payment.Request.Gateways
	if len(gateways) == 0 {
		gateways = sdk.AllGateways
	}

	return http.StatusOK, pageView{
		ReferenceCode: payment.Status.ReferenceCode,
		Title:         payment.Request.Title,
		Description:   payment.Request.Description,
		Amount:        payment.Request.Amount,
		Gateways:      gateways,
		Status:        payment.Status.Status,
	}
}

func (s *Server) handlePay(r *http.Request) (int, any) {
	via := sdk.Gateway(r.URL.Query().Get("via"))

	status, err := s.store.Pay(r.PathValue("ref"), via)
	if err != nil {
		return storeError(err)
	}

	s.logger.Info("payment paid",
		zap.String("reference_code", status.ReferenceCode),
		zap.String("via", string(via)),
	)
	return http.StatusOK, status
}

func storeError(err error) (int, any) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		return errorResponse(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPaymentFinal):
		return errorResponse(http.StatusConflict, err.Error())
	case errors.Is(err, ErrGatewayNotOffered):
		return errorResponse(http.StatusBadRequest, err.Error())
	default:
		return errorResponse(http.StatusInternalServerError, err.Error())
	}
}
