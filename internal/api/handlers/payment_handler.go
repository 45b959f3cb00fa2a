package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

// PaymentHandler handles HTTP requests for the payment-settlement workflow.
type PaymentHandler struct {
	service services.PaymentServiceProvider
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service services.PaymentServiceProvider) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// IntentPayload defines the structure for payment-intent requests.
type IntentPayload struct {
	AmountInCents int64 `json:"amountInCents"`
}

// CreateIntent asks the payment processor for a client secret covering the
// given amount. The amount is assumed to already be in minor units.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var payload IntentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	secret, err := h.service.CreatePaymentIntent(r.Context(), payload.AmountInCents)
	if err != nil {
		log.Error().Err(err).Int64("amount", payload.AmountInCents).Msg("Failed to create payment intent")
		http.Error(w, "Failed to create payment intent: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"clientSecret": secret})
}

// GetAll handles the request to list payment records, optionally filtered
// by payer email.
func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	records, err := h.service.ListPayments(r.Context(), email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to list payments")
		http.Error(w, "Failed to retrieve payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// Create settles a parcel: marks it paid and records the payment. A missing
// parcel and an already-settled one are reported as distinct errors.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ParcelID == "" {
		http.Error(w, "parcelId is required", http.StatusBadRequest)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParcelNotFound):
			http.Error(w, "Parcel not found", http.StatusNotFound)
		case errors.Is(err, services.ErrParcelAlreadyPaid):
			http.Error(w, "Parcel already paid", http.StatusConflict)
		case errors.Is(err, services.ErrDuplicatePayment):
			http.Error(w, "Payment already recorded", http.StatusConflict)
		default:
			log.Error().Err(err).Str("parcel_id", req.ParcelID).Msg("Failed to record payment")
			http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"paymentId":     payment.ID.Hex(),
		"paymentResult": payment,
	})
}
