package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

// ParcelHandler handles HTTP requests related to parcels.
type ParcelHandler struct {
	service services.ParcelServiceProvider
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(service services.ParcelServiceProvider) *ParcelHandler {
	return &ParcelHandler{service: service}
}

// GetAll handles the request to list parcels, optionally scoped by the
// email and role query parameters.
func (h *ParcelHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	role := r.URL.Query().Get("role")

	parcels, err := h.service.ListParcels(r.Context(), email, role)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to list parcels")
		http.Error(w, "Failed to retrieve parcels", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parcels)
}

// Get handles the request to get a single parcel by its ID.
func (h *ParcelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	parcel, err := h.service.GetParcelByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrParcelNotFound) {
			http.Error(w, "Parcel not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("parcel_id", id).Msg("Failed to get parcel")
		http.Error(w, "Failed to retrieve parcel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parcel)
}

// Create handles the request to submit a new parcel.
func (h *ParcelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var parcel models.Parcel
	if err := json.NewDecoder(r.Body).Decode(&parcel); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateParcel(r.Context(), parcel)
	if err != nil {
		log.Error().Err(err).Str("sender_email", parcel.SenderEmail).Msg("Failed to create parcel")
		http.Error(w, "Failed to add parcel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"insertedId": created.ID.Hex(),
		"parcel":     created,
	})
}

// Delete handles the request to delete a parcel. The raw deleted count is
// returned; deleting an unknown id yields a count of zero.
func (h *ParcelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count, err := h.service.DeleteParcelByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrParcelNotFound) {
			http.Error(w, "Parcel not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("parcel_id", id).Msg("Failed to delete parcel")
		http.Error(w, "Failed to delete parcel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"deletedCount": count})
}
