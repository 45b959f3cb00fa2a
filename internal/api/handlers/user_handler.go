package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

// UserHandler handles HTTP requests for user registration.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Upsert registers a user on first login or touches last_log_in on a
// repeat login.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.UpsertUser(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to upsert user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result.Created {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(result)
}
