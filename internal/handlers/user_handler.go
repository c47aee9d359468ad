package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

// UserHandler serves /me.
type UserHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewUserHandler(userService *services.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.UserResponse{User: user})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req models.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), p.UserID, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Profile updated successfully"})
}
