package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

func NewAuthHandler(authService *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	pair, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.RegisterResponse{
		Message:      "User registered successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.LoginResponse{
		Message:      "Login successful",
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	access, err := h.authService.Refresh(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.RefreshResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.authService.Logout(r.Context(), &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}
