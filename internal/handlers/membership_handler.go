package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

type MembershipHandler struct {
	membershipService *services.MembershipService
	logger            zerolog.Logger
}

func NewMembershipHandler(membershipService *services.MembershipService, logger zerolog.Logger) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

func (h *MembershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req models.CreateMembershipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	m, err := h.membershipService.Create(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.DataResponse{Message: "Membership created", Data: m})
}

func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	m, err := h.membershipService.GetActive(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Membership found", Data: m})
}
