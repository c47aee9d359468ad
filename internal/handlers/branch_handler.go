package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

type BranchHandler struct {
	branchService *services.BranchService
	logger        zerolog.Logger
}

func NewBranchHandler(branchService *services.BranchService, logger zerolog.Logger) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
		logger:        logger,
	}
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req models.BranchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	branch, err := h.branchService.Create(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.DataResponse{Message: "Branch created", Data: branch})
}

// ListByBrand serves /brands/{id}/branches.
func (h *BranchHandler) ListByBrand(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	brandID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	branches, err := h.branchService.ListByBrand(r.Context(), p.UserID, brandID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Branches found", Data: branches})
}

func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	branch, err := h.branchService.Get(r.Context(), p.UserID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Branch found", Data: branch})
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req models.BranchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	branch, err := h.branchService.Update(r.Context(), p.UserID, id, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Branch updated", Data: branch})
}

func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.branchService.Delete(r.Context(), p.UserID, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Branch deleted"})
}
