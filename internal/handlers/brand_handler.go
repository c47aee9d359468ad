package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

type BrandHandler struct {
	brandService *services.BrandService
	logger       zerolog.Logger
}

func NewBrandHandler(brandService *services.BrandService, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req models.BrandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	brand, err := h.brandService.Create(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.DataResponse{Message: "Brand created", Data: brand})
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	brands, err := h.brandService.List(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Brands found", Data: brands})
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	brand, err := h.brandService.Get(r.Context(), p.UserID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Brand found", Data: brand})
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req models.BrandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	brand, err := h.brandService.Update(r.Context(), p.UserID, id, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.DataResponse{Message: "Brand updated", Data: brand})
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.brandService.Delete(r.Context(), p.UserID, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Brand deleted"})
}
