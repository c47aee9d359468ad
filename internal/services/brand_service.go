package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

// BrandService scopes every operation to the calling owner. A brand owned by
// someone else is reported exactly like a missing one and is never modified.
type BrandService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewBrandService(st store.Store, logger zerolog.Logger) *BrandService {
	return &BrandService{store: st, logger: logger}
}

func (s *BrandService) Create(ctx context.Context, ownerID int, req *models.BrandRequest) (*models.Brand, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}

	b := &models.Brand{OwnerID: ownerID}
	req.Apply(b)

	id, err := s.store.Brands().Create(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", ownerID).Msg("Error creating brand")
		return nil, apperror.Internal(err)
	}
	return s.Get(ctx, ownerID, id)
}

func (s *BrandService) List(ctx context.Context, ownerID int) ([]*models.Brand, error) {
	brands, err := s.store.Brands().ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", ownerID).Msg("Error listing brands")
		return nil, apperror.Internal(err)
	}
	return brands, nil
}

func (s *BrandService) Get(ctx context.Context, ownerID, brandID int) (*models.Brand, error) {
	b, err := s.store.Brands().GetOwned(ctx, brandID, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, brandNotFound()
	}
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", brandID).Msg("Error fetching brand")
		return nil, apperror.Internal(err)
	}
	return b, nil
}

func (s *BrandService) Update(ctx context.Context, ownerID, brandID int, req *models.BrandRequest) (*models.Brand, error) {
	if err := req.ValidateUpdate(); err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, ownerID, brandID)
	if err != nil {
		return nil, err
	}
	req.Apply(b)

	if err := s.store.Brands().UpdateOwned(ctx, b); err != nil {
		s.logger.Error().Err(err).Int("brand_id", brandID).Msg("Error updating brand")
		return nil, apperror.Internal(err)
	}
	return b, nil
}

func (s *BrandService) Delete(ctx context.Context, ownerID, brandID int) error {
	deleted, err := s.store.Brands().DeleteOwned(ctx, brandID, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", brandID).Msg("Error deleting brand")
		return apperror.Internal(err)
	}
	if !deleted {
		return brandNotFound()
	}
	s.logger.Info().Int("brand_id", brandID).Int("user_id", ownerID).Msg("Brand deleted")
	return nil
}

func brandNotFound() error {
	return apperror.NotFound("brand_not_found", "Brand not found or not authorized")
}
