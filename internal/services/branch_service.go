package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

// BranchService authorizes through the parent brand: a branch belongs to the
// caller when its brand does.
type BranchService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewBranchService(st store.Store, logger zerolog.Logger) *BranchService {
	return &BranchService{store: st, logger: logger}
}

func (s *BranchService) Create(ctx context.Context, ownerID int, req *models.BranchRequest) (*models.Branch, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}

	_, err := s.store.Brands().GetOwned(ctx, req.BrandID, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, brandNotFound()
	}
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", req.BrandID).Msg("Error fetching brand")
		return nil, apperror.Internal(err)
	}

	b := &models.Branch{BrandID: req.BrandID}
	req.Apply(b)

	id, err := s.store.Branches().Create(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", req.BrandID).Msg("Error creating branch")
		return nil, apperror.Internal(err)
	}
	return s.Get(ctx, ownerID, id)
}

// ListByBrand reports a foreign brand as not found rather than as an empty list.
func (s *BranchService) ListByBrand(ctx context.Context, ownerID, brandID int) ([]*models.Branch, error) {
	_, err := s.store.Brands().GetOwned(ctx, brandID, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, brandNotFound()
	}
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", brandID).Msg("Error fetching brand")
		return nil, apperror.Internal(err)
	}

	branches, err := s.store.Branches().ListByBrand(ctx, brandID, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int("brand_id", brandID).Msg("Error listing branches")
		return nil, apperror.Internal(err)
	}
	return branches, nil
}

func (s *BranchService) Get(ctx context.Context, ownerID, branchID int) (*models.Branch, error) {
	b, err := s.store.Branches().GetOwned(ctx, branchID, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, branchNotFound()
	}
	if err != nil {
		s.logger.Error().Err(err).Int("branch_id", branchID).Msg("Error fetching branch")
		return nil, apperror.Internal(err)
	}
	return b, nil
}

func (s *BranchService) Update(ctx context.Context, ownerID, branchID int, req *models.BranchRequest) (*models.Branch, error) {
	if err := req.ValidateUpdate(); err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, ownerID, branchID)
	if err != nil {
		return nil, err
	}
	req.Apply(b)

	if err := s.store.Branches().UpdateOwned(ctx, b, ownerID); err != nil {
		s.logger.Error().Err(err).Int("branch_id", branchID).Msg("Error updating branch")
		return nil, apperror.Internal(err)
	}
	return b, nil
}

func (s *BranchService) Delete(ctx context.Context, ownerID, branchID int) error {
	deleted, err := s.store.Branches().DeleteOwned(ctx, branchID, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int("branch_id", branchID).Msg("Error deleting branch")
		return apperror.Internal(err)
	}
	if !deleted {
		return branchNotFound()
	}
	return nil
}

func branchNotFound() error {
	return apperror.NotFound("branch_not_found", "Branch not found or not authorized")
}
