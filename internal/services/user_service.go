package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

type UserService struct {
	store  store.Store
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewUserService(st store.Store, hasher *PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{
		store:  st,
		hasher: hasher,
		logger: logger,
	}
}

// GetProfile returns the caller's user row. Sellers also get their membership type.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("user_not_found", "User not found")
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching user")
		return nil, apperror.Internal(err)
	}

	decorateMembership(ctx, s.store, s.logger, user)
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	upd := models.ProfileUpdate{
		Name:         models.OptionalString(req.Name),
		Phone:        models.OptionalString(req.Phone),
		BirthDate:    models.OptionalString(req.BirthDate),
		Gender:       models.OptionalString(req.Gender),
		ReferralCode: models.OptionalString(req.ReferralCode),
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Int("user_id", userID).Msg("Error hashing password")
			return apperror.Internal(err)
		}
		upd.PasswordHash = &hash
	}

	if err := s.store.Users().UpdateProfile(ctx, userID, upd); err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error updating profile")
		return apperror.Internal(err)
	}

	s.logger.Info().Int("user_id", userID).Bool("password_changed", upd.PasswordHash != nil).Msg("Profile updated")
	return nil
}
